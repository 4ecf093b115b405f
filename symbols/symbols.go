// Package symbols maintains a searchable index of Julia symbols discovered
// through package listings.
//
// Every successful list-package call feeds its listing into the index, so
// search quality grows as the server is used. The index is in-memory and
// lives for the process lifetime.
package symbols

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Entry is one indexed symbol.
type Entry struct {
	Package string `json:"package"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
}

// ID is the canonical document identifier, "package:name".
func (e Entry) ID() string {
	return e.Package + ":" + e.Name
}

// Index is a full-text symbol index backed by an in-memory bleve index.
type Index struct {
	mu    sync.Mutex
	idx   bleve.Index
	count int
}

// New creates an empty in-memory index.
func New() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("creating symbol index: %w", err)
	}
	return &Index{idx: idx}, nil
}

func buildMapping() mapping.IndexMapping {
	entry := bleve.NewDocumentMapping()

	name := bleve.NewTextFieldMapping()
	name.Store = true
	entry.AddFieldMappingsAt("name", name)

	pkg := bleve.NewTextFieldMapping()
	pkg.Store = true
	entry.AddFieldMappingsAt("package", pkg)

	kind := bleve.NewKeywordFieldMapping()
	kind.Store = true
	entry.AddFieldMappingsAt("kind", kind)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = entry
	return m
}

// IndexListing parses the output of a package listing and indexes every
// symbol line. Listing lines have the form "<kind> <name>"; anything else
// is skipped. Returns the number of symbols indexed.
func (x *Index) IndexListing(pkg, listing string) (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	batch := x.idx.NewBatch()
	indexed := 0
	for _, line := range strings.Split(listing, "\n") {
		entry, ok := parseLine(pkg, line)
		if !ok {
			continue
		}
		if err := batch.Index(entry.ID(), entry); err != nil {
			return indexed, fmt.Errorf("indexing %s: %w", entry.ID(), err)
		}
		indexed++
	}
	if indexed == 0 {
		return 0, nil
	}
	if err := x.idx.Batch(batch); err != nil {
		return 0, fmt.Errorf("committing batch for %s: %w", pkg, err)
	}
	x.count += indexed
	return indexed, nil
}

// parseLine splits a "<kind> <name>" listing line. Kind is a Julia type
// name, symbol name follows after the last space.
func parseLine(pkg, line string) (Entry, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Entry{}, false
	}
	i := strings.LastIndex(line, " ")
	if i < 0 {
		return Entry{}, false
	}
	kind := strings.TrimSpace(line[:i])
	name := strings.TrimSpace(line[i+1:])
	if kind == "" || name == "" {
		return Entry{}, false
	}
	return Entry{Package: pkg, Name: name, Kind: kind}, true
}

// Search runs a match query over indexed symbols and returns up to limit
// entries ordered by relevance.
func (x *Index) Search(query string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{"package", "name", "kind"}

	res, err := x.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching symbols: %w", err)
	}

	entries := make([]Entry, 0, len(res.Hits))
	for _, hit := range res.Hits {
		entries = append(entries, Entry{
			Package: fieldString(hit.Fields, "package"),
			Name:    fieldString(hit.Fields, "name"),
			Kind:    fieldString(hit.Fields, "kind"),
		})
	}
	return entries, nil
}

// Render formats search results as one "<package>.<name> :: <kind>" line
// per entry, sorted output already ordered by relevance.
func Render(entries []Entry) string {
	if len(entries) == 0 {
		return "No symbols matched."
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s.%s :: %s", e.Package, e.Name, e.Kind))
	}
	return strings.Join(lines, "\n")
}

// Packages returns the distinct package names seen by the index, sorted.
func (x *Index) Packages() ([]string, error) {
	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), x.Len(), 0, false)
	req.Fields = []string{"package"}
	res, err := x.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}
	seen := map[string]struct{}{}
	for _, hit := range res.Hits {
		seen[fieldString(hit.Fields, "package")] = struct{}{}
	}
	pkgs := make([]string, 0, len(seen))
	for p := range seen {
		pkgs = append(pkgs, p)
	}
	sort.Strings(pkgs)
	return pkgs, nil
}

// Len reports how many symbols have been indexed.
func (x *Index) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.count
}

// Close releases the underlying index.
func (x *Index) Close() error {
	return x.idx.Close()
}

func fieldString(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}
