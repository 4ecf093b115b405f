package symbols

import (
	"strings"
	"testing"
)

const dataFramesListing = `UnionAll DataFrame
Function groupby
Function select
Function innerjoin
Function describe
DataType GroupedDataFrame
`

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestIndexListing(t *testing.T) {
	idx := newTestIndex(t)

	n, err := idx.IndexListing("DataFrames", dataFramesListing)
	if err != nil {
		t.Fatalf("IndexListing: %v", err)
	}
	if n != 6 {
		t.Errorf("indexed %d symbols, want 6", n)
	}
	if idx.Len() != 6 {
		t.Errorf("Len() = %d, want 6", idx.Len())
	}
}

func TestIndexListing_SkipsMalformedLines(t *testing.T) {
	idx := newTestIndex(t)

	n, err := idx.IndexListing("Pkg", "Function add\n\nnoseparator\n  \nDataType PackageSpec")
	if err != nil {
		t.Fatalf("IndexListing: %v", err)
	}
	if n != 2 {
		t.Errorf("indexed %d symbols, want 2", n)
	}
}

func TestIndexListing_EmptyListing(t *testing.T) {
	idx := newTestIndex(t)

	n, err := idx.IndexListing("Empty", "")
	if err != nil {
		t.Fatalf("IndexListing: %v", err)
	}
	if n != 0 {
		t.Errorf("indexed %d symbols, want 0", n)
	}
}

func TestSearch(t *testing.T) {
	idx := newTestIndex(t)
	if _, err := idx.IndexListing("DataFrames", dataFramesListing); err != nil {
		t.Fatalf("IndexListing: %v", err)
	}

	entries, err := idx.Search("groupby", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("no results for groupby")
	}
	if entries[0].Name != "groupby" {
		t.Errorf("top hit = %q, want groupby", entries[0].Name)
	}
	if entries[0].Package != "DataFrames" {
		t.Errorf("top hit package = %q, want DataFrames", entries[0].Package)
	}
	if entries[0].Kind != "Function" {
		t.Errorf("top hit kind = %q, want Function", entries[0].Kind)
	}
}

func TestSearch_LimitApplied(t *testing.T) {
	idx := newTestIndex(t)
	if _, err := idx.IndexListing("DataFrames", dataFramesListing); err != nil {
		t.Fatalf("IndexListing: %v", err)
	}

	entries, err := idx.Search("DataFrame", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(entries) > 1 {
		t.Errorf("got %d results, want at most 1", len(entries))
	}
}

func TestSearch_NoMatch(t *testing.T) {
	idx := newTestIndex(t)
	if _, err := idx.IndexListing("DataFrames", dataFramesListing); err != nil {
		t.Fatalf("IndexListing: %v", err)
	}

	entries, err := idx.Search("zzznotthere", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d results, want 0", len(entries))
	}
}

func TestReindexOverwrites(t *testing.T) {
	idx := newTestIndex(t)

	if _, err := idx.IndexListing("Pkg", "Function add"); err != nil {
		t.Fatalf("first IndexListing: %v", err)
	}
	if _, err := idx.IndexListing("Pkg", "Function add"); err != nil {
		t.Fatalf("second IndexListing: %v", err)
	}

	entries, err := idx.Search("add", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d results after reindex, want 1", len(entries))
	}
}

func TestPackages(t *testing.T) {
	idx := newTestIndex(t)
	if _, err := idx.IndexListing("Pkg", "Function add"); err != nil {
		t.Fatalf("IndexListing: %v", err)
	}
	if _, err := idx.IndexListing("DataFrames", "Function groupby"); err != nil {
		t.Fatalf("IndexListing: %v", err)
	}

	pkgs, err := idx.Packages()
	if err != nil {
		t.Fatalf("Packages: %v", err)
	}
	want := []string{"DataFrames", "Pkg"}
	if len(pkgs) != 2 || pkgs[0] != want[0] || pkgs[1] != want[1] {
		t.Errorf("Packages() = %v, want %v", pkgs, want)
	}
}

func TestRender(t *testing.T) {
	got := Render([]Entry{
		{Package: "DataFrames", Name: "groupby", Kind: "Function"},
		{Package: "DataFrames", Name: "DataFrame", Kind: "UnionAll"},
	})
	if !strings.Contains(got, "DataFrames.groupby :: Function") {
		t.Errorf("Render() = %q, missing groupby line", got)
	}
	if !strings.Contains(got, "DataFrames.DataFrame :: UnionAll") {
		t.Errorf("Render() = %q, missing DataFrame line", got)
	}
}

func TestRender_Empty(t *testing.T) {
	if got := Render(nil); got != "No symbols matched." {
		t.Errorf("Render(nil) = %q", got)
	}
}
