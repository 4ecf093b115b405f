// Package project reads Julia project manifests (Project.toml) directly.
//
// It backs the explore-project fallback: when no interpreter can be located
// the dispatcher still answers project-metadata queries by parsing the
// manifest in-process, rendering the same shape the interpreter script
// prints.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ErrNoManifest indicates neither Project.toml nor JuliaProject.toml exists
// in the queried directory.
var ErrNoManifest = errors.New("no Project.toml found")

// manifestNames are the file names Julia recognizes, in resolution order.
var manifestNames = []string{"Project.toml", "JuliaProject.toml"}

// Manifest is the subset of a Julia project file this server reports.
type Manifest struct {
	Name    string            `toml:"name"`
	UUID    string            `toml:"uuid"`
	Version string            `toml:"version"`
	Deps    map[string]string `toml:"deps"`
}

// Load reads the project manifest from dir.
func Load(dir string) (Manifest, error) {
	for _, name := range manifestNames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Manifest{}, fmt.Errorf("reading %s: %w", name, err)
		}

		var m Manifest
		if err := toml.Unmarshal(data, &m); err != nil {
			return Manifest{}, fmt.Errorf("parsing %s: %w", name, err)
		}
		return m, nil
	}
	return Manifest{}, fmt.Errorf("%w in %s", ErrNoManifest, dir)
}

// Render prints the manifest in the same layout the interpreter script
// emits: a project line followed by a sorted dependency block.
func (m Manifest) Render() string {
	name := m.Name
	if name == "" {
		name = "unnamed"
	}
	version := m.Version
	if version == "" {
		version = "0.0.0"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s v%s\n", name, version)
	b.WriteString("Dependencies:\n")

	if len(m.Deps) == 0 {
		b.WriteString("  (none)")
		return b.String()
	}

	deps := make([]string, 0, len(m.Deps))
	for dep := range m.Deps {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	for i, dep := range deps {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("  " + dep)
	}
	return b.String()
}
