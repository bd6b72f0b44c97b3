// Package datasets describes datasets.yaml, the manifest that maps every
// raw entity to the file names it can be loaded from.
package datasets

import (
	"fmt"
	"slices"
	"strings"

	"github.com/olydash/olydash/pkg/entity"
)

// Datasets loads the manifest.
type Datasets interface {
	Load() (*Manifest, error)
}

// Manifest lists alternative file names per raw entity. Names are
// relative to the input directory and are tried in order.
type Manifest struct {
	Datasets map[string][]string `yaml:"datasets"`

	// Warnings holds non-fatal validation warnings (not serialized)
	Warnings []string `yaml:"-"`
}

// Default returns the manifest built from entity schemas.
func Default() *Manifest {
	res := &Manifest{Datasets: make(map[string][]string)}
	for _, name := range entity.RawNames() {
		s, _ := entity.Raw(name)
		res.Datasets[name] = slices.Clone(s.Files)
	}
	return res
}

// Validate rejects unsafe file names, warns about unknown entities and
// fills entities that are absent with default file names.
func (m *Manifest) Validate() error {
	if m.Datasets == nil {
		m.Datasets = make(map[string][]string)
	}

	names := make([]string, 0, len(m.Datasets))
	for name := range m.Datasets {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if _, ok := entity.Raw(name); !ok {
			m.Warnings = append(m.Warnings,
				fmt.Sprintf("unknown entity '%s' is ignored", name))
			delete(m.Datasets, name)
			continue
		}
		var files []string
		for _, f := range m.Datasets[name] {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			if strings.Contains(f, "..") {
				return fmt.Errorf("entity %s: file name %q leaves input directory",
					name, f)
			}
			files = append(files, f)
		}
		m.Datasets[name] = files
	}

	for _, name := range entity.RawNames() {
		if len(m.Datasets[name]) > 0 {
			continue
		}
		s, _ := entity.Raw(name)
		m.Datasets[name] = slices.Clone(s.Files)
		m.Warnings = append(m.Warnings,
			fmt.Sprintf("entity '%s' has no files, using %s",
				name, strings.Join(s.Files, ", ")))
	}
	return nil
}

// Files returns the file name alternatives of an entity.
func (m *Manifest) Files(name string) []string {
	if m == nil {
		return nil
	}
	return m.Datasets[name]
}
