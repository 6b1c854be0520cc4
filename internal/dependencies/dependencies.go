// Package dependencies declares and removes entries in a project's
// package.json. It performs no resolution: versions are recorded verbatim once
// they parse as npm-style ranges.
package dependencies

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ngtw-labs/ngtw/internal/jsondoc"
	"github.com/ngtw-labs/ngtw/internal/tree"
)

// FileName is the package manifest location relative to the workspace root.
const FileName = "/package.json"

// Type selects the package.json section a dependency is written to.
type Type string

const (
	Default  Type = "dependencies"
	Dev      Type = "devDependencies"
	Peer     Type = "peerDependencies"
	Optional Type = "optionalDependencies"
)

// Sections lists every dependency section in package.json order.
var Sections = []Type{Default, Dev, Peer, Optional}

// Dependency is one declaration to merge into package.json.
type Dependency struct {
	Type      Type
	Name      string
	Version   string
	Overwrite bool
}

// ErrNotFound is returned by Load when the project has no package.json.
var ErrNotFound = errors.New("package.json not found")

// Manifest is an in-memory package.json.
type Manifest struct {
	doc *jsondoc.Object
}

// Load reads package.json from t.
func Load(t *tree.Tree) (*Manifest, error) {
	data, err := t.Read(FileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}
	doc, err := jsondoc.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &Manifest{doc: doc}, nil
}

// Save writes package.json back to t.
func (m *Manifest) Save(t *tree.Tree) error {
	data, err := jsondoc.Marshal(m.doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", FileName, err)
	}
	return t.Write(FileName, data)
}

// Get looks a dependency up by name across all sections.
func (m *Manifest) Get(name string) (Dependency, bool) {
	for _, section := range Sections {
		obj, ok := m.doc.Object(string(section))
		if !ok {
			continue
		}
		if v, ok := obj.String(name); ok {
			return Dependency{Type: section, Name: name, Version: v}, true
		}
	}
	return Dependency{}, false
}

// Add inserts dep into its section, keeping the section sorted by name. An
// existing entry is replaced only when dep.Overwrite is set. It reports
// whether package.json changed.
func (m *Manifest) Add(dep Dependency) (bool, error) {
	if dep.Name == "" {
		return false, errors.New("dependency name is required")
	}
	if err := ValidateRange(dep.Version); err != nil {
		return false, fmt.Errorf("dependency %s: %w", dep.Name, err)
	}
	section := dep.Type
	if section == "" {
		section = Default
	}

	obj := m.doc.Ensure(string(section))
	if current, ok := obj.String(dep.Name); ok {
		if !dep.Overwrite || current == dep.Version {
			return false, nil
		}
	}
	obj.Set(dep.Name, dep.Version)
	obj.SortKeys()
	return true, nil
}

// Remove deletes name from every section. Absent names are a no-op.
func (m *Manifest) Remove(name string) bool {
	removed := false
	for _, section := range Sections {
		obj, ok := m.doc.Object(string(section))
		if !ok {
			continue
		}
		if obj.Delete(name) {
			removed = true
		}
	}
	return removed
}

var distTag = regexp.MustCompile(`^[a-z][a-z0-9._-]*$`)

// ValidateRange checks that version is usable as an npm version range:
// a semver constraint (e.g. "^8.4.0", "~1.1", ">=1 <2") or a dist-tag
// such as "latest".
func ValidateRange(version string) error {
	v := strings.TrimSpace(version)
	if v == "" {
		return errors.New("version range is empty")
	}
	if distTag.MatchString(v) {
		return nil
	}
	if _, err := semver.NewConstraint(v); err != nil {
		return fmt.Errorf("invalid version range %q: %w", version, err)
	}
	return nil
}
