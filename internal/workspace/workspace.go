// Package workspace loads, queries, and saves the Angular workspace manifest
// (angular.json). The manifest is held as an order-preserving JSON document so
// a patch rewrites only the fields it touches.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/ngtw-labs/ngtw/internal/jsondoc"
	"github.com/ngtw-labs/ngtw/internal/tree"
)

// FileName is the manifest location relative to the workspace root.
const FileName = "/angular.json"

// ConfigurationError reports a missing or malformed part of a project
// configuration file. Flows abort on it before writing anything.
type ConfigurationError struct {
	Path   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Path, e.Reason)
}

// Workspace is an in-memory angular.json.
type Workspace struct {
	doc *jsondoc.Object
}

// Project is one entry under "projects".
type Project struct {
	Name string
	obj  *jsondoc.Object
}

// Target is one architect entry of a project, e.g. build or serve.
type Target struct {
	// Path is the dotted manifest path, used in diagnostics.
	Path string
	obj  *jsondoc.Object
}

// Load reads and parses angular.json from t.
func Load(t *tree.Tree) (*Workspace, error) {
	data, err := t.Read(FileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigurationError{Path: "angular.json", Reason: "file not found; run inside an Angular workspace"}
		}
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}
	doc, err := jsondoc.Parse(data)
	if err != nil {
		return nil, &ConfigurationError{Path: "angular.json", Reason: err.Error()}
	}
	return &Workspace{doc: doc}, nil
}

// Save writes the manifest back to t with two-space indentation.
func (w *Workspace) Save(t *tree.Tree) error {
	data, err := jsondoc.Marshal(w.doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", FileName, err)
	}
	return t.Write(FileName, data)
}

// DefaultProject returns the manifest-declared default project, if any.
func (w *Workspace) DefaultProject() string {
	name, _ := w.doc.String("defaultProject")
	return name
}

// ProjectNames lists the projects in document order.
func (w *Workspace) ProjectNames() []string {
	projects, ok := w.doc.Object("projects")
	if !ok {
		return nil
	}
	return projects.Keys()
}

// ResolveProject picks the project to operate on: the explicit name when
// given, else defaultProject, else the first project in the manifest.
func (w *Workspace) ResolveProject(explicit string) (*Project, error) {
	projects, ok := w.doc.Object("projects")
	if !ok || projects.Len() == 0 {
		return nil, &ConfigurationError{Path: "projects", Reason: "no projects defined"}
	}

	name := explicit
	if name == "" {
		name = w.DefaultProject()
	}
	if name == "" {
		name = projects.Keys()[0]
	}

	obj, ok := projects.Object(name)
	if !ok {
		return nil, &ConfigurationError{
			Path:   "projects." + name,
			Reason: "project not found (available: " + strings.Join(w.ProjectNames(), ", ") + ")",
		}
	}
	return &Project{Name: name, obj: obj}, nil
}

// Target returns the named architect target. A missing target is a
// ConfigurationError naming the full path.
func (p *Project) Target(name string) (*Target, error) {
	path := fmt.Sprintf("projects.%s.architect.%s", p.Name, name)
	architect, ok := p.obj.Object("architect")
	if !ok {
		return nil, &ConfigurationError{Path: path, Reason: "missing"}
	}
	obj, ok := architect.Object(name)
	if !ok {
		return nil, &ConfigurationError{Path: path, Reason: "missing"}
	}
	return &Target{Path: path, obj: obj}, nil
}

// Builder returns the target's builder identifier.
func (t *Target) Builder() string {
	b, _ := t.obj.String("builder")
	return b
}

// SetBuilder replaces the target's builder identifier.
func (t *Target) SetBuilder(builder string) {
	t.obj.Set("builder", builder)
}

// LookupOptions returns the target's options object without creating it.
func (t *Target) LookupOptions() (*jsondoc.Object, bool) {
	return t.obj.Object("options")
}

// Options returns the target's options object, creating it when absent.
func (t *Target) Options() *jsondoc.Object {
	return t.obj.Ensure("options")
}
