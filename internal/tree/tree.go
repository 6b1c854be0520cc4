// Package tree stages file mutations against a project directory in memory.
// Flows read and write through a Tree; nothing reaches the underlying
// filesystem until Commit is called, so a flow that fails part-way leaves the
// project untouched.
package tree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// ActionKind classifies a staged mutation.
type ActionKind int

const (
	Create ActionKind = iota
	Overwrite
	Delete
	Rename
)

func (k ActionKind) String() string {
	switch k {
	case Create:
		return "CREATE"
	case Overwrite:
		return "UPDATE"
	case Delete:
		return "DELETE"
	case Rename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// Action is one staged mutation. To is only set for renames.
type Action struct {
	Kind    ActionKind
	Path    string
	To      string
	Content []byte
}

func (a Action) String() string {
	if a.Kind == Rename {
		return fmt.Sprintf("%s %s => %s", a.Kind, a.Path, a.To)
	}
	if a.Kind == Delete {
		return fmt.Sprintf("%s %s", a.Kind, a.Path)
	}
	return fmt.Sprintf("%s %s (%d bytes)", a.Kind, a.Path, len(a.Content))
}

type entry struct {
	content []byte
	deleted bool
}

// Tree is a staging area over an afero filesystem rooted at the project.
// Paths are slash-separated and treated as relative to that root.
type Tree struct {
	fs          afero.Fs
	staged      map[string]*entry
	deletedDirs map[string]bool
	actions     []Action
}

// New returns a tree over fsys.
func New(fsys afero.Fs) *Tree {
	return &Tree{fs: fsys, staged: make(map[string]*entry), deletedDirs: make(map[string]bool)}
}

// Clean normalizes p to the tree's canonical form ("/a/b").
func Clean(p string) string {
	return path.Clean("/" + filepath.ToSlash(p))
}

// Exists reports whether a file exists at p, taking staged changes into account.
func (t *Tree) Exists(p string) bool {
	p = Clean(p)
	if e, ok := t.staged[p]; ok {
		return !e.deleted
	}
	info, err := t.fs.Stat(p)
	return err == nil && !info.IsDir()
}

// Read returns the content of the file at p.
func (t *Tree) Read(p string) ([]byte, error) {
	p = Clean(p)
	if e, ok := t.staged[p]; ok {
		if e.deleted {
			return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
		}
		return e.content, nil
	}
	info, err := t.fs.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(t.fs, p)
}

// Create stages a new file. It fails if the file already exists.
func (t *Tree) Create(p string, content []byte) error {
	p = Clean(p)
	if t.Exists(p) {
		return &fs.PathError{Op: "create", Path: p, Err: fs.ErrExist}
	}
	t.stage(Action{Kind: Create, Path: p, Content: content})
	return nil
}

// Overwrite stages new content for an existing file.
func (t *Tree) Overwrite(p string, content []byte) error {
	p = Clean(p)
	if !t.Exists(p) {
		return &fs.PathError{Op: "overwrite", Path: p, Err: fs.ErrNotExist}
	}
	t.stage(Action{Kind: Overwrite, Path: p, Content: content})
	return nil
}

// Write creates or overwrites the file at p.
func (t *Tree) Write(p string, content []byte) error {
	if t.Exists(p) {
		return t.Overwrite(p, content)
	}
	return t.Create(p, content)
}

// Delete stages removal of a file or of a whole directory.
func (t *Tree) Delete(p string) error {
	p = Clean(p)
	if t.Exists(p) {
		t.stage(Action{Kind: Delete, Path: p})
		return nil
	}

	files, err := t.Files(p)
	if err != nil {
		return err
	}
	if len(files) == 0 && !t.baseDirExists(p) {
		return &fs.PathError{Op: "delete", Path: p, Err: fs.ErrNotExist}
	}
	for _, f := range files {
		t.staged[f] = &entry{deleted: true}
	}
	t.deletedDirs[p] = true
	t.actions = append(t.actions, Action{Kind: Delete, Path: p})
	return nil
}

// HasDir reports whether a directory exists at p or staged files live below it.
func (t *Tree) HasDir(p string) bool {
	p = Clean(p)
	if t.baseDirExists(p) {
		return true
	}
	files, err := t.Files(p)
	return err == nil && len(files) > 0
}

// Rename stages moving the file at from to to. The destination must not exist.
func (t *Tree) Rename(from, to string) error {
	from, to = Clean(from), Clean(to)
	content, err := t.Read(from)
	if err != nil {
		return err
	}
	if t.Exists(to) {
		return &fs.PathError{Op: "rename", Path: to, Err: fs.ErrExist}
	}
	t.staged[to] = &entry{content: content}
	t.staged[from] = &entry{deleted: true}
	t.actions = append(t.actions, Action{Kind: Rename, Path: from, To: to, Content: content})
	return nil
}

// Files lists every file below dir, sorted.
func (t *Tree) Files(dir string) ([]string, error) {
	dir = Clean(dir)
	prefix := strings.TrimSuffix(dir, "/") + "/"

	seen := make(map[string]bool)
	if ok, _ := afero.DirExists(t.fs, dir); ok {
		err := afero.Walk(t.fs, dir, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !info.IsDir() {
				seen[Clean(p)] = true
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", dir, err)
		}
	}
	for p := range t.staged {
		if strings.HasPrefix(p, prefix) {
			seen[p] = true
		}
	}

	var files []string
	for p := range seen {
		if t.Exists(p) {
			files = append(files, p)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Actions returns the staged mutations in the order they were made.
func (t *Tree) Actions() []Action {
	out := make([]Action, len(t.actions))
	copy(out, t.actions)
	return out
}

// Commit replays the staged actions onto the filesystem and clears the stage.
func (t *Tree) Commit() error {
	for _, a := range t.actions {
		if err := t.apply(a); err != nil {
			return fmt.Errorf("%s %s: %w", a.Kind, a.Path, err)
		}
	}
	t.actions = nil
	t.staged = make(map[string]*entry)
	t.deletedDirs = make(map[string]bool)
	return nil
}

func (t *Tree) apply(a Action) error {
	switch a.Kind {
	case Create, Overwrite:
		if err := t.fs.MkdirAll(path.Dir(a.Path), 0755); err != nil {
			return err
		}
		return afero.WriteFile(t.fs, a.Path, a.Content, 0644)
	case Delete:
		return t.fs.RemoveAll(a.Path)
	case Rename:
		if err := t.fs.MkdirAll(path.Dir(a.To), 0755); err != nil {
			return err
		}
		return t.fs.Rename(a.Path, a.To)
	default:
		return errors.New("unknown action")
	}
}

func (t *Tree) stage(a Action) {
	if a.Kind == Delete {
		t.staged[a.Path] = &entry{deleted: true}
	} else {
		t.staged[a.Path] = &entry{content: a.Content}
	}
	t.actions = append(t.actions, a)
}

func (t *Tree) baseDirExists(p string) bool {
	for d := p; d != "/"; d = path.Dir(d) {
		if t.deletedDirs[d] {
			return false
		}
	}
	ok, err := afero.DirExists(t.fs, p)
	return err == nil && ok
}
