// Package store persists JSON documents on a filesystem.
//
// Every failure is reported as a *PersistenceError naming the operation and
// path; the in-memory document handed to Save is never modified.
package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	dimschema "github.com/reoring/dimschema"
	"github.com/reoring/dimschema/node"
)

// FS is the persistence collaborator the dimension model works against.
type FS interface {
	Load(path string) (*node.Node, error)
	Save(path string, n *node.Node) error
	List(dir string) ([]Entry, error)
	Mkdir(dir string) error
	Exists(path string) bool
	RemoveAll(path string) error
}

// Entry is one directory entry.
type Entry struct {
	Name string
	Dir  bool
}

// PersistenceError describes a failed load, save, list or mkdir.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Disk is the FS backed by the operating system.
type Disk struct {
	// Indent is the per-level indentation of saved documents; empty
	// means two spaces.
	Indent string
	// Strict controls duplicate keys when loading.
	Strict dimschema.Strictness
}

var _ FS = Disk{}

// Load reads and parses the document at path. UTF-8 (with or without BOM)
// and UTF-16 with a byte order mark are accepted.
func (d Disk) Load(path string) (*node.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}
	defer f.Close()
	// The BOM picks the decoder and is dropped; without one the text is UTF-8.
	text := transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	data, err := io.ReadAll(text)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}
	n, _, err := node.ParseStrict(data, d.Strict)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: path, Err: err}
	}
	return n, nil
}

// Save writes n to path atomically: the document goes to a temporary file in
// the same directory which then replaces path.
func (d Disk) Save(path string, n *node.Node) error {
	indent := d.Indent
	if indent == "" {
		indent = "  "
	}
	data, err := node.MarshalIndent(n, "", indent)
	if err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return &PersistenceError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// List returns the entries of dir sorted by name.
func (Disk) List(dir string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Path: dir, Err: err}
	}
	out := make([]Entry, 0, len(des))
	for _, de := range des {
		out = append(out, Entry{Name: de.Name(), Dir: de.IsDir()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Mkdir creates dir and any missing parents.
func (Disk) Mkdir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Op: "mkdir", Path: dir, Err: err}
	}
	return nil
}

// Exists reports whether path exists.
func (Disk) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// RemoveAll deletes path and everything below it.
func (Disk) RemoveAll(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return &PersistenceError{Op: "remove", Path: path, Err: err}
	}
	return nil
}

// IsNotExist reports whether err means the path does not exist.
func IsNotExist(err error) bool { return errors.Is(err, fs.ErrNotExist) }
