// Package dimension manages a Dimension data pack on disk: the
// room_connections.json root document, one directory per room and one JSON
// file per placed object.
package dimension

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/reoring/dimschema/internal/logging"
	"github.com/reoring/dimschema/node"
	"github.com/reoring/dimschema/registry"
	"github.com/reoring/dimschema/rules"
	"github.com/reoring/dimschema/schema"
	"github.com/reoring/dimschema/store"
	"github.com/reoring/dimschema/template"
)

// ConnectionsFile is the root document of a dimension.
const ConnectionsFile = "room_connections.json"

// DefaultRooms are created with every new dimension.
var DefaultRooms = []string{"North", "East", "South", "West", "Floor", "Ceiling", "Multiverse"}

var (
	ErrExists      = errors.New("dimension: already exists")
	ErrNotFound    = errors.New("dimension: not found")
	ErrInvalidName = errors.New("dimension: invalid name")
)

// Room lists the object files found in one room directory.
type Room struct {
	Name    string
	Objects []string // file names, e.g. "Lockbox.json"
}

// Dimension is a loaded data pack.
type Dimension struct {
	Name  string
	Path  string
	Rooms []Room

	fs   store.FS
	reg  *registry.Registry
	log  *slog.Logger
	lint func(kind string) []rules.Rule
}

// Option configures Create and Load.
type Option func(*options)

type options struct {
	log   *slog.Logger
	rooms []string
	lint  func(kind string) []rules.Rule
}

// WithLogger sets the logger for skipped entries and other warnings.
func WithLogger(l *slog.Logger) Option { return func(o *options) { o.log = l } }

// WithRooms replaces DefaultRooms for Create.
func WithRooms(rooms ...string) Option { return func(o *options) { o.rooms = rooms } }

// WithRules adds the rules returned for each document's kind to Validate.
func WithRules(fn func(kind string) []rules.Rule) Option {
	return func(o *options) { o.lint = fn }
}

func newOptions(opts []Option) options {
	o := options{rooms: DefaultRooms}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logging.Discard()
	}
	return o
}

// Create makes a new dimension directory under base with one directory per
// room and a room_connections.json listing them, then loads it.
func Create(fsys store.FS, reg *registry.Registry, base, name string, opts ...Option) (*Dimension, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	dir := filepath.Join(base, name)
	if fsys.Exists(dir) {
		return nil, fmt.Errorf("%w: %s", ErrExists, dir)
	}

	rooms := node.NewObject()
	for _, r := range o.rooms {
		if err := checkName(r); err != nil {
			return nil, err
		}
		if err := fsys.Mkdir(filepath.Join(dir, r)); err != nil {
			return nil, err
		}
		rooms.Set(r, node.NewObject().Set("layout", node.NewObject()))
	}
	doc := node.NewObject().Set("rooms", rooms)
	if err := fsys.Save(filepath.Join(dir, ConnectionsFile), doc); err != nil {
		return nil, err
	}
	o.log.Info("dimension created", "path", dir, "rooms", len(o.rooms))
	return Load(fsys, reg, dir, opts...)
}

// Load reads the dimension at dir. Rooms with empty names and object files
// with empty names are skipped with a warning; a missing room directory
// yields a room without objects.
func Load(fsys store.FS, reg *registry.Registry, dir string, opts ...Option) (*Dimension, error) {
	o := newOptions(opts)
	dir = filepath.Clean(dir)
	d := &Dimension{Name: filepath.Base(dir), Path: dir, fs: fsys, reg: reg, log: o.log, lint: o.lint}

	conn, err := fsys.Load(d.ConnectionsPath())
	if err != nil {
		return nil, err
	}
	for _, name := range conn.Field("rooms").Keys() {
		if strings.TrimSpace(name) == "" {
			o.log.Warn("skipping room with empty name", "dimension", d.Name)
			continue
		}
		room := Room{Name: name}
		entries, err := fsys.List(filepath.Join(dir, name))
		if err != nil {
			o.log.Warn("room directory unreadable", "room", name, "err", err)
		}
		for _, e := range entries {
			if e.Dir || filepath.Ext(e.Name) != ".json" {
				continue
			}
			if strings.TrimSuffix(e.Name, ".json") == "" {
				o.log.Warn("skipping object file with empty name", "room", name)
				continue
			}
			room.Objects = append(room.Objects, e.Name)
		}
		d.Rooms = append(d.Rooms, room)
	}
	o.log.Debug("dimension loaded", "path", dir, "rooms", len(d.Rooms))
	return d, nil
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ConnectionsPath returns the path of room_connections.json.
func (d *Dimension) ConnectionsPath() string { return filepath.Join(d.Path, ConnectionsFile) }

// ObjectPath returns the path of an object file in room.
func (d *Dimension) ObjectPath(room, file string) string { return filepath.Join(d.Path, room, file) }

// Room returns the named room.
func (d *Dimension) Room(name string) (*Room, bool) {
	for i := range d.Rooms {
		if d.Rooms[i].Name == name {
			return &d.Rooms[i], true
		}
	}
	return nil, false
}

func (d *Dimension) roomSchema() *schema.Schema {
	s, _ := d.reg.Shared(registry.SchemaRoom)
	return s
}

// NewRoomDocument returns the document a new room starts with: the
// required Room properties plus an empty layout.
func (d *Dimension) NewRoomDocument() *node.Node {
	doc := template.Instantiate(d.roomSchema(), template.RequiredOnly())
	doc.Set("layout", node.NewObject().
		Set("forcusable", node.NewObject()).
		Set("interactable", node.NewObject()))
	return doc
}

// AddRoom registers a room in room_connections.json and creates its
// directory.
func (d *Dimension) AddRoom(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	conn, err := d.fs.Load(d.ConnectionsPath())
	if err != nil {
		return err
	}
	rooms, ok := conn.Get("rooms")
	if !ok || !rooms.IsObject() {
		rooms = node.NewObject()
		conn.Set("rooms", rooms)
	}
	if rooms.Has(name) {
		return fmt.Errorf("%w: room %q", ErrExists, name)
	}
	if err := d.fs.Mkdir(filepath.Join(d.Path, name)); err != nil {
		return err
	}
	rooms.Set(name, d.NewRoomDocument())
	if err := d.fs.Save(d.ConnectionsPath(), conn); err != nil {
		return err
	}
	d.Rooms = append(d.Rooms, Room{Name: name})
	d.log.Info("room added", "room", name)
	return nil
}

// RemoveRoom drops a room from room_connections.json and deletes its
// directory.
func (d *Dimension) RemoveRoom(name string) error {
	conn, err := d.fs.Load(d.ConnectionsPath())
	if err != nil {
		return err
	}
	rooms := conn.Field("rooms")
	if !rooms.Has(name) {
		return fmt.Errorf("%w: room %q", ErrNotFound, name)
	}
	rooms.Delete(name)
	if err := d.fs.Save(d.ConnectionsPath(), conn); err != nil {
		return err
	}
	if err := d.fs.RemoveAll(filepath.Join(d.Path, name)); err != nil {
		return err
	}
	d.Rooms = slices.DeleteFunc(d.Rooms, func(r Room) bool { return r.Name == name })
	d.log.Info("room removed", "room", name)
	return nil
}

// CreateObject writes a new object file for kind into room, instantiated
// from the kind's schema ({} when the kind is unknown), and returns its
// path.
func (d *Dimension) CreateObject(room, kind string) (string, error) {
	r, ok := d.Room(room)
	if !ok {
		return "", fmt.Errorf("%w: room %q", ErrNotFound, room)
	}
	if err := checkName(kind); err != nil {
		return "", err
	}
	file := kind + ".json"
	path := d.ObjectPath(room, file)
	if d.fs.Exists(path) {
		return "", fmt.Errorf("%w: %s", ErrExists, path)
	}
	if _, known := d.reg.Resolve(kind); !known {
		d.log.Warn("creating object of unknown kind", "kind", kind)
	}
	if err := d.fs.Save(path, template.ForKind(d.reg, kind)); err != nil {
		return "", err
	}
	r.Objects = append(r.Objects, file)
	slices.Sort(r.Objects)
	return path, nil
}

// Files lists the connections file followed by every object file.
func (d *Dimension) Files() []string {
	out := []string{d.ConnectionsPath()}
	for _, r := range d.Rooms {
		for _, f := range r.Objects {
			out = append(out, d.ObjectPath(r.Name, f))
		}
	}
	return out
}
