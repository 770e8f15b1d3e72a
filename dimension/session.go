package dimension

import (
	"log/slog"

	dimschema "github.com/reoring/dimschema"
	"github.com/reoring/dimschema/editor"
	"github.com/reoring/dimschema/internal/logging"
	"github.com/reoring/dimschema/node"
	"github.com/reoring/dimschema/registry"
	"github.com/reoring/dimschema/rules"
	"github.com/reoring/dimschema/schema"
	"github.com/reoring/dimschema/store"
)

// Session is one open document. It exclusively owns Doc until it is saved
// or dropped.
type Session struct {
	Path   string
	Kind   string
	Schema *schema.Schema // nil when the kind is not registered
	Doc    *node.Node

	fs  store.FS
	log *slog.Logger
}

// Open loads the document at path and resolves its schema from the file
// name.
func (d *Dimension) Open(path string) (*Session, error) {
	return OpenFile(d.fs, d.reg, path, d.log)
}

// OpenFile is Open without a loaded dimension.
func OpenFile(fsys store.FS, reg *registry.Registry, path string, log *slog.Logger) (*Session, error) {
	if log == nil {
		log = logging.Discard()
	}
	doc, err := fsys.Load(path)
	if err != nil {
		return nil, err
	}
	kind, s, ok := reg.ResolvePath(path)
	if !ok {
		log.Debug("no schema for kind, editing without one", "kind", kind, "path", path)
	}
	return &Session{Path: path, Kind: kind, Schema: s, Doc: doc, fs: fsys, log: log}, nil
}

// Inspect renders the document through fe and returns the missing required
// properties.
func (s *Session) Inspect(fe editor.Frontend) dimschema.Issues {
	return editor.Inspect(fe, s.Schema, s.Doc)
}

// Validate checks the document against its schema in depth. Documents of
// unknown kinds have nothing to validate against.
func (s *Session) Validate() dimschema.Issues {
	if s.Schema == nil {
		return nil
	}
	return editor.Conform(s.Schema, s.Doc)
}

// Lint runs rs over the document. Unlike Validate it also applies to
// documents of unknown kinds.
func (s *Session) Lint(rs ...rules.Rule) dimschema.Issues {
	return rules.Check(s.Doc, rs...)
}

// Save writes the document back to its file. On failure the document is
// left as it was.
func (s *Session) Save() error {
	if err := s.fs.Save(s.Path, s.Doc); err != nil {
		s.log.Error("save failed", "path", s.Path, "err", err)
		return err
	}
	s.log.Info("saved", "path", s.Path)
	return nil
}

// Report is the validation result of one file.
type Report struct {
	Path   string
	Kind   string
	Issues dimschema.Issues
	Err    error // load failure
}

// Validate checks every file of the dimension. Files that fail to load are
// reported with Err instead of stopping the run.
func (d *Dimension) Validate() []Report {
	var out []Report
	for _, path := range d.Files() {
		s, err := d.Open(path)
		if err != nil {
			out = append(out, Report{Path: path, Kind: registry.KindFromPath(path), Err: err})
			continue
		}
		iss := s.Validate()
		if d.lint != nil {
			iss = append(iss, s.Lint(d.lint(s.Kind)...)...)
		}
		out = append(out, Report{Path: path, Kind: s.Kind, Issues: iss})
	}
	return out
}
