package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"

	dimschema "github.com/reoring/dimschema"
	"github.com/reoring/dimschema/dimension"
	"github.com/reoring/dimschema/draft"
	"github.com/reoring/dimschema/gridpos"
	"github.com/reoring/dimschema/i18n"
	"github.com/reoring/dimschema/internal/config"
	"github.com/reoring/dimschema/internal/logging"
	"github.com/reoring/dimschema/node"
	"github.com/reoring/dimschema/registry"
	"github.com/reoring/dimschema/rules"
	"github.com/reoring/dimschema/schema"
	"github.com/reoring/dimschema/store"
	"github.com/reoring/dimschema/template"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub, args := os.Args[1], os.Args[2:]
	switch sub {
	case "new":
		newCmd(args)
	case "ls":
		lsCmd(args)
	case "kinds":
		kindsCmd(args)
	case "template":
		templateCmd(args)
	case "schema":
		schemaCmd(args)
	case "action":
		actionCmd(args)
	case "validate":
		os.Exit(validateCmd(args))
	case "edit":
		editCmd(args)
	case "link":
		linkCmd(args)
	case "pos":
		posCmd(args)
	case "watch":
		watchCmd(args)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `dimedit: Dimension data pack editor

Usage:
  dimedit new [-root dir] <name>         create a dimension with the configured rooms
  dimedit ls <dimension>                 list rooms and object files
  dimedit kinds                          list registered object kinds
  dimedit template [-required] <kind>    print a default document
  dimedit schema <kind>                  print the JSON Schema of a kind
  dimedit action <ActionType>            print a default action tree
  dimedit validate [-errors] <path>      validate a document or a whole dimension
  dimedit edit [edits] <file>            apply edits by JSON Pointer and save
  dimedit link [flags] <dimension>       set a room transition
  dimedit pos <range>                    check a grid_pos against the room grid
  dimedit watch <dimension>              validate documents as they change

Every command accepts -config (default dimedit.yaml) and -v.`)
}

// env is the state shared by every command.
type env struct {
	cfg config.Config
	log *slog.Logger
	reg *registry.Registry
	fs  store.Disk
}

// setup registers the common flags on fs, parses args and loads the
// configuration, logger and registry.
func setup(fs *flag.FlagSet, args []string) *env {
	var cfgPath string
	var verbose bool
	fs.StringVar(&cfgPath, "config", "", "configuration file")
	fs.BoolVar(&verbose, "v", false, "enable debug logs")
	_ = fs.Parse(args)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	log, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fatalf("%v", err)
	}
	i18n.SetLanguage(cfg.Language)

	var defs []schema.Definition
	for _, path := range cfg.Schemas {
		data, err := os.ReadFile(path)
		if err != nil {
			fatalf("schemas: %v", err)
		}
		d, err := schema.DecodeDefinitions(data)
		if err != nil {
			fatalf("%s: %v", path, err)
		}
		log.Debug("schema definitions loaded", "path", path, "count", len(d))
		defs = append(defs, d...)
	}
	reg, err := registry.Initialize(registry.WithDefinitions(defs...))
	if err != nil {
		fatalf("%v", err)
	}
	return &env{cfg: cfg, log: log, reg: reg, fs: store.Disk{}}
}

func (e *env) dimOpts() []dimension.Option {
	return []dimension.Option{
		dimension.WithLogger(e.log),
		dimension.WithRooms(e.cfg.Rooms...),
		dimension.WithRules(e.rulesFor),
	}
}

func (e *env) rulesFor(kind string) []rules.Rule {
	return rules.ForKind(kind, rules.Grid{Cols: e.cfg.Grid.Cols, Rows: e.cfg.Grid.Rows})
}

func newCmd(args []string) {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	var root string
	fs.StringVar(&root, "root", "", "parent directory (defaults to data_root)")
	e := setup(fs, args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	if root == "" {
		root = e.cfg.DataRoot
	}
	if err := e.fs.Mkdir(root); err != nil {
		fatalf("%v", err)
	}
	d, err := dimension.Create(e.fs, e.reg, root, fs.Arg(0), e.dimOpts()...)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Println(d.Path)
}

func lsCmd(args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	e := setup(fs, args)
	d := mustLoad(e, fs)
	for _, r := range d.Rooms {
		fmt.Printf("%s/\n", r.Name)
		for _, o := range r.Objects {
			kind := registry.KindFromPath(o)
			if _, ok := e.reg.Resolve(kind); !ok {
				fmt.Printf("  %s (no schema)\n", o)
				continue
			}
			fmt.Printf("  %s\n", o)
		}
	}
}

func kindsCmd(args []string) {
	fs := flag.NewFlagSet("kinds", flag.ExitOnError)
	e := setup(fs, args)
	for _, k := range e.reg.Kinds() {
		fmt.Println(k)
	}
}

func templateCmd(args []string) {
	fs := flag.NewFlagSet("template", flag.ExitOnError)
	var required bool
	fs.BoolVar(&required, "required", false, "only required properties")
	e := setup(fs, args)
	kind := mustKind(e, fs)
	var opts []template.Option
	if required {
		opts = append(opts, template.RequiredOnly())
	}
	printNode(template.ForKind(e.reg, kind, opts...))
}

func schemaCmd(args []string) {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	e := setup(fs, args)
	s, _ := e.reg.Resolve(mustKind(e, fs))
	b, err := j.MarshalIndent(s.JSONSchema(), "", "  ")
	if err != nil {
		fatalf("encode schema: %v", err)
	}
	fmt.Println(string(b))
}

func actionCmd(args []string) {
	fs := flag.NewFlagSet("action", flag.ExitOnError)
	setup(fs, args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	k, err := draft.ParseKind(fs.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}
	printNode(draft.ActionTemplate(k))
}

func validateCmd(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var errorsOnly bool
	fs.BoolVar(&errorsOnly, "errors", false, "hide warnings")
	e := setup(fs, args)
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	level := dimschema.Warn
	if errorsOnly {
		level = dimschema.Error
	}
	failed := false
	for _, r := range collectReports(e, fs.Arg(0)) {
		if printReport(r, level) {
			failed = true
		}
	}
	if failed {
		return 1
	}
	return 0
}

// collectReports validates a single document, or every document of the
// dimension when path is a dimension directory.
func collectReports(e *env, path string) []dimension.Report {
	if e.fs.Exists(filepath.Join(path, dimension.ConnectionsFile)) {
		d, err := dimension.Load(e.fs, e.reg, path, e.dimOpts()...)
		if err != nil {
			fatalf("%v", err)
		}
		return d.Validate()
	}
	return []dimension.Report{validateFile(e, path)}
}

func validateFile(e *env, path string) dimension.Report {
	s, err := dimension.OpenFile(e.fs, e.reg, path, e.log)
	if err != nil {
		return dimension.Report{Path: path, Kind: registry.KindFromPath(path), Err: err}
	}
	iss := append(s.Validate(), s.Lint(e.rulesFor(s.Kind)...)...)
	return dimension.Report{Path: path, Kind: s.Kind, Issues: iss}
}

// printReport writes r to stdout and reports whether it holds errors.
func printReport(r dimension.Report, level dimschema.Severity) bool {
	if r.Err != nil {
		if iss, ok := dimschema.AsIssues(r.Err); ok {
			r.Issues = append(r.Issues, iss...)
		} else {
			fmt.Printf("%s: error %v\n", r.Path, r.Err)
			return true
		}
	}
	for _, it := range r.Issues.Filter(level) {
		fmt.Printf("%s: %s\n", r.Path, i18n.Describe(it))
	}
	return r.Issues.HasErrors()
}

func linkCmd(args []string) {
	fs := flag.NewFlagSet("link", flag.ExitOnError)
	var t draft.Transition
	var room, dir string
	fs.StringVar(&room, "room", "", "source room")
	fs.StringVar(&dir, "dir", "", "direction: Up, Down, Left, Right or Forward")
	fs.StringVar(&t.To, "to", "", "target room")
	fs.StringVar(&t.Condition, "flag", "", "flag that must be on")
	fs.StringVar(&t.Scope, "scope", "", "flag scope")
	fs.StringVar(&t.GridPos, "pos", "", "grid_pos of a Forward transition")
	e := setup(fs, args)
	if fs.NArg() != 1 || room == "" {
		fs.Usage()
		os.Exit(2)
	}
	t.Direction = draft.Direction(dir)
	d, err := dimension.Load(e.fs, e.reg, fs.Arg(0), e.dimOpts()...)
	if err != nil {
		fatalf("%v", err)
	}
	if _, ok := d.Room(room); !ok {
		fatalf("%v: room %q", dimension.ErrNotFound, room)
	}
	if _, ok := d.Room(t.To); !ok {
		e.log.Warn("transition target is not a room of this dimension", "to", t.To)
	}
	s, err := d.Open(d.ConnectionsPath())
	if err != nil {
		fatalf("%v", err)
	}
	if err := draft.SetTransition(s.Doc.Field("rooms").Field(room), t); err != nil {
		fatalf("%v", err)
	}
	if err := s.Save(); err != nil {
		fatalf("%v", err)
	}
}

func posCmd(args []string) {
	fs := flag.NewFlagSet("pos", flag.ExitOnError)
	e := setup(fs, args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	r, err := gridpos.Parse(fs.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}
	sel := gridpos.NewSelector(e.cfg.Grid.Cols, e.cfg.Grid.Rows)
	if !sel.Click(r.Min, false) || !sel.Click(r.Max, true) {
		cols, rows := sel.Size()
		fatalf("%s is outside the %dx%d room grid", r, cols, rows)
	}
	fmt.Printf("%s (%dx%d)\n", sel.Text(), r.Width(), r.Height())
}

func mustLoad(e *env, fs *flag.FlagSet) *dimension.Dimension {
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	d, err := dimension.Load(e.fs, e.reg, fs.Arg(0), e.dimOpts()...)
	if err != nil {
		fatalf("%v", err)
	}
	return d
}

func mustKind(e *env, fs *flag.FlagSet) string {
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	kind := strings.TrimSuffix(fs.Arg(0), ".json")
	if _, ok := e.reg.Resolve(kind); !ok {
		fatalf("unknown kind %q (see dimedit kinds)", kind)
	}
	return kind
}

func printNode(n *node.Node) {
	b, err := node.MarshalIndent(n, "", "  ")
	if err != nil {
		fatalf("encode: %v", err)
	}
	fmt.Println(string(b))
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "dimedit: "+format+"\n", a...)
	os.Exit(1)
}
