package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"

	dimschema "github.com/reoring/dimschema"
	"github.com/reoring/dimschema/dimension"
	"github.com/reoring/dimschema/editor"
	"github.com/reoring/dimschema/i18n"
	"github.com/reoring/dimschema/node"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string     { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error { *m = append(*m, v); return nil }

func editCmd(args []string) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	var sets, deletes, appends, resizes, toggles multiFlag
	var dryRun bool
	fs.Var(&sets, "set", "ptr=value; value is JSON, or a bare string")
	fs.Var(&deletes, "delete", "ptr=index of an array element to remove")
	fs.Var(&appends, "append", "ptr of an array to append a default element to")
	fs.Var(&resizes, "resize", "ptr=WxH of an initial_grid")
	fs.Var(&toggles, "toggle", "ptr=x,y of an initial_grid cell")
	fs.BoolVar(&dryRun, "n", false, "print the result instead of saving")
	e := setup(fs, args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	sc, err := buildScript(sets, deletes, appends, resizes, toggles)
	if err != nil {
		fatalf("%v", err)
	}
	sc.GridLimit = e.cfg.Grid.MaxSize

	s, err := dimension.OpenFile(e.fs, e.reg, fs.Arg(0), e.log)
	if err != nil {
		fatalf("%v", err)
	}
	missing := s.Inspect(sc)
	for _, ptr := range sc.Pending() {
		// Values for properties the document does not have yet.
		if v, ok := sc.PendingSet(ptr); ok {
			if err := s.Doc.Put(ptr, v); err == nil {
				e.log.Debug("added property", "ptr", ptr)
				continue
			}
		}
		e.log.Warn("edit not applied", "ptr", ptr)
	}
	for _, ptr := range sc.Rejected {
		e.log.Warn("value does not fit the property type", "ptr", ptr)
	}
	for _, c := range sc.Unhandled {
		e.log.Debug("no editor for value", "ptr", c.Path, "label", c.Label)
	}

	if dryRun {
		printNode(s.Doc)
	} else if err := s.Save(); err != nil {
		fatalf("%v", err)
	}
	// Properties filled in by -set are no longer missing.
	still := dimschema.Issues{}
	for _, it := range missing {
		if _, ok := s.Doc.Lookup(it.Path); !ok {
			still = append(still, it)
		}
	}
	for _, it := range still {
		fmt.Printf("%s: %s\n", s.Path, i18n.Describe(it))
	}
}

func buildScript(sets, deletes, appends, resizes, toggles []string) (*editor.Script, error) {
	sc := editor.NewScript()
	for _, a := range sets {
		ptr, raw, err := splitEdit(a)
		if err != nil {
			return nil, err
		}
		v, perr := node.Parse([]byte(raw))
		if perr != nil {
			v = node.NewString(raw)
		}
		sc.Set(ptr, v)
	}
	for _, a := range deletes {
		ptr, raw, err := splitEdit(a)
		if err != nil {
			return nil, err
		}
		i, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("-delete %s: %w", a, err)
		}
		sc.Delete(ptr, i)
	}
	for _, ptr := range appends {
		sc.Append(ptr)
	}
	for _, a := range resizes {
		ptr, raw, err := splitEdit(a)
		if err != nil {
			return nil, err
		}
		w, h, err := pair(raw, "x")
		if err != nil {
			return nil, fmt.Errorf("-resize %s: %w", a, err)
		}
		sc.Resize(ptr, w, h)
	}
	for _, a := range toggles {
		ptr, raw, err := splitEdit(a)
		if err != nil {
			return nil, err
		}
		x, y, err := pair(raw, ",")
		if err != nil {
			return nil, fmt.Errorf("-toggle %s: %w", a, err)
		}
		sc.Toggle(ptr, x, y)
	}
	return sc, nil
}

func splitEdit(a string) (ptr, value string, err error) {
	ptr, value, ok := strings.Cut(a, "=")
	if !ok || !strings.HasPrefix(ptr, "/") {
		return "", "", fmt.Errorf("edit %q: want /pointer=value", a)
	}
	return ptr, value, nil
}

func pair(s, sep string) (int, int, error) {
	a, b, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, fmt.Errorf("want two numbers separated by %q", sep)
	}
	x, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func watchCmd(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	e := setup(fs, args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	events, err := dimension.Watch(ctx, fs.Arg(0), e.log)
	if err != nil {
		fatalf("%v", err)
	}
	e.log.Info("watching", "path", fs.Arg(0))
	for ev := range events {
		switch {
		case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
			e.log.Info("document removed", "path", ev.Path)
		case ev.Op.Has(fsnotify.Write), ev.Op.Has(fsnotify.Create):
			printReport(validateFile(e, ev.Path), dimschema.Warn)
		}
	}
}
