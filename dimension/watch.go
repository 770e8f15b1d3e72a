package dimension

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/reoring/dimschema/internal/logging"
)

// Event reports a change to a document file.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watch streams changes to .json files in dir and its room directories
// until ctx is done. Room directories created while watching are picked
// up. The returned channel is closed when watching stops.
func Watch(ctx context.Context, dir string, log *slog.Logger) (<-chan Event, error) {
	if log == nil {
		log = logging.Discard()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("dimension: watch: %w", err)
	}
	if err := addTree(w, dir); err != nil {
		w.Close()
		return nil, err
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Create) {
					if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
						if err := w.Add(ev.Name); err != nil {
							log.Warn("watch new room failed", "path", ev.Name, "err", err)
						}
						continue
					}
				}
				if !isDocument(ev.Name) {
					continue
				}
				select {
				case out <- Event{Path: ev.Name, Op: ev.Op}:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("watch error", "err", err)
			}
		}
	}()
	return out, nil
}

// addTree watches dir and its direct subdirectories.
func addTree(w *fsnotify.Watcher, dir string) error {
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("dimension: watch %s: %w", dir, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("dimension: watch %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := w.Add(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("dimension: watch %s: %w", e.Name(), err)
		}
	}
	return nil
}

// isDocument excludes the temporary files written by atomic saves.
func isDocument(path string) bool {
	base := filepath.Base(path)
	return filepath.Ext(base) == ".json" && !strings.HasPrefix(base, ".")
}
