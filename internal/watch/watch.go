package watch

import (
	"context"
	"fmt"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var yearDir = regexp.MustCompile(`^\d{4}$`)

const rebuildTimeout = 30 * time.Second

type BuildFunc func(ctx context.Context) error

// Watcher rebuilds whenever an article under the content root changes.
type Watcher struct {
	Root      string
	Extension string
	Debounce  time.Duration
	Build     BuildFunc
	Log       *zap.Logger
}

// Run builds once, then rebuilds after each burst of changes until ctx is
// done. Build failures are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	if err := w.addTree(fw); err != nil {
		return fmt.Errorf("watch %s: %w", w.Root, err)
	}

	w.rebuild(ctx, log)
	log.Info("watching for changes", zap.String("root", w.Root))

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()

	trigger := func() {
		select {
		case <-debounce.C:
		default:
		}
		debounce.Reset(w.Debounce)
	}

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.relevant(ev.Name) {
				continue
			}
			if ev.Op&fsnotify.Create != 0 && w.isYearDir(ev.Name) {
				if err := fw.Add(ev.Name); err != nil {
					log.Warn("watch new folder", zap.String("path", ev.Name), zap.Error(err))
				}
			}
			trigger()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		case <-debounce.C:
			w.rebuild(ctx, log)
		}
	}
}

func (w *Watcher) rebuild(ctx context.Context, log *zap.Logger) {
	ctx2, cancel := context.WithTimeout(ctx, rebuildTimeout)
	defer cancel()
	if err := w.Build(ctx2); err != nil {
		log.Error("rebuild failed", zap.Error(err))
	}
}

func (w *Watcher) addTree(fw *fsnotify.Watcher) error {
	if err := fw.Add(w.Root); err != nil {
		return err
	}
	entries, err := os.ReadDir(w.Root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		p := filepath.Join(w.Root, e.Name())
		if yearDir.MatchString(e.Name()) && w.isDir(p) {
			if err := fw.Add(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// relevant filters out editor swap files and the temp files of atomic writes.
func (w *Watcher) relevant(path string) bool {
	ext := w.Extension
	if ext == "" {
		ext = ".md"
	}
	if filepath.Ext(path) == ext {
		return true
	}
	return filepath.Dir(path) == filepath.Clean(w.Root) && yearDir.MatchString(filepath.Base(path))
}

func (w *Watcher) isYearDir(path string) bool {
	return filepath.Dir(path) == filepath.Clean(w.Root) && yearDir.MatchString(filepath.Base(path)) && w.isDir(path)
}

func (w *Watcher) isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
