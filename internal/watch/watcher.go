// Package watch re-runs manifest generation when the source tree changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce is how long the tree must be quiet before regenerating.
const DefaultDebounce = 200 * time.Millisecond

// Config holds configuration for the watcher.
type Config struct {
	Root     string
	Marker   string        // writes to files with this name trigger a run
	Debounce time.Duration // defaults to DefaultDebounce
	Exclude  []string      // directory base names that are not watched
	Ignore   []string      // files whose events never trigger a run
	OnChange func() error
}

// Watcher monitors a source tree and calls OnChange once per burst of
// structural changes (created, removed or renamed entries, or written markers).
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	marker   string
	debounce time.Duration
	exclude  map[string]bool
	ignore   map[string]bool
	onChange func() error

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu      sync.Mutex // guards timer and stopped
	timer   *time.Timer
	stopped bool

	runMu sync.Mutex // serializes OnChange
}

// New creates a watcher. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	if cfg.OnChange == nil {
		return nil, errors.New("watch: OnChange is required")
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving watch root: %w", err)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	ignore := make(map[string]bool, len(cfg.Ignore))
	for _, p := range cfg.Ignore {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving ignored path: %w", err)
		}
		ignore[abs] = true
	}
	exclude := make(map[string]bool, len(cfg.Exclude))
	for _, name := range cfg.Exclude {
		exclude[name] = true
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	return &Watcher{
		watcher:  fw,
		root:     root,
		marker:   cfg.Marker,
		debounce: cfg.Debounce,
		exclude:  exclude,
		ignore:   ignore,
		onChange: cfg.OnChange,
		done:     make(chan struct{}),
	}, nil
}

// Start adds the tree to the watch list and starts the event loop.
func (w *Watcher) Start() error {
	if err := w.addDirectoryRecursive(w.root); err != nil {
		_ = w.watcher.Close()
		return fmt.Errorf("watching %s: %w", w.root, err)
	}

	w.wg.Add(1)
	go w.eventLoop()

	log.Info().Str("path", w.root).Dur("debounce", w.debounce).Msg("watching for sub-project changes")
	return nil
}

// Stop ends the event loop, cancels a pending run and waits for a running
// one to finish. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		if w.timer != nil && w.timer.Stop() {
			w.wg.Done()
		}
		w.mu.Unlock()

		close(w.done)
		if cerr := w.watcher.Close(); cerr != nil {
			err = fmt.Errorf("closing watcher: %w", cerr)
		}
		w.wg.Wait()
		log.Info().Msg("watcher stopped")
	})
	return err
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("watcher error")

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if w.shouldIgnore(event.Name) {
		return
	}

	switch {
	case event.Has(fsnotify.Create):
		// New directories need their own watch; their contents are picked up
		// by the full rescan even if files land before the watch is added.
		_ = w.addDirectoryRecursive(event.Name)
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
	case event.Has(fsnotify.Write):
		if filepath.Base(event.Name) != w.marker {
			return
		}
	default:
		return
	}

	log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")
	w.schedule()
}

// schedule (re)arms the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil && w.timer.Stop() {
		w.wg.Done()
	}
	w.wg.Add(1)
	w.timer = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		w.fire()
	})
}

func (w *Watcher) fire() {
	select {
	case <-w.done:
		return
	default:
	}

	w.runMu.Lock()
	defer w.runMu.Unlock()
	if err := w.onChange(); err != nil {
		log.Error().Err(err).Msg("regeneration failed")
	}
}

// addDirectoryRecursive adds a directory and all its subdirectories to the watcher.
func (w *Watcher) addDirectoryRecursive(path string) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			if walkPath == path {
				return err
			}
			log.Warn().Err(err).Str("path", walkPath).Msg("skipping unreadable path")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if walkPath != w.root && w.exclude[d.Name()] {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(walkPath); err != nil {
			log.Warn().Err(err).Str("path", walkPath).Msg("failed to watch path")
		}
		return nil
	})
}

// shouldIgnore reports whether an event path is an ignored file, a pending
// temp file written next to one, or inside an excluded directory.
func (w *Watcher) shouldIgnore(path string) bool {
	if w.ignore[path] {
		return true
	}
	base := filepath.Base(path)
	for p := range w.ignore {
		if filepath.Dir(p) == filepath.Dir(path) && strings.HasPrefix(base, "."+filepath.Base(p)) {
			return true
		}
	}

	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if w.exclude[part] {
			return true
		}
	}
	return false
}
