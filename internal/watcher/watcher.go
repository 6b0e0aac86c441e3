package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"

	"github.com/IARD-Solutions/solidity-analyzer/internal/solidity"
)

// debounceDelay is how long a burst of events must be quiet before the
// change callback fires.
const debounceDelay = 500 * time.Millisecond

// Watcher observes a project tree and fires a callback once per burst of
// Solidity source changes. Edits to other file types and to excluded or
// hidden directories are ignored.
type Watcher struct {
	logger      hclog.Logger
	root        string
	excludeDirs []string
	onChange    func()

	fsw           *fsnotify.Watcher
	mu            sync.Mutex
	debounceTimer *time.Timer
}

// New creates a watcher rooted at root. onChange runs on a timer goroutine
// after a quiet period, so it must be safe to call from outside Watch.
func New(root string, excludeDirs []string, onChange func(), logger hclog.Logger) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch root %q: %w", root, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		logger:      logger,
		root:        absRoot,
		excludeDirs: excludeDirs,
		onChange:    onChange,
		fsw:         fsw,
	}, nil
}

// Watch blocks dispatching events until ctx is cancelled, which stops the
// watcher cleanly.
func (w *Watcher) Watch(ctx context.Context) error {
	defer w.Close()

	if err := w.addRecursively(w.root); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}
	w.logger.Info("watching for source changes", "root", w.root)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping watcher", "root", w.root)
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

// Close stops the pending debounce timer and releases the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	return w.fsw.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if w.excluded(event.Name) {
		return
	}

	// New directories must be watched as they appear; fsnotify watches are
	// not recursive.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.logger.Debug("watching new directory", "path", event.Name)
			if err := w.fsw.Add(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	if !solidity.IsSourceFile(event.Name) {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	w.logger.Debug("source change detected", "op", event.Op.String(), "path", event.Name)
	w.debounce()
}

func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(debounceDelay, w.onChange)
}

func (w *Watcher) excluded(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return true
	}

	for _, element := range strings.Split(rel, string(filepath.Separator)) {
		if element == "." || element == "" {
			continue
		}
		if strings.HasPrefix(element, ".") {
			return true
		}
		for _, excluded := range w.excludeDirs {
			if element == excluded {
				return true
			}
		}
	}
	return false
}

func (w *Watcher) addRecursively(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.excluded(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
