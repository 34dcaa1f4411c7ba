// Package watch reloads configuration when the config file changes on disk.
// The checker's tier table is immutable per configuration, so a change means
// one thing: rebuild from scratch.
package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces bursts of write events from editors that save in
// several steps.
const debounceDelay = 300 * time.Millisecond

// Watcher watches one config file and invokes OnChange after edits settle.
type Watcher struct {
	// Path is the config file to watch.
	Path string

	// OnChange runs after a settled change to Path.
	OnChange func()

	// Logger defaults to discard.
	Logger *slog.Logger
}

// Run blocks watching the file until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory, not the file: editors replace files on save,
	// which drops a watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(w.Path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.Path), err)
	}

	target := filepath.Clean(w.Path)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("config file changed", "event", event.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			if w.OnChange != nil {
				w.OnChange()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}
