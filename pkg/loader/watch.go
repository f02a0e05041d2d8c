package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// Watch emits a Source every time a note file below the root is created or
// written. Bursts of writes to one file are collapsed into a single Source.
// The channel is closed once ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := l.walkDirs(watcher.Add); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", l.root, err)
	}

	out := make(chan Source)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		return l.run(ctx, watcher, out)
	}, lifecycle.WithErrorHandler(func(err error) {
		l.fail(fmt.Errorf("watcher stopped: %w", err))
	}))

	return out, nil
}

func (l *Loader) run(ctx context.Context, watcher *fsnotify.Watcher, out chan<- Source) (err error) {
	d := newDebouncer(l.debounce)
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if l.logger.Enabled(ctx, slog.LevelDebug) {
				l.logger.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
			} else {
				l.logger.Error("watcher panic", "error", err)
			}
		}
		_ = watcher.Close()
		d.stop()
		close(out)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			l.handle(ctx, watcher, d, event, out)

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			l.logger.Error("fsnotify error", "error", wErr)
			l.fail(wErr)
		}
	}
}

func (l *Loader) handle(ctx context.Context, watcher *fsnotify.Watcher, d *debouncer, event fsnotify.Event, out chan<- Source) {
	l.logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !l.hidden(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					l.fail(fmt.Errorf("watch %s: %w", event.Name, err))
				}
			}
			return
		}
	}

	if !l.Match(event.Name) {
		return
	}

	path := event.Name
	d.add(path, func() {
		src, err := l.Load(path)
		if err != nil {
			// Removed before the writes settled.
			l.logger.Debug("dropping event", "path", path, "error", err)
			return
		}
		select {
		case out <- src:
		case <-ctx.Done():
		}
	})
}

func (l *Loader) fail(err error) {
	if l.onError != nil {
		l.onError(err)
		return
	}
	l.logger.Error("watch failed", "error", err)
}
