package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	mdwerror "github.com/msto63/exprfront/foundation/core/error"
)

// DefaultDebounce is the quiet period after the last file event before a
// reload
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads a configuration file when it changes on disk
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(*Config)
	onError  func(error)
	debounce time.Duration

	stopCh chan struct{}
	done   chan struct{}
	once   sync.Once
}

// Watch starts watching path. onChange receives every successfully
// reloaded configuration; onError receives reload and watcher errors and
// may be nil. The watch ends when ctx is done or Stop is called.
func Watch(ctx context.Context, path string, debounce time.Duration, onChange func(*Config), onError func(error)) (*Watcher, error) {
	if path == "" {
		return nil, mdwerror.New("file path required for watching").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if onError == nil {
		onError = func(error) {}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to resolve config path").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to create watcher").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Watch")
	}

	// Editors often replace the file, so watch its directory
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, mdwerror.Wrap(err, "failed to watch config directory").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Watch").
			WithDetail("path", abs)
	}

	w := &Watcher{
		path:     abs,
		watcher:  fw,
		onChange: onChange,
		onError:  onError,
		debounce: debounce,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.loop(ctx)
	return w, nil
}

// Stop ends the watch and waits for the watch goroutine to exit
func (w *Watcher) Stop() {
	w.once.Do(func() { close(w.stopCh) })
	<-w.done
}

// Path returns the absolute path being watched
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	defer w.watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			// Debounce: editors emit several events per save
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			cfg, err := Load(w.path)
			if err != nil {
				w.onError(err)
				continue
			}
			w.onChange(cfg)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onError(mdwerror.Wrap(err, "config watcher error").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.Watch"))
		}
	}
}
