package internal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType represents the type of filesystem event
type EventType int

const (
	EventCreate EventType = iota
	EventRemove
)

// WatchEvent is a photo appearing in or leaving the watched directory
type WatchEvent struct {
	Type EventType
	Path string
}

// DefaultSettle is how long a new photo must go without writes before it is
// reported
const DefaultSettle = 500 * time.Millisecond

// Watcher wraps an fsnotify watcher and keeps only JPEG events. A created
// photo is reported once it has seen no Write for the settle period, so a
// file still being copied in is never handed out half written.
type Watcher struct {
	watcher   *fsnotify.Watcher
	settle    time.Duration
	events    chan *WatchEvent
	errors    chan error
	ready     chan settled
	done      chan struct{}
	closeOnce sync.Once

	mu      sync.Mutex
	pending map[string]*settling
}

// settling is a created photo waiting out its quiet period. gen counts
// restarts so a timer that fired before the latest write is ignored.
type settling struct {
	timer *time.Timer
	gen   int
}

type settled struct {
	path string
	gen  int
}

// NewWatcher watches dir (not its subdirectories) for new photos. A
// non-positive settle uses DefaultSettle.
func NewWatcher(dir string, settle time.Duration) (*Watcher, error) {
	if settle <= 0 {
		settle = DefaultSettle
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		watcher: fsWatcher,
		settle:  settle,
		events:  make(chan *WatchEvent, 100),
		errors:  make(chan error, 10),
		ready:   make(chan settled, 100),
		done:    make(chan struct{}),
		pending: make(map[string]*settling),
	}
	go w.processEvents()
	return w, nil
}

func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isPhotoFile(event.Name) {
				continue
			}

			switch {
			// atomic writes land as a rename into place, which fsnotify reports as Create
			case event.Has(fsnotify.Create):
				w.schedule(event.Name)
			case event.Has(fsnotify.Write):
				w.touch(event.Name)
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				w.cancel(event.Name)
				if !w.emit(&WatchEvent{Type: EventRemove, Path: event.Name}) {
					return
				}
			}

		case r := <-w.ready:
			if !w.take(r) {
				continue
			}
			if !w.emit(&WatchEvent{Type: EventCreate, Path: r.path}) {
				return
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				// Error channel is full, drop error
			}

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) emit(ev *WatchEvent) bool {
	select {
	case w.events <- ev:
		return true
	case <-w.done:
		return false
	}
}

// schedule starts, or restarts, the quiet period of path
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.pending[path]; ok {
		p.gen++
		p.timer.Reset(w.settle)
		return
	}
	w.pending[path] = &settling{timer: time.AfterFunc(w.settle, func() { w.fire(path) })}
}

func (w *Watcher) fire(path string) {
	w.mu.Lock()
	p, ok := w.pending[path]
	if !ok {
		w.mu.Unlock()
		return
	}
	r := settled{path: path, gen: p.gen}
	w.mu.Unlock()

	select {
	case w.ready <- r:
	case <-w.done:
	}
}

// touch restarts the quiet period of a photo that has not been reported yet
func (w *Watcher) touch(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.pending[path]; ok {
		p.gen++
		p.timer.Reset(w.settle)
	}
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.pending[path]; ok {
		p.timer.Stop()
		delete(w.pending, path)
	}
}

// take removes a settled photo from the pending set. It is false when the
// photo was cancelled or written to after the timer fired.
func (w *Watcher) take(r settled) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	p, ok := w.pending[r.path]
	if !ok || p.gen != r.gen {
		return false
	}
	delete(w.pending, r.path)
	return true
}

// Events returns the channel of filtered watch events
func (w *Watcher) Events() <-chan *WatchEvent {
	return w.events
}

// Errors returns the channel of watcher errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and cleans up resources
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		for path, p := range w.pending {
			p.timer.Stop()
			delete(w.pending, path)
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

// AutoLoader pushes photos into a simulator as they appear
type AutoLoader struct {
	Sim      *Simulator
	Device   string
	Session  *Session // optional
	Log      *Logger
	OnLoaded func(path string)
	OnError  func(*ProcessError)
}

// Run consumes watcher events until ctx is done or too many transfers fail
func (a *AutoLoader) Run(ctx context.Context, w *Watcher) (*ErrorStats, error) {
	stats := NewErrorStats()
	log := a.Log
	if log == nil {
		log = NopLogger()
	}

	for {
		select {
		case <-ctx.Done():
			return stats, nil

		case err := <-w.Errors():
			log.Warn("watcher error", "error", err)

		case ev := <-w.Events():
			if ev.Type != EventCreate {
				log.Debug("photo removed", "file", ev.Path)
				continue
			}

			if _, err := a.Sim.AddMedia(ctx, a.Device, []string{ev.Path}); err != nil {
				if ctx.Err() != nil {
					return stats, nil
				}
				procErr := CategorizeError(ev.Path, err)
				stats.Add(procErr)
				log.Error("auto load failed", "file", ev.Path, "category", procErr.Category, "error", err)
				if a.Session != nil {
					a.Session.LogDetailedError(procErr)
				}
				if a.OnError != nil {
					a.OnError(procErr)
				}
				if abort, reason := stats.ShouldAbort(); abort {
					return stats, fmt.Errorf("watch stopped: %s", reason)
				}
				continue
			}

			stats.ResetConsecutive()
			if a.Session != nil {
				a.Session.LogLoaded(a.Device, 1)
			}
			if a.OnLoaded != nil {
				a.OnLoaded(ev.Path)
			}
		}
	}
}
