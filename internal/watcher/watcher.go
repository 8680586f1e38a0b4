// Package watcher subscribes to directory change notifications: fsnotify-
// backed events, debounced and coalesced over a short window, with a
// bounded, LRU-evicted table of active watches.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Kind is the coalesced change kind delivered to a subscriber.
type Kind string

const (
	Created  Kind = "created"
	Modified Kind = "modified"
	Deleted  Kind = "deleted"
	Renamed  Kind = "renamed"
	Changed  Kind = "changed" // metadata-only change (attributes, permissions)
)

// Event is one coalesced, debounced change delivered to a subscriber.
type Event struct {
	Kind Kind
	Path string
	From string // populated only for Renamed: the old path
	Time time.Time
}

// Subscription is returned by Watch; Events and Errors are never blocked on
// by the producer — a slow consumer simply misses coalescing opportunities,
// it never stalls the watcher.
type Subscription struct {
	Events <-chan Event
	Errors <-chan error

	events chan Event
	errors chan error
	path   string
	mgr    *Manager
}

// Close releases this subscription; if it was the last one for its path,
// the underlying OS watch is torn down too.
func (s *Subscription) Close() {
	s.mgr.unsubscribe(s.path, s)
}

const (
	// defaultDebounce is the configurable coalescing interval, default ~300ms.
	defaultDebounce = 300 * time.Millisecond
	// defaultMaxWatches is the default size of the active-watch table.
	defaultMaxWatches = 10

	eventBuffer = 32
)

// Options configures a Manager.
type Options struct {
	Debounce   time.Duration // 0 = defaultDebounce
	MaxWatches int           // 0 = defaultMaxWatches
}

// Manager owns one fsnotify.Watcher shared across every active watch, and
// the bounded, LRU-evicted table of which directories are currently
// watched.
type Manager struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	watches  *lru.Cache[string, *watch]
	debounce time.Duration
	closed   bool
}

type watch struct {
	path string
	subs []*Subscription

	bufMu   sync.Mutex
	pending pendingWindow
	timer   *time.Timer
}

// New constructs a Manager and starts its dispatch loop. Call Close when
// done to release the underlying OS watch descriptors.
func New(opts Options) (*Manager, error) {
	debounce := opts.Debounce
	if debounce == 0 {
		debounce = defaultDebounce
	}
	maxWatches := opts.MaxWatches
	if maxWatches == 0 {
		maxWatches = defaultMaxWatches
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: %w", err)
	}

	m := &Manager{fsw: fsw, debounce: debounce}

	cache, err := lru.NewWithEvict[string, *watch](maxWatches, m.onEvicted)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watcher: %w", err)
	}
	m.watches = cache

	go m.dispatch()
	return m, nil
}

// Watch subscribes to changes under path (non-recursively: only direct
// children). Watching a path already tracked adds another subscriber to
// the same underlying OS watch rather than opening a second one.
func (m *Manager) Watch(path string) (*Subscription, error) {
	path = filepath.Clean(path)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, fmt.Errorf("watcher: manager is closed")
	}

	w, ok := m.watches.Get(path)
	if !ok {
		if err := m.fsw.Add(path); err != nil {
			return nil, fmt.Errorf("watcher: %w", err)
		}
		w = &watch{path: path}
		m.watches.Add(path, w)
	}

	sub := &Subscription{
		events: make(chan Event, eventBuffer),
		errors: make(chan error, 4),
		path:   path,
		mgr:    m,
	}
	sub.Events = sub.events
	sub.Errors = sub.errors
	w.subs = append(w.subs, sub)
	return sub, nil
}

// Close tears down every active watch and stops the dispatch loop. Purge
// invokes onEvicted for every remaining entry, which releases the OS watch
// and closes each subscriber's channels — no separate teardown needed here.
func (m *Manager) Close() error {
	m.mu.Lock()
	m.closed = true
	m.watches.Purge()
	m.mu.Unlock()
	return m.fsw.Close()
}

func (m *Manager) unsubscribe(path string, sub *Subscription) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.watches.Get(path)
	if !ok {
		return
	}
	for i, s := range w.subs {
		if s == sub {
			w.subs = append(w.subs[:i], w.subs[i+1:]...)
			break
		}
	}
	if len(w.subs) == 0 {
		m.watches.Remove(path) // triggers onEvicted, which removes the OS watch
	}
}

// onEvicted runs for capacity-triggered LRU eviction, explicit Remove
// calls (the last subscriber closing), and Manager.Close's Purge. Only the
// first case has subscribers still attached to warn; the other two have
// already emptied w.subs or are tearing everything down anyway.
func (m *Manager) onEvicted(path string, w *watch) {
	m.fsw.Remove(path)
	if w.timer != nil {
		w.timer.Stop()
	}
	for _, sub := range w.subs {
		select {
		case sub.errors <- fmt.Errorf("watcher: watch on %s evicted (too many active watches)", path):
		default:
		}
		close(sub.events)
		close(sub.errors)
	}
}

func (m *Manager) dispatch() {
	for {
		select {
		case ev, ok := <-m.fsw.Events:
			if !ok {
				return
			}
			m.route(ev)
		case err, ok := <-m.fsw.Errors:
			if !ok {
				return
			}
			m.broadcastError(err)
		}
	}
}

func (m *Manager) route(ev fsnotify.Event) {
	dir := filepath.Dir(ev.Name)

	m.mu.Lock()
	w, ok := m.watches.Get(dir)
	m.mu.Unlock()
	if !ok {
		return
	}

	w.bufMu.Lock()
	w.pending.add(ev)
	if w.timer == nil {
		w.timer = time.AfterFunc(m.debounce, func() { m.flush(w) })
	}
	w.bufMu.Unlock()
}

func (m *Manager) flush(w *watch) {
	w.bufMu.Lock()
	events := w.pending.resolve()
	w.pending = pendingWindow{}
	w.timer = nil
	subs := append([]*Subscription(nil), w.subs...)
	w.bufMu.Unlock()

	for _, e := range events {
		for _, sub := range subs {
			select {
			case sub.events <- e:
			default:
				// Producers never block on a slow consumer; this subscriber
				// simply misses this coalescing window.
			}
		}
	}
}

func (m *Manager) broadcastError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range m.watches.Keys() {
		w, ok := m.watches.Get(key)
		if !ok {
			continue
		}
		for _, sub := range w.subs {
			select {
			case sub.errors <- err:
			default:
			}
		}
	}
}
