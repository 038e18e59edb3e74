package state

import (
	"context"
	"crypto/ed25519"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/letscook/cook-client/pkg/launchpad/network"
	"github.com/letscook/cook-client/pkg/metrics"
	"github.com/letscook/cook-client/pkg/solana"
	cooksync "github.com/letscook/cook-client/pkg/sync"
)

const (
	watcherMetricsStructName = "state.Watcher"

	watchUpdateMetricName       = "Launchpad/WatchUpdate"
	watchDecodeFailedMetricName = "Launchpad/WatchDecodeFailure"
)

var (
	ErrWatcherClosed = errors.New("watcher is closed")
)

// UpdateFunc is called after every change to a watched account with the
// snapshot that replaced the cached one.
type UpdateFunc[T any] func(key string, snapshot Snapshot[T])

type subscription[T any] struct {
	address ed25519.PublicKey
	handle  network.Handle

	mu       sync.Mutex
	closed   bool
	snapshot Snapshot[T]
	cached   bool
}

// Watcher keeps at most one account watch per logical key, along with the
// last decoded snapshot for that key.
type Watcher[T any] struct {
	log    *logrus.Entry
	reader network.Reader
	decode Decoder[T]

	keyLocks *cooksync.StripedLock

	mu     sync.RWMutex
	subs   map[string]*subscription[T]
	closed bool
}

func NewWatcher[T any](reader network.Reader, decode Decoder[T], configProvider ConfigProvider) *Watcher[T] {
	conf := configProvider()
	return &Watcher[T]{
		log:      logrus.StandardLogger().WithField("type", "launchpad/state/watcher"),
		reader:   reader,
		decode:   decode,
		keyLocks: cooksync.NewStripedLock(uint(conf.watchLockStripes.Get(context.Background()))),
		subs:     make(map[string]*subscription[T]),
	}
}

// Watch subscribes to address under key. It returns false without doing
// anything if key is already being watched.
func (w *Watcher[T]) Watch(ctx context.Context, key string, address ed25519.PublicKey, onUpdate UpdateFunc[T]) (bool, error) {
	tracer := metrics.TraceMethodCall(ctx, watcherMetricsStructName, "Watch")
	defer tracer.End()

	unlock := w.keyLocks.Lock(key)
	defer unlock()

	w.mu.RLock()
	closed := w.closed
	_, active := w.subs[key]
	w.mu.RUnlock()

	if closed {
		return false, ErrWatcherClosed
	} else if active {
		return false, nil
	}

	log := w.log.WithFields(logrus.Fields{
		"key":     key,
		"account": solana.PublicKeyString(address),
	})

	sub := &subscription[T]{address: address}
	handle, err := w.reader.WatchAccount(ctx, address, func(data []byte) {
		w.onChange(ctx, log, key, sub, data, onUpdate)
	})
	if err != nil {
		tracer.OnError(err)
		return false, err
	}
	sub.handle = handle

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.reader.Unwatch(handle)
		return false, ErrWatcherClosed
	}
	w.subs[key] = sub
	w.mu.Unlock()

	log.Debug("watch started")
	return true, nil
}

func (w *Watcher[T]) onChange(ctx context.Context, log *logrus.Entry, key string, sub *subscription[T], data []byte, onUpdate UpdateFunc[T]) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("panic handling account change")
		}
	}()

	var snapshot Snapshot[T]
	if len(data) > 0 {
		value, err := w.decode(data)
		if err != nil {
			metrics.RecordCount(ctx, watchDecodeFailedMetricName, 1)
			log.WithError(err).Warn("failed to decode account change, keeping cached state")
			return
		}
		snapshot = Snapshot[T]{Value: value, Present: true}
	}

	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return
	}
	sub.snapshot = snapshot
	sub.cached = true
	sub.mu.Unlock()

	metrics.RecordCount(ctx, watchUpdateMetricName, 1)

	if onUpdate != nil {
		onUpdate(key, snapshot)
	}
}

// Unwatch removes the watch for key and clears its cached snapshot. It is
// safe to call for keys that are not watched, and from within an UpdateFunc.
// A notification being delivered while Unwatch runs may still complete, but
// none are delivered after it returns.
func (w *Watcher[T]) Unwatch(key string) {
	unlock := w.keyLocks.Lock(key)
	defer unlock()

	w.mu.Lock()
	sub, ok := w.subs[key]
	delete(w.subs, key)
	w.mu.Unlock()

	if !ok {
		return
	}
	w.release(sub)
	w.log.WithField("key", key).Debug("watch stopped")
}

func (w *Watcher[T]) release(sub *subscription[T]) {
	sub.mu.Lock()
	sub.closed = true
	sub.snapshot = Snapshot[T]{}
	sub.cached = false
	sub.mu.Unlock()

	w.reader.Unwatch(sub.handle)
}

// Get returns the cached snapshot for key. The second result is false when
// key is not watched or nothing has been cached yet.
func (w *Watcher[T]) Get(key string) (Snapshot[T], bool) {
	w.mu.RLock()
	sub, ok := w.subs[key]
	w.mu.RUnlock()

	if !ok {
		return Snapshot[T]{}, false
	}

	sub.mu.Lock()
	defer sub.mu.Unlock()
	return sub.snapshot, sub.cached
}

// Store seeds the cache for a watched key, typically with the result of an
// initial fetch. A snapshot delivered by a notification is never replaced by
// an older fetch result, so Store only applies while nothing is cached.
func (w *Watcher[T]) Store(key string, snapshot Snapshot[T]) bool {
	w.mu.RLock()
	sub, ok := w.subs[key]
	w.mu.RUnlock()

	if !ok {
		return false
	}

	sub.mu.Lock()
	defer sub.mu.Unlock()

	if sub.closed || sub.cached {
		return false
	}
	sub.snapshot = snapshot
	sub.cached = true
	return true
}

// Active reports whether key is being watched.
func (w *Watcher[T]) Active(key string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	_, ok := w.subs[key]
	return ok
}

// Keys returns the watched keys in sorted order.
func (w *Watcher[T]) Keys() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	keys := make([]string, 0, len(w.subs))
	for key := range w.subs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Close releases every watch. Watch fails once the watcher is closed.
func (w *Watcher[T]) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	subs := w.subs
	w.subs = make(map[string]*subscription[T])
	w.mu.Unlock()

	for _, sub := range subs {
		w.release(sub)
	}
}
