package state

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/letscook/cook-client/pkg/launchpad/network"
	"github.com/letscook/cook-client/pkg/metrics"
	"github.com/letscook/cook-client/pkg/solana"
)

const (
	fetcherMetricsStructName = "state.Fetcher"
)

// Fetcher fetches and decodes accounts. The first fetch for a logical key is
// guarded so that it runs at most once until the key is reset.
type Fetcher[T any] struct {
	log    *logrus.Entry
	reader network.Reader
	decode Decoder[T]

	mu      sync.Mutex
	started map[string]struct{}
}

func NewFetcher[T any](reader network.Reader, decode Decoder[T]) *Fetcher[T] {
	return &Fetcher[T]{
		log:     logrus.StandardLogger().WithField("type", "launchpad/state/fetcher"),
		reader:  reader,
		decode:  decode,
		started: make(map[string]struct{}),
	}
}

// Fetch reads and decodes the account at address. A missing or empty account
// is an absent snapshot, not an error.
func (f *Fetcher[T]) Fetch(ctx context.Context, address ed25519.PublicKey) (*Snapshot[T], error) {
	tracer := metrics.TraceMethodCall(ctx, fetcherMetricsStructName, "Fetch")
	defer tracer.End()

	data, ok, err := f.reader.GetAccountBytes(ctx, address)
	if err != nil {
		tracer.OnError(err)
		return nil, err
	} else if !ok || len(data) == 0 {
		return &Snapshot[T]{}, nil
	}

	value, err := f.decode(data)
	if err != nil {
		tracer.OnError(err)
		return nil, errors.Wrapf(err, "failed to decode account %s", solana.PublicKeyString(address))
	}
	return &Snapshot[T]{Value: value, Present: true}, nil
}

// InitialFetch fetches address unless an initial fetch for key has already
// been started, in which case it returns false without touching the network.
//
// The guard is taken before the fetch and is kept when the fetch fails.
// Callers recover with ForceFetch or by resetting the key.
func (f *Fetcher[T]) InitialFetch(ctx context.Context, key string, address ed25519.PublicKey) (*Snapshot[T], bool, error) {
	f.mu.Lock()
	if _, ok := f.started[key]; ok {
		f.mu.Unlock()
		return nil, false, nil
	}
	f.started[key] = struct{}{}
	f.mu.Unlock()

	snapshot, err := f.Fetch(ctx, address)
	if err != nil {
		f.log.WithError(err).WithFields(logrus.Fields{
			"method":  "InitialFetch",
			"key":     key,
			"account": solana.PublicKeyString(address),
		}).Debug("initial fetch failed")
		return nil, true, err
	}
	return snapshot, true, nil
}

// ForceFetch fetches address regardless of the initial fetch guard.
func (f *Fetcher[T]) ForceFetch(ctx context.Context, address ed25519.PublicKey) (*Snapshot[T], error) {
	return f.Fetch(ctx, address)
}

// Reset clears the initial fetch guard for key.
func (f *Fetcher[T]) Reset(key string) {
	f.mu.Lock()
	delete(f.started, key)
	f.mu.Unlock()
}

// Started reports whether an initial fetch for key has been started.
func (f *Fetcher[T]) Started(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.started[key]
	return ok
}
