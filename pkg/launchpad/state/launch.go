package state

import (
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/letscook/cook-client/pkg/launchpad/mint"
	"github.com/letscook/cook-client/pkg/launchpad/network"
	"github.com/letscook/cook-client/pkg/metrics"
	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/cook"
)

const (
	launchViewMetricsStructName = "state.LaunchView"
)

// LaunchState is the resolved view of a launch page for one user. Fields are
// nil until the corresponding account has been found.
type LaunchState struct {
	Launch        *cook.LaunchRecord
	Plugins       cook.LaunchPluginData
	Listing       *cook.ListingRecord
	TokenMint     *mint.Data
	WhitelistMint *mint.Data
	Join          *cook.JoinRecord
}

// LaunchView watches a launch by page name, and the user's join record when a
// user is given, and resolves the listing and mints the launch refers to.
type LaunchView struct {
	log     *logrus.Entry
	reader  network.Reader
	mints   *mint.Resolver
	page    string
	user    ed25519.PublicKey
	updates func(LaunchState)

	launchAddress ed25519.PublicKey
	joinAddress   ed25519.PublicKey

	launchFetcher  *Fetcher[*cook.LaunchRecord]
	joinFetcher    *Fetcher[*cook.JoinRecord]
	listingFetcher *Fetcher[*cook.ListingRecord]
	launches       *Watcher[*cook.LaunchRecord]
	joins          *Watcher[*cook.JoinRecord]

	mu    sync.RWMutex
	state LaunchState

	// launchVersion counts launch notifications, so a resolve that started
	// before one does not write back its older launch.
	launchVersion uint64
}

// NewLaunchView returns a view of page. user may be nil, in which case no join
// record is tracked. updates, when set, receives the full state after every
// change.
func NewLaunchView(reader network.Reader, mints *mint.Resolver, page string, user ed25519.PublicKey, updates func(LaunchState), configProvider ConfigProvider) (*LaunchView, error) {
	if page == "" {
		return nil, errors.New("page name is required")
	}

	launchAddress, _, err := cook.GetLaunchAddress(&cook.GetLaunchAddressArgs{PageName: page})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive launch address")
	}

	var joinAddress ed25519.PublicKey
	if user != nil {
		joinAddress, _, err = cook.GetJoinAddress(&cook.GetJoinAddressArgs{User: user, PageName: page})
		if err != nil {
			return nil, errors.Wrap(err, "failed to derive join address")
		}
	}

	log := logrus.StandardLogger().WithFields(logrus.Fields{
		"type": "launchpad/state/launch",
		"page": page,
	})
	if user != nil {
		log = log.WithField("user", solana.PublicKeyString(user))
	}

	return &LaunchView{
		log:            log,
		reader:         reader,
		mints:          mints,
		page:           page,
		user:           user,
		updates:        updates,
		launchAddress:  launchAddress,
		joinAddress:    joinAddress,
		launchFetcher:  NewFetcher(reader, RecordDecoder[cook.LaunchRecord]()),
		joinFetcher:    NewFetcher(reader, RecordDecoder[cook.JoinRecord]()),
		listingFetcher: NewFetcher(reader, RecordDecoder[cook.ListingRecord]()),
		launches:       NewWatcher(reader, RecordDecoder[cook.LaunchRecord](), configProvider),
		joins:          NewWatcher(reader, RecordDecoder[cook.JoinRecord](), configProvider),
	}, nil
}

func (v *LaunchView) LaunchAddress() ed25519.PublicKey {
	return v.launchAddress
}

func (v *LaunchView) JoinAddress() ed25519.PublicKey {
	return v.joinAddress
}

func (v *LaunchView) launchKey() string {
	return "launch:" + v.page
}

func (v *LaunchView) joinKey() string {
	return "join:" + solana.PublicKeyString(v.user) + ":" + v.page
}

// Start establishes the watches and performs the initial load. Calling it
// again is a no-op until Close.
func (v *LaunchView) Start(ctx context.Context) error {
	tracer := metrics.TraceMethodCall(ctx, launchViewMetricsStructName, "Start")
	defer tracer.End()

	if _, err := v.launches.Watch(ctx, v.launchKey(), v.launchAddress, v.onLaunch); err != nil {
		tracer.OnError(err)
		return err
	}
	if v.user != nil {
		if _, err := v.joins.Watch(ctx, v.joinKey(), v.joinAddress, v.onJoin); err != nil {
			tracer.OnError(err)
			v.launches.Unwatch(v.launchKey())
			return err
		}
	}

	if err := v.initialFetch(ctx); err != nil {
		tracer.OnError(err)
		return err
	}
	return nil
}

func (v *LaunchView) initialFetch(ctx context.Context) error {
	launch, ran, err := v.launchFetcher.InitialFetch(ctx, v.launchKey(), v.launchAddress)
	if err != nil || !ran {
		return err
	}

	if !launch.Present {
		v.log.Debug("launch not found")
		return nil
	}
	v.launches.Store(v.launchKey(), *launch)

	version := v.version()
	current, _ := v.launches.Get(v.launchKey())
	if !current.Present {
		return nil
	}

	return v.resolve(ctx, version, current.Value)
}

// Refresh reloads the launch and everything resolved from it, ignoring the
// initial load guard.
func (v *LaunchView) Refresh(ctx context.Context) error {
	version := v.version()
	launch, err := v.launchFetcher.ForceFetch(ctx, v.launchAddress)
	if err != nil {
		return err
	}
	if !launch.Present {
		v.set(func(s *LaunchState) { *s = LaunchState{Join: s.Join} })
		return nil
	}
	return v.resolve(ctx, version, launch.Value)
}

func (v *LaunchView) version() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.launchVersion
}

// resolve fills in everything derived from launch. version is the launch
// notification count observed before launch was read.
func (v *LaunchView) resolve(ctx context.Context, version uint64, launch *cook.LaunchRecord) error {
	plugins, duplicates := cook.SummarizeLaunchPlugins(launch.Plugins)
	if len(duplicates) > 0 {
		v.log.WithField("plugins", duplicates).Warn("launch has duplicate plugins, using the last occurrence")
	}

	next := LaunchState{
		Launch:  launch,
		Plugins: plugins,
	}

	listing, err := v.listingFetcher.Fetch(ctx, launch.Listing)
	if err != nil {
		return err
	}
	if listing.Present {
		next.Listing = listing.Value
	}

	if v.user != nil {
		join, _, err := v.joinFetcher.InitialFetch(ctx, v.joinKey(), v.joinAddress)
		if err != nil {
			return err
		}
		if join != nil {
			v.joins.Store(v.joinKey(), *join)
		}
		if current, _ := v.joins.Get(v.joinKey()); current.Present {
			next.Join = current.Value
		}
	}

	if next.Listing != nil {
		next.TokenMint, err = v.resolveMint(ctx, next.Listing.Mint)
		if err != nil {
			return err
		}
	}

	if plugins.HasWhitelist() {
		next.WhitelistMint, err = v.resolveMint(ctx, plugins.WhitelistKey)
		if err != nil {
			return err
		}
	}

	v.set(func(s *LaunchState) {
		if next.Join == nil {
			next.Join = s.Join
		}
		if v.launchVersion != version {
			next.Launch = s.Launch
			next.Plugins = s.Plugins
		}
		*s = next
	})
	return nil
}

// resolveMint returns nil when the mint does not exist.
func (v *LaunchView) resolveMint(ctx context.Context, address ed25519.PublicKey) (*mint.Data, error) {
	data, err := v.mints.Get(ctx, address)
	if errors.Is(err, mint.ErrMintNotFound) {
		v.log.WithError(err).Info("mint not found")
		return nil, nil
	}
	return data, err
}

func (v *LaunchView) onLaunch(_ string, snapshot Snapshot[*cook.LaunchRecord]) {
	v.set(func(s *LaunchState) {
		v.launchVersion++
		if !snapshot.Present {
			s.Launch = nil
			s.Plugins = cook.LaunchPluginData{}
			return
		}

		plugins, duplicates := cook.SummarizeLaunchPlugins(snapshot.Value.Plugins)
		if len(duplicates) > 0 {
			v.log.WithField("plugins", duplicates).Warn("launch has duplicate plugins, using the last occurrence")
		}
		s.Launch = snapshot.Value
		s.Plugins = plugins
	})
}

func (v *LaunchView) onJoin(_ string, snapshot Snapshot[*cook.JoinRecord]) {
	v.set(func(s *LaunchState) {
		if snapshot.Present {
			s.Join = snapshot.Value
		} else {
			s.Join = nil
		}
	})
}

func (v *LaunchView) set(update func(s *LaunchState)) {
	v.mu.Lock()
	update(&v.state)
	state := v.state
	v.mu.Unlock()

	if v.updates != nil {
		v.updates(state)
	}
}

// State returns the current view state.
func (v *LaunchView) State() LaunchState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Close releases the watches and clears the view. The view may be started
// again afterwards.
func (v *LaunchView) Close() {
	v.launches.Unwatch(v.launchKey())
	if v.user != nil {
		v.joins.Unwatch(v.joinKey())
	}
	v.launchFetcher.Reset(v.launchKey())
	v.joinFetcher.Reset(v.joinKey())

	v.mu.Lock()
	v.state = LaunchState{}
	v.mu.Unlock()
}
