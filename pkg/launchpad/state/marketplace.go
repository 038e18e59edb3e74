package state

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/letscook/cook-client/pkg/launchpad/network"
	"github.com/letscook/cook-client/pkg/metrics"
	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/cook"
)

const (
	marketplaceViewMetricsStructName = "state.MarketplaceView"

	listingsScanMetricName = "Launchpad/ListingsScan"
)

// MarketplaceState is the marketplace of one collection. Listings are ordered
// by asset address.
type MarketplaceState struct {
	Summary  *cook.MarketplaceSummaryRecord
	Listings []*cook.ListingEntryRecord
}

// MarketplaceView watches the marketplace summary of a collection and rescans
// its listings, at most once per refresh interval, whenever the summary
// changes.
type MarketplaceView struct {
	log        *logrus.Entry
	reader     network.Reader
	collection ed25519.PublicKey
	updates    func(MarketplaceState)

	summaryAddress ed25519.PublicKey

	summaryFetcher *Fetcher[*cook.MarketplaceSummaryRecord]
	summaries      *Watcher[*cook.MarketplaceSummaryRecord]
	scheduler      *RefreshScheduler

	mu       sync.RWMutex
	summary  *cook.MarketplaceSummaryRecord
	listings *treemap.Map
}

// NewMarketplaceView returns a view of the marketplace for collectionMint.
// updates, when set, receives the full state after every change.
func NewMarketplaceView(reader network.Reader, collectionMint ed25519.PublicKey, clk clock.Clock, updates func(MarketplaceState), configProvider ConfigProvider) (*MarketplaceView, error) {
	if len(collectionMint) != ed25519.PublicKeySize {
		return nil, errors.New("collection mint is required")
	}

	summaryAddress, _, err := cook.GetMarketplaceSummaryAddress(&cook.GetMarketplaceSummaryAddressArgs{CollectionMint: collectionMint})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive marketplace summary address")
	}

	conf := configProvider()

	v := &MarketplaceView{
		log: logrus.StandardLogger().WithFields(logrus.Fields{
			"type":       "launchpad/state/marketplace",
			"collection": solana.PublicKeyString(collectionMint),
		}),
		reader:         reader,
		collection:     collectionMint,
		updates:        updates,
		summaryAddress: summaryAddress,
		summaryFetcher: NewFetcher(reader, RecordDecoder[cook.MarketplaceSummaryRecord]()),
		summaries:      NewWatcher(reader, RecordDecoder[cook.MarketplaceSummaryRecord](), configProvider),
		listings:       treemap.NewWithStringComparator(),
	}
	v.scheduler = NewRefreshScheduler(clk, conf.listingRefreshInterval.Get(context.Background()), v.scanListings)
	return v, nil
}

func (v *MarketplaceView) SummaryAddress() ed25519.PublicKey {
	return v.summaryAddress
}

func (v *MarketplaceView) key() string {
	return "summary:" + solana.PublicKeyString(v.collection)
}

// Start watches the summary and performs the initial load. Listings are
// scanned in the background once the summary is known to exist.
func (v *MarketplaceView) Start(ctx context.Context) error {
	tracer := metrics.TraceMethodCall(ctx, marketplaceViewMetricsStructName, "Start")
	defer tracer.End()

	if _, err := v.summaries.Watch(ctx, v.key(), v.summaryAddress, v.onSummary); err != nil {
		tracer.OnError(err)
		return err
	}

	summary, ran, err := v.summaryFetcher.InitialFetch(ctx, v.key(), v.summaryAddress)
	if err != nil {
		tracer.OnError(err)
		return err
	} else if !ran {
		return nil
	}

	if !summary.Present {
		v.log.Debug("marketplace summary not found")
		return nil
	}

	if v.summaries.Store(v.key(), *summary) {
		v.setSummary(summary.Value)
	}
	v.scheduler.Request()
	return nil
}

func (v *MarketplaceView) onSummary(_ string, snapshot Snapshot[*cook.MarketplaceSummaryRecord]) {
	if !snapshot.Present {
		v.setSummary(nil)
		return
	}

	v.setSummary(snapshot.Value)
	v.scheduler.Request()
}

func (v *MarketplaceView) setSummary(summary *cook.MarketplaceSummaryRecord) {
	v.mu.Lock()
	v.summary = summary
	v.mu.Unlock()

	v.notify()
}

// RequestRefresh asks for a listings scan, subject to the refresh interval.
func (v *MarketplaceView) RequestRefresh() {
	v.scheduler.Request()
}

func (v *MarketplaceView) scanListings(ctx context.Context) error {
	tracer := metrics.TraceMethodCall(ctx, marketplaceViewMetricsStructName, "scanListings")
	defer tracer.End()

	accounts, err := v.reader.GetAccountsMatching(
		ctx,
		cook.LISTINGS_PROGRAM_ID,
		solana.DataSizeFilter(cook.ListingEntryRecordSize),
		solana.MemcmpAt(0, v.collection),
	)
	if err != nil {
		tracer.OnError(err)
		return err
	}
	metrics.RecordCount(ctx, listingsScanMetricName, 1)

	listings := treemap.NewWithStringComparator()
	for _, account := range accounts {
		var entry cook.ListingEntryRecord
		if err := entry.Unmarshal(account.Data); err != nil {
			v.log.WithError(err).WithField("account", solana.PublicKeyString(account.Address)).Warn("skipping invalid listing")
			continue
		}
		listings.Put(solana.PublicKeyString(entry.Asset), &entry)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	v.mu.Lock()
	v.listings = listings
	v.mu.Unlock()

	v.notify()
	return nil
}

func (v *MarketplaceView) notify() {
	if v.updates != nil {
		v.updates(v.State())
	}
}

// State returns the current summary and listings.
func (v *MarketplaceView) State() MarketplaceState {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return MarketplaceState{
		Summary:  v.summary,
		Listings: v.listingsLocked(nil),
	}
}

// Listings returns every listing of the collection.
func (v *MarketplaceView) Listings() []*cook.ListingEntryRecord {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.listingsLocked(nil)
}

// UserListings returns the listings sold by user.
func (v *MarketplaceView) UserListings(user ed25519.PublicKey) []*cook.ListingEntryRecord {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.listingsLocked(func(entry *cook.ListingEntryRecord) bool {
		return bytes.Equal(entry.Seller, user)
	})
}

func (v *MarketplaceView) listingsLocked(filter func(*cook.ListingEntryRecord) bool) []*cook.ListingEntryRecord {
	res := make([]*cook.ListingEntryRecord, 0, v.listings.Size())
	it := v.listings.Iterator()
	for it.Next() {
		entry := it.Value().(*cook.ListingEntryRecord)
		if filter == nil || filter(entry) {
			res = append(res, entry)
		}
	}
	return res
}

// Scheduler exposes the listings refresh scheduler.
func (v *MarketplaceView) Scheduler() *RefreshScheduler {
	return v.scheduler
}

// Close releases the summary watch and cancels any pending scan. A closed view
// cannot be restarted.
func (v *MarketplaceView) Close() {
	v.scheduler.Cancel()
	v.summaries.Close()
	v.summaryFetcher.Reset(v.key())
}
