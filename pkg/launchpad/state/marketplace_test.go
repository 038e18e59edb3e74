package state

import (
	"context"
	"crypto/ed25519"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letscook/cook-client/pkg/launchpad/network/memory"
	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/cook"
	"github.com/letscook/cook-client/pkg/testutil"
)

type marketplaceEnv struct {
	ctx        context.Context
	network    *memory.Network
	clock      *clock.Mock
	collection ed25519.PublicKey
	view       *MarketplaceView
	updates    int32
}

func setupMarketplace(t *testing.T) *marketplaceEnv {
	env := &marketplaceEnv{
		ctx:        context.Background(),
		network:    memory.New(),
		clock:      clock.NewMock(),
		collection: testutil.GenerateSolanaKey(t),
	}

	view, err := NewMarketplaceView(env.network, env.collection, env.clock, func(MarketplaceState) {
		atomic.AddInt32(&env.updates, 1)
	}, withManualTestOverrides(&testOverrides{
		listingRefreshInterval: time.Second,
	}))
	require.NoError(t, err)
	t.Cleanup(view.Close)

	env.view = view
	return env
}

func (e *marketplaceEnv) setSummary(t *testing.T, numListings uint32) {
	e.network.SetAccount(e.view.SummaryAddress(), cook.LISTINGS_PROGRAM_ID, marshalRecord(t, &cook.MarketplaceSummaryRecord{NumListings: numListings}))
}

func (e *marketplaceEnv) addListing(t *testing.T, collection, seller ed25519.PublicKey, price uint64) *cook.ListingEntryRecord {
	entry := &cook.ListingEntryRecord{
		Collection: collection,
		Asset:      testutil.GenerateSolanaKey(t),
		Seller:     seller,
		Price:      price,
	}

	address, _, err := cook.GetListingEntryAddress(&cook.GetListingEntryAddressArgs{Asset: entry.Asset})
	require.NoError(t, err)
	e.network.SetAccount(address, cook.LISTINGS_PROGRAM_ID, marshalRecord(t, entry))
	return entry
}

func assetsOf(entries []*cook.ListingEntryRecord) []string {
	res := make([]string, len(entries))
	for i, entry := range entries {
		res[i] = solana.PublicKeyString(entry.Asset)
	}
	return res
}

func TestMarketplaceView_InitialLoad(t *testing.T) {
	env := setupMarketplace(t)
	sellers := testutil.GenerateSolanaKeys(t, 2)

	first := env.addListing(t, env.collection, sellers[0], 10)
	second := env.addListing(t, env.collection, sellers[1], 20)
	third := env.addListing(t, env.collection, sellers[0], 30)
	env.addListing(t, testutil.GenerateSolanaKey(t), sellers[0], 40)

	// Listings program accounts of another size are ignored by the scan.
	env.network.SetAccount(testutil.GenerateSolanaKey(t), cook.LISTINGS_PROGRAM_ID, append([]byte(env.collection), make([]byte, 10)...))

	env.setSummary(t, 3)

	require.NoError(t, env.view.Start(env.ctx))
	env.view.Scheduler().WaitIdle()

	state := env.view.State()
	require.NotNil(t, state.Summary)
	assert.EqualValues(t, 3, state.Summary.NumListings)

	expected := assetsOf([]*cook.ListingEntryRecord{first, second, third})
	assert.ElementsMatch(t, expected, assetsOf(state.Listings))
	assert.IsIncreasing(t, assetsOf(state.Listings))

	mine := env.view.UserListings(sellers[0])
	assert.ElementsMatch(t, assetsOf([]*cook.ListingEntryRecord{first, third}), assetsOf(mine))
	assert.Empty(t, env.view.UserListings(testutil.GenerateSolanaKey(t)))
	assert.Len(t, env.view.Listings(), 3)

	assert.Equal(t, 1, env.network.Scans())
	assert.Equal(t, 1, env.network.ActiveWatches(env.view.SummaryAddress()))

	// Starting again neither refetches nor rewatches.
	reads := env.network.Reads(env.view.SummaryAddress())
	require.NoError(t, env.view.Start(env.ctx))
	assert.Equal(t, reads, env.network.Reads(env.view.SummaryAddress()))
	assert.Equal(t, 1, env.network.ActiveWatches(env.view.SummaryAddress()))
}

func TestMarketplaceView_NoSummary(t *testing.T) {
	env := setupMarketplace(t)
	env.addListing(t, env.collection, testutil.GenerateSolanaKey(t), 10)

	require.NoError(t, env.view.Start(env.ctx))
	env.view.Scheduler().WaitIdle()

	assert.Nil(t, env.view.State().Summary)
	assert.Empty(t, env.view.Listings())
	assert.Equal(t, 0, env.network.Scans())

	// The summary appearing later triggers a scan.
	env.setSummary(t, 1)
	env.view.Scheduler().WaitIdle()
	assert.Equal(t, 1, env.network.Scans())
	assert.Len(t, env.view.Listings(), 1)
}

func TestMarketplaceView_RateLimitedRescan(t *testing.T) {
	env := setupMarketplace(t)
	seller := testutil.GenerateSolanaKey(t)
	env.addListing(t, env.collection, seller, 10)
	env.setSummary(t, 1)

	require.NoError(t, env.view.Start(env.ctx))
	env.view.Scheduler().WaitIdle()
	require.Equal(t, 1, env.network.Scans())

	added := env.addListing(t, env.collection, seller, 20)
	for i := 0; i < 5; i++ {
		env.setSummary(t, uint32(2+i))
	}
	assert.Equal(t, StateScheduled, env.view.Scheduler().State())
	assert.Equal(t, 1, env.network.Scans())
	assert.EqualValues(t, 6, env.view.State().Summary.NumListings)

	env.clock.Add(time.Second)
	env.view.Scheduler().WaitIdle()

	assert.Equal(t, 2, env.network.Scans())
	assert.Contains(t, assetsOf(env.view.Listings()), solana.PublicKeyString(added.Asset))

	// Well after the interval, a change scans right away.
	env.clock.Add(5 * time.Second)
	env.setSummary(t, 7)
	env.view.Scheduler().WaitIdle()
	assert.Equal(t, 3, env.network.Scans())
}

func TestMarketplaceView_SummaryClosed(t *testing.T) {
	env := setupMarketplace(t)
	env.setSummary(t, 0)

	require.NoError(t, env.view.Start(env.ctx))
	env.view.Scheduler().WaitIdle()
	require.NotNil(t, env.view.State().Summary)

	env.network.DeleteAccount(env.view.SummaryAddress())
	assert.Nil(t, env.view.State().Summary)
	assert.Equal(t, StateIdle, env.view.Scheduler().State())
	assert.Equal(t, 1, env.network.Scans())
}

func TestMarketplaceView_Close(t *testing.T) {
	env := setupMarketplace(t)
	env.setSummary(t, 1)

	require.NoError(t, env.view.Start(env.ctx))
	env.view.Scheduler().WaitIdle()

	env.setSummary(t, 2)
	require.Equal(t, StateScheduled, env.view.Scheduler().State())

	env.view.Close()
	assert.Equal(t, 0, env.network.ActiveWatches(env.view.SummaryAddress()))
	assert.Equal(t, StateIdle, env.view.Scheduler().State())

	env.clock.Add(5 * time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 1, env.network.Scans())

	updates := atomic.LoadInt32(&env.updates)
	env.setSummary(t, 3)
	assert.Equal(t, updates, atomic.LoadInt32(&env.updates))
}

func TestMarketplaceView_InvalidCollection(t *testing.T) {
	_, err := NewMarketplaceView(memory.New(), nil, clock.NewMock(), nil, withManualTestOverrides(&testOverrides{}))
	assert.Error(t, err)
}
