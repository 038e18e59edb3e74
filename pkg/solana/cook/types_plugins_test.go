package cook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letscook/cook-client/pkg/solana/binary"
)

func TestUnmarshalCollectionPlugin(t *testing.T) {
	p, n, err := UnmarshalCollectionPlugin([]byte{collectionPluginTagMintOnly, 0xaa, 0xbb})
	require.NoError(t, err)
	assert.Equal(t, MintOnlyPlugin{}, p)
	assert.Equal(t, 1, n)

	p, n, err = UnmarshalCollectionPlugin([]byte{collectionPluginTagMintProbability, 0x41, 0x00})
	require.NoError(t, err)
	assert.Equal(t, MintProbabilityPlugin{MintProb: 65}, p)
	assert.Equal(t, 3, n)

	_, _, err = UnmarshalCollectionPlugin([]byte{7})
	assert.ErrorIs(t, err, binary.ErrUnknownVariant)
	assert.Contains(t, err.Error(), "collection plugin tag 7 at offset 0")

	_, _, err = UnmarshalCollectionPlugin([]byte{collectionPluginTagAsymmetricSwapPrice, 1, 2})
	assert.ErrorIs(t, err, binary.ErrTruncatedInput)

	_, _, err = UnmarshalCollectionPlugin(nil)
	assert.ErrorIs(t, err, binary.ErrTruncatedInput)
}

func TestUnmarshalCollectionPlugin_Marketplace(t *testing.T) {
	expected := MarketplacePlugin{Listings: []ListingEntry{
		{Asset: newKey(t), Seller: newKey(t), Price: 1},
		{Asset: newKey(t), Seller: newKey(t), Price: 2},
	}}

	e := binary.NewEncoder(0)
	encodeCollectionPlugin(e, expected)
	data, err := e.Result()
	require.NoError(t, err)
	assert.Len(t, data, 1+4+2*ListingEntrySize)

	p, n, err := UnmarshalCollectionPlugin(data)
	require.NoError(t, err)
	assert.Equal(t, expected, p)
	assert.Equal(t, len(data), n)

	// A count larger than the remaining bytes fails without allocating.
	data[1] = 0xff
	data[4] = 0x7f
	_, _, err = UnmarshalCollectionPlugin(data)
	assert.ErrorIs(t, err, binary.ErrTruncatedInput)
}

func TestPluginUnions_TagTables(t *testing.T) {
	whitelist := WhitelistPlugin{Key: newKey(t), Amount: 5, PhaseEnd: 6}

	// Whitelist is tag 2 among collection plugins and tag 0 among launch
	// plugins.
	e := binary.NewEncoder(0)
	encodeCollectionPlugins(e, []CollectionPlugin{whitelist})
	encodeLaunchPlugins(e, []LaunchPlugin{whitelist})
	data, err := e.Result()
	require.NoError(t, err)

	d := binary.NewDecoder(data)
	collection := decodeCollectionPlugins(d)
	launch := decodeLaunchPlugins(d)
	require.NoError(t, d.Err())
	assert.Equal(t, 0, d.Remaining())

	assert.Equal(t, []CollectionPlugin{whitelist}, collection)
	assert.Equal(t, []LaunchPlugin{whitelist}, launch)
	assert.EqualValues(t, collectionPluginTagWhitelist, data[4])
	assert.EqualValues(t, launchPluginTagWhitelist, data[4+1+WhitelistPluginSize+4])

	d = binary.NewDecoder([]byte{1, 0, 0, 0, 1})
	decodeLaunchPlugins(d)
	assert.ErrorIs(t, d.Err(), binary.ErrUnknownVariant)
	assert.Contains(t, d.Err().Error(), "launch plugin")

	d = binary.NewDecoder([]byte{1, 0, 0, 0, 2})
	decodeAMMPlugins(d)
	assert.ErrorIs(t, d.Err(), binary.ErrUnknownVariant)
	assert.Contains(t, d.Err().Error(), "amm plugin")
}

func TestMetas_UnknownTag(t *testing.T) {
	d := binary.NewDecoder([]byte{2})
	assert.Nil(t, decodeCollectionMeta(d))
	assert.ErrorIs(t, d.Err(), binary.ErrUnknownVariant)

	d = binary.NewDecoder([]byte{3})
	assert.Nil(t, decodeLaunchMeta(d))
	assert.ErrorIs(t, d.Err(), binary.ErrUnknownVariant)

	d = binary.NewDecoder([]byte{1})
	assert.Equal(t, FCFS{}, decodeLaunchMeta(d))
	assert.NoError(t, d.Err())
}

func TestRecords_MarshalUntaggedUnion(t *testing.T) {
	for _, tc := range []struct {
		name   string
		record Record
		union  string
	}{
		{"nil launch meta", &LaunchRecord{PageName: "cook"}, "launch meta"},
		{"nil collection meta", &CollectionRecord{PageName: "cook"}, "collection meta"},
		{"nil collection plugin", &CollectionRecord{CollectionMeta: RandomUnlimited{}, Plugins: []CollectionPlugin{nil}}, "collection plugin"},
		{"nil launch plugin", &LaunchRecord{LaunchMeta: Raffle{}, Plugins: []LaunchPlugin{nil}}, "launch plugin"},
		{"nil amm plugin", &AMMRecord{Plugins: []AMMPlugin{nil}}, "amm plugin"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			data, err := tc.record.Marshal()
			assert.Nil(t, data)
			require.Error(t, err)
			assert.ErrorIs(t, err, binary.ErrUnknownVariant)
			assert.Contains(t, err.Error(), tc.union)
		})
	}
}

func TestWhitelistPlugin_PhaseEndTime(t *testing.T) {
	p := WhitelistPlugin{PhaseEnd: 1_700_000_000_123}
	assert.Equal(t, time.UnixMilli(1_700_000_000_123), p.PhaseEndTime())
}
