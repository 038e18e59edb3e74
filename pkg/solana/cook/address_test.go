package cook

import (
	"bytes"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAMMAddress_Symmetric(t *testing.T) {
	a, b := newKey(t), newKey(t)

	ab, bumpAB, err := GetAMMAddress(&GetAMMAddressArgs{BaseMint: a, QuoteMint: b})
	require.NoError(t, err)
	ba, bumpBA, err := GetAMMAddress(&GetAMMAddressArgs{BaseMint: b, QuoteMint: a})
	require.NoError(t, err)

	assert.Equal(t, ab, ba)
	assert.Equal(t, bumpAB, bumpBA)

	first, second := a, b
	if base58.Encode(b) < base58.Encode(a) {
		first, second = b, a
	}
	expected, _, err := common.FindProgramAddress(
		[][]byte{first, second, []byte("CookAMM")},
		common.PublicKeyFromBytes(PROGRAM_ID),
	)
	require.NoError(t, err)
	assert.Equal(t, expected.Bytes(), []byte(ab))
}

func TestAddresses_MatchSDK(t *testing.T) {
	user, mint, amm, asset := newKey(t), newKey(t), newKey(t), newKey(t)
	cook := common.PublicKeyFromBytes(PROGRAM_ID)
	listings := common.PublicKeyFromBytes(LISTINGS_PROGRAM_ID)

	derive := func(f func() ([]byte, uint8, error)) []byte {
		key, _, err := f()
		require.NoError(t, err)
		return key
	}

	for _, tc := range []struct {
		name    string
		actual  []byte
		seeds   [][]byte
		program common.PublicKey
	}{
		{
			name: "collection",
			actual: derive(func() ([]byte, uint8, error) {
				return GetCollectionAddress(&GetCollectionAddressArgs{PageName: "chefs"})
			}),
			seeds:   [][]byte{[]byte("chefs"), []byte("Collection")},
			program: cook,
		},
		{
			name: "launch",
			actual: derive(func() ([]byte, uint8, error) {
				return GetLaunchAddress(&GetLaunchAddressArgs{PageName: "cook"})
			}),
			seeds:   [][]byte{[]byte("cook"), []byte("Launchs")},
			program: cook,
		},
		{
			name: "join",
			actual: derive(func() ([]byte, uint8, error) {
				return GetJoinAddress(&GetJoinAddressArgs{User: user, PageName: "cook"})
			}),
			seeds:   [][]byte{user, []byte("cook"), []byte("Joiner")},
			program: cook,
		},
		{
			name: "assignment",
			actual: derive(func() ([]byte, uint8, error) {
				return GetAssignmentAddress(&GetAssignmentAddressArgs{User: user, CollectionMint: mint})
			}),
			seeds:   [][]byte{user, mint, []byte("assignment")},
			program: cook,
		},
		{
			name: "user data",
			actual: derive(func() ([]byte, uint8, error) {
				return GetUserDataAddress(&GetUserDataAddressArgs{User: user})
			}),
			seeds:   [][]byte{user, []byte("User")},
			program: cook,
		},
		{
			name: "program sol",
			actual: derive(func() ([]byte, uint8, error) {
				return GetProgramSolAddress()
			}),
			seeds:   [][]byte{{0x83, 0xe0, 0x92, 0x03}},
			program: cook,
		},
		{
			name: "temp wsol",
			actual: derive(func() ([]byte, uint8, error) {
				return GetTempWSOLAddress(&GetTempWSOLAddressArgs{User: user})
			}),
			seeds:   [][]byte{user, []byte("Temp")},
			program: cook,
		},
		{
			name: "listing entry",
			actual: derive(func() ([]byte, uint8, error) {
				return GetListingEntryAddress(&GetListingEntryAddressArgs{Asset: asset})
			}),
			seeds:   [][]byte{asset, []byte("Listing")},
			program: listings,
		},
		{
			name: "marketplace summary",
			actual: derive(func() ([]byte, uint8, error) {
				return GetMarketplaceSummaryAddress(&GetMarketplaceSummaryAddressArgs{CollectionMint: mint})
			}),
			seeds:   [][]byte{mint, []byte("Summary")},
			program: listings,
		},
		{
			name: "lp mint",
			actual: derive(func() ([]byte, uint8, error) {
				return GetLPMintAddress(&GetLPMintAddressArgs{AMM: amm})
			}),
			seeds:   [][]byte{amm, []byte("LP")},
			program: cook,
		},
		{
			name: "launch date",
			actual: derive(func() ([]byte, uint8, error) {
				return GetLaunchDateAddress(&GetLaunchDateAddressArgs{AMM: amm, Day: 3})
			}),
			seeds:   [][]byte{amm, {3, 0, 0, 0}, []byte("LaunchDate")},
			program: cook,
		},
		{
			name: "user date",
			actual: derive(func() ([]byte, uint8, error) {
				return GetUserDateAddress(&GetUserDateAddressArgs{AMM: amm, User: user, Day: 3})
			}),
			seeds:   [][]byte{amm, user, {3, 0, 0, 0}},
			program: cook,
		},
		{
			name: "time series",
			actual: derive(func() ([]byte, uint8, error) {
				return GetTimeSeriesAddress(&GetTimeSeriesAddressArgs{AMM: amm, Index: 1})
			}),
			seeds:   [][]byte{amm, {1, 0, 0, 0}, []byte("TimeSeries")},
			program: cook,
		},
	} {
		expected, _, err := common.FindProgramAddress(tc.seeds, tc.program)
		require.NoError(t, err, tc.name)
		assert.True(t, bytes.Equal(expected.Bytes(), tc.actual), tc.name)
	}
}
