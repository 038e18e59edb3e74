package transferhook

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letscook/cook-client/pkg/solana"
)

type mapResolver map[string][]byte

func (m mapResolver) GetAccountBytes(_ context.Context, address ed25519.PublicKey) ([]byte, bool, error) {
	data, ok := m[string(address)]
	return data, ok, nil
}

func TestGetExtraAccountMetasAddress(t *testing.T) {
	keys := generateKeys(t, 2)

	actual, _, err := GetExtraAccountMetasAddress(&GetExtraAccountMetasAddressArgs{
		Mint:        keys[0],
		HookProgram: keys[1],
	})
	require.NoError(t, err)

	expected, err := solana.FindProgramAddress(keys[1], []byte("extra-account-metas"), keys[0])
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestExtraAccountMetaList_Layout(t *testing.T) {
	keys := generateKeys(t, 1)

	list := &ExtraAccountMetaList{
		InstructionDiscriminator: 0x1122334455667788,
		Entries: []ExtraAccountMeta{
			NewFixedExtraAccountMeta(keys[0], false, true),
		},
	}

	data := list.Marshal()
	require.Len(t, data, extraAccountMetaListHeaderSize+ExtraAccountMetaSize)
	assert.Equal(t, []byte{0x88, 0x77, 0x66, 0x55, 0x44, 0x33, 0x22, 0x11}, data[:8])
	assert.Equal(t, []byte{39, 0, 0, 0}, data[8:12])
	assert.Equal(t, []byte{1, 0, 0, 0}, data[12:16])
	assert.EqualValues(t, DiscriminatorFixed, data[16])
	assert.Equal(t, []byte(keys[0]), data[17:49])
	assert.Equal(t, []byte{0, 1}, data[49:51])

	decoded, err := UnmarshalExtraAccountMetaList(data)
	require.NoError(t, err)
	assert.Equal(t, list.Entries, decoded.Entries)
	assert.EqualValues(t, 39, decoded.Length)

	_, err = UnmarshalExtraAccountMetaList(data[:len(data)-1])
	assert.Error(t, err)
}

func TestSeeds_PackUnpack(t *testing.T) {
	seeds := []Seed{
		{Kind: SeedKindLiteral, Bytes: []byte("pool")},
		{Kind: SeedKindInstructionData, Index: 1, Length: 8},
		{Kind: SeedKindAccountKey, AccountIndex: 2},
		{Kind: SeedKindAccountData, AccountIndex: 0, Index: 32, Length: 32},
	}

	config, err := PackSeeds(seeds)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 4, 'p', 'o', 'o', 'l', 2, 1, 8, 3, 2, 4, 0, 32, 32, 0}, config[:16])

	unpacked, err := UnpackSeeds(config)
	require.NoError(t, err)
	assert.Equal(t, seeds, unpacked)

	_, err = PackSeeds([]Seed{{Kind: SeedKindLiteral, Bytes: make([]byte, 31)}})
	assert.True(t, errors.Is(err, ErrInvalidExtraAccountMeta))

	var bad [AddressConfigSize]byte
	bad[0] = 9
	_, err = UnpackSeeds(bad)
	assert.True(t, errors.Is(err, ErrInvalidExtraAccountMeta))
}

func TestResolve(t *testing.T) {
	keys := generateKeys(t, 3)
	hookProgram, fixed, dataAccount := keys[0], keys[1], keys[2]

	accountData := make([]byte, 64)
	copy(accountData[32:], fixed)

	pdaUnderHook, err := NewPDAExtraAccountMeta([]Seed{
		{Kind: SeedKindLiteral, Bytes: []byte("counter")},
		{Kind: SeedKindAccountKey, AccountIndex: 0},
	}, nil, false, true)
	require.NoError(t, err)

	programIndex := uint8(0)
	pdaUnderFixed, err := NewPDAExtraAccountMeta([]Seed{
		{Kind: SeedKindAccountData, AccountIndex: 1, Index: 32, Length: 32},
	}, &programIndex, true, false)
	require.NoError(t, err)

	list := &ExtraAccountMetaList{
		Entries: []ExtraAccountMeta{
			NewFixedExtraAccountMeta(fixed, false, false),
			NewFixedExtraAccountMeta(dataAccount, false, true),
			pdaUnderHook,
			pdaUnderFixed,
		},
	}

	resolved, err := Resolve(context.Background(), list, hookProgram, nil, nil, mapResolver{
		string(dataAccount): accountData,
	})
	require.NoError(t, err)
	require.Len(t, resolved, 4)

	assert.EqualValues(t, fixed, resolved[0].PublicKey)
	assert.False(t, resolved[0].IsWritable)
	assert.EqualValues(t, dataAccount, resolved[1].PublicKey)
	assert.True(t, resolved[1].IsWritable)

	expected, err := solana.FindProgramAddress(hookProgram, []byte("counter"), fixed)
	require.NoError(t, err)
	assert.Equal(t, expected, resolved[2].PublicKey)
	assert.True(t, resolved[2].IsWritable)
	assert.False(t, resolved[2].IsSigner)

	expected, err = solana.FindProgramAddress(fixed, fixed)
	require.NoError(t, err)
	assert.Equal(t, expected, resolved[3].PublicKey)
	assert.True(t, resolved[3].IsSigner)
	assert.False(t, resolved[3].IsWritable)
}

func TestResolve_BaseAccountsAreIndexable(t *testing.T) {
	keys := generateKeys(t, 2)

	entry, err := NewPDAExtraAccountMeta([]Seed{{Kind: SeedKindAccountKey, AccountIndex: 0}}, nil, false, false)
	require.NoError(t, err)

	base := []solana.AccountMeta{solana.NewReadonlyAccountMeta(keys[1], false)}
	resolved, err := Resolve(context.Background(), &ExtraAccountMetaList{Entries: []ExtraAccountMeta{entry}}, keys[0], nil, base, nil)
	require.NoError(t, err)
	require.Len(t, resolved, 1)

	expected, err := solana.FindProgramAddress(keys[0], keys[1])
	require.NoError(t, err)
	assert.Equal(t, expected, resolved[0].PublicKey)
}

func TestResolve_InstructionData(t *testing.T) {
	keys := generateKeys(t, 1)

	entry, err := NewPDAExtraAccountMeta([]Seed{{Kind: SeedKindInstructionData, Index: 1, Length: 2}}, nil, false, false)
	require.NoError(t, err)
	list := &ExtraAccountMetaList{Entries: []ExtraAccountMeta{entry}}

	resolved, err := Resolve(context.Background(), list, keys[0], []byte{9, 1, 2}, nil, nil)
	require.NoError(t, err)

	expected, err := solana.FindProgramAddress(keys[0], []byte{1, 2})
	require.NoError(t, err)
	assert.Equal(t, expected, resolved[0].PublicKey)

	// Empty instruction data cannot satisfy the seed.
	_, err = Resolve(context.Background(), list, keys[0], nil, nil, nil)
	assert.True(t, errors.Is(err, ErrSeedOutOfRange))
}

func TestResolve_OutOfRange(t *testing.T) {
	keys := generateKeys(t, 1)

	for _, tc := range []struct {
		name  string
		entry ExtraAccountMeta
	}{
		{
			name:  "external program index",
			entry: ExtraAccountMeta{Discriminator: DiscriminatorExternalPDA + 3},
		},
		{
			name: "account key",
			entry: func() ExtraAccountMeta {
				e, err := NewPDAExtraAccountMeta([]Seed{{Kind: SeedKindAccountKey, AccountIndex: 5}}, nil, false, false)
				require.NoError(t, err)
				return e
			}(),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Resolve(context.Background(), &ExtraAccountMetaList{Entries: []ExtraAccountMeta{tc.entry}}, keys[0], nil, nil, nil)
			assert.True(t, errors.Is(err, ErrSeedOutOfRange))
		})
	}

	_, err := Resolve(context.Background(), &ExtraAccountMetaList{Entries: []ExtraAccountMeta{{Discriminator: 7}}}, keys[0], nil, nil, nil)
	assert.True(t, errors.Is(err, ErrInvalidExtraAccountMeta))
}

func TestResolve_Empty(t *testing.T) {
	keys := generateKeys(t, 1)

	resolved, err := Resolve(context.Background(), &ExtraAccountMetaList{}, keys[0], nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func generateKeys(t *testing.T, amount int) []ed25519.PublicKey {
	keys := make([]ed25519.PublicKey, amount)

	for i := 0; i < amount; i++ {
		pub, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)

		keys[i] = pub
	}

	return keys
}
