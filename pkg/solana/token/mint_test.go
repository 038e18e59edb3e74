package token

import (
	"crypto/ed25519"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	sdktoken "github.com/blocto/solana-go-sdk/program/token"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMint_Base(t *testing.T) {
	keys := generateKeys(t, 2)

	expected := &Mint{
		MintAuthority:   keys[0],
		Supply:          1_000_000_000,
		Decimals:        9,
		IsInitialized:   true,
		FreezeAuthority: keys[1],
	}

	data := expected.Marshal()
	require.Len(t, data, MintSize)

	actual, err := UnmarshalMint(data)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
	assert.Equal(t, ExtensionFlags(0), actual.ExtensionFlags())
	assert.Nil(t, actual.TransferHookProgram())

	_, _, _, ok := actual.Metadata()
	assert.False(t, ok)

	sdkMint, err := sdktoken.MintAccountFromData(data)
	require.NoError(t, err)
	assert.Equal(t, expected.Supply, sdkMint.Supply)
	assert.Equal(t, expected.Decimals, sdkMint.Decimals)
	require.NotNil(t, sdkMint.MintAuthority)
	assert.Equal(t, common.PublicKeyFromBytes(keys[0]), *sdkMint.MintAuthority)
}

func TestMint_NoAuthorities(t *testing.T) {
	expected := &Mint{Supply: 5, Decimals: 6, IsInitialized: true}

	actual, err := UnmarshalMint(expected.Marshal())
	require.NoError(t, err)
	assert.Nil(t, actual.MintAuthority)
	assert.Nil(t, actual.FreezeAuthority)
}

func TestMint_Extensions(t *testing.T) {
	keys := generateKeys(t, 5)

	expected := &Mint{
		MintAuthority: keys[0],
		Supply:        42,
		Decimals:      6,
		IsInitialized: true,
		TransferFeeConfig: &TransferFeeConfig{
			ConfigAuthority:  keys[1],
			WithheldAmount:   7,
			NewerTransferFee: TransferFee{Epoch: 3, MaximumFee: 100, TransferFeeBasisPoints: 50},
		},
		PermanentDelegate: keys[2],
		TransferHook: &TransferHook{
			Authority: keys[1],
			ProgramID: keys[3],
		},
		MetadataPointer: &MetadataPointer{
			Authority:       keys[1],
			MetadataAddress: keys[4],
		},
		TokenMetadata: &TokenMetadata{
			UpdateAuthority:    keys[1],
			Mint:               keys[4],
			Name:               "Cook Token",
			Symbol:             "COOK",
			URI:                "https://example.com/cook.json",
			AdditionalMetadata: [][2]string{{"site", "letscook"}},
		},
	}

	data := expected.Marshal()
	assert.Equal(t, byte(AccountTypeMint), data[AccountSize])

	actual, err := UnmarshalMint(data)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)

	assert.Equal(t, FlagTransferFee|FlagPermanentDelegate|FlagTransferHook, actual.ExtensionFlags())
	assert.Equal(t, "transfer_fee|permanent_delegate|transfer_hook", actual.ExtensionFlags().String())
	assert.EqualValues(t, keys[3], actual.TransferHookProgram())

	name, symbol, uri, ok := actual.Metadata()
	require.True(t, ok)
	assert.Equal(t, "Cook Token", name)
	assert.Equal(t, "COOK", symbol)
	assert.Equal(t, "https://example.com/cook.json", uri)
}

func TestMint_UnsetHookProgram(t *testing.T) {
	keys := generateKeys(t, 1)

	m := &Mint{
		IsInitialized: true,
		TransferHook:  &TransferHook{Authority: keys[0]},
	}

	actual, err := UnmarshalMint(m.Marshal())
	require.NoError(t, err)
	require.NotNil(t, actual.TransferHook)
	assert.Nil(t, actual.TransferHookProgram())
	assert.False(t, actual.ExtensionFlags().Has(FlagTransferHook))
}

func TestMint_SkipsUnknownExtensions(t *testing.T) {
	keys := generateKeys(t, 1)

	m := &Mint{IsInitialized: true, PermanentDelegate: keys[0]}
	data := m.Marshal()

	// Insert an unrecognized extension (type 99, 3 bytes) ahead of the rest.
	unknown := []byte{99, 0, 3, 0, 1, 2, 3}
	withUnknown := append(append(append([]byte{}, data[:AccountSize+1]...), unknown...), data[AccountSize+1:]...)
	withUnknown = append(withUnknown, 0, 0, 0, 0)

	actual, err := UnmarshalMint(withUnknown)
	require.NoError(t, err)
	assert.Equal(t, ed25519.PublicKey(keys[0]), actual.PermanentDelegate)
}

func TestMint_Invalid(t *testing.T) {
	m := &Mint{IsInitialized: true, PermanentDelegate: generateKeys(t, 1)[0]}
	data := m.Marshal()

	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"short", data[:MintSize-1]},
		{"between base and account type", data[:100]},
		{"not a mint", func() []byte {
			b := append([]byte{}, data...)
			b[AccountSize] = byte(AccountTypeAccount)
			return b
		}()},
		{"overrun", data[:len(data)-1]},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalMint(tc.data)
			assert.True(t, errors.Is(err, ErrInvalidMint))
		})
	}
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
