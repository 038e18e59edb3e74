package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letscook/cook-client/pkg/testutil"
)

func TestAccount_RoundTrip(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 4)
	native := uint64(2039280)

	expected := &Account{
		Mint:            keys[0],
		Owner:           keys[1],
		Amount:          1_500_000,
		Delegate:        keys[2],
		State:           AccountStateFrozen,
		IsNative:        &native,
		DelegatedAmount: 10,
		CloseAuthority:  keys[3],
	}

	b := expected.Marshal()
	require.Len(t, b, AccountSize)

	actual, err := UnmarshalAccount(b)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
	assert.Equal(t, "1.5", actual.Balance(6).String())
	assert.Equal(t, "frozen", actual.State.String())
}

func TestAccount_OptionalFields(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)

	b := (&Account{Mint: keys[0], Owner: keys[1], State: AccountStateInitialized}).Marshal()
	actual, err := UnmarshalAccount(b)
	require.NoError(t, err)
	assert.Nil(t, actual.Delegate)
	assert.Nil(t, actual.IsNative)
	assert.Nil(t, actual.CloseAuthority)
}

func TestAccount_Token2022(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)
	base := (&Account{Mint: keys[0], Owner: keys[1], State: AccountStateInitialized}).Marshal()

	withExtensions := append(append([]byte{}, base...), byte(AccountTypeAccount), 0, 0)
	actual, err := UnmarshalAccount(withExtensions)
	require.NoError(t, err)
	assert.EqualValues(t, keys[0], actual.Mint)

	wrongType := append(append([]byte{}, base...), byte(AccountTypeMint))
	_, err = UnmarshalAccount(wrongType)
	assert.Error(t, err)
}

func TestAccount_Invalid(t *testing.T) {
	_, err := UnmarshalAccount(make([]byte, AccountSize-1))
	assert.Error(t, err)

	b := (&Account{State: AccountStateInitialized}).Marshal()
	b[108] = 7
	_, err = UnmarshalAccount(b)
	assert.Error(t, err)
}
