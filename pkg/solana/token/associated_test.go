package token

import (
	"crypto/ed25519"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAssociatedAccount(t *testing.T) {
	// Values generated from taken from spl code.
	wallet, err := base58.Decode("4uQeVj5tqViQh7yWWGStvkEG1Zmhx6uasJtWCJziofM")
	require.NoError(t, err)
	mint, err := base58.Decode("8opHzTAnfzRpPEx21XtnrVTX28YQuCpAjcn1PczScKh")
	require.NoError(t, err)
	addr, err := base58.Decode("H7MQwEzt97tUJryocn3qaEoy2ymWstwyEk1i9Yv3EmuZ")
	require.NoError(t, err)

	actual, err := GetAssociatedAccount(wallet, mint)
	require.NoError(t, err)
	assert.EqualValues(t, addr, actual)
}

func TestGetAssociatedAccount_MatchesSDK(t *testing.T) {
	for i := 0; i < 8; i++ {
		wallet, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)
		mint, _, err := ed25519.GenerateKey(nil)
		require.NoError(t, err)

		expected, _, err := common.FindAssociatedTokenAddress(common.PublicKeyFromBytes(wallet), common.PublicKeyFromBytes(mint))
		require.NoError(t, err)

		actual, err := GetAssociatedAccount(wallet, mint)
		require.NoError(t, err)
		assert.Equal(t, expected.Bytes(), []byte(actual))

		// Token-2022 accounts swap the program seed.
		expected2022, _, err := common.FindProgramAddress(
			[][]byte{wallet, Program2022Key, mint},
			common.PublicKeyFromBytes(AssociatedTokenAccountProgramKey),
		)
		require.NoError(t, err)

		actual2022, err := GetAssociatedAccountWithProgram(wallet, mint, Program2022Key)
		require.NoError(t, err)
		assert.Equal(t, expected2022.Bytes(), []byte(actual2022))
		assert.NotEqual(t, actual, actual2022)
	}
}

func TestProgramKeys(t *testing.T) {
	assert.Equal(t, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", base58.Encode(ProgramKey))
	assert.Equal(t, "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb", base58.Encode(Program2022Key))
	assert.Equal(t, "So11111111111111111111111111111111111111112", base58.Encode(WrappedSolMint))
	assert.Equal(t, common.TokenProgramID.Bytes(), []byte(ProgramKey))
	assert.Equal(t, common.SPLAssociatedTokenAccountProgramID.Bytes(), []byte(AssociatedTokenAccountProgramKey))

	assert.True(t, IsTokenProgram(ProgramKey))
	assert.True(t, IsTokenProgram(Program2022Key))
	assert.False(t, IsTokenProgram(AssociatedTokenAccountProgramKey))
}
