package orao

import (
	"crypto/ed25519"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letscook/cook-client/pkg/solana/binary"
)

func TestAddresses_MatchSDK(t *testing.T) {
	var seed [32]byte
	for i := range seed {
		seed[i] = byte(i)
	}

	program := common.PublicKeyFromBytes(PROGRAM_ID)

	network, _, err := GetNetworkStateAddress(&GetNetworkStateAddressArgs{})
	require.NoError(t, err)
	expected, _, err := common.FindProgramAddress([][]byte{[]byte("orao-vrf-network-configuration")}, program)
	require.NoError(t, err)
	assert.Equal(t, expected.Bytes(), []byte(network))

	randomness, _, err := GetRandomnessAddress(&GetRandomnessAddressArgs{Seed: seed})
	require.NoError(t, err)
	expected, _, err = common.FindProgramAddress([][]byte{[]byte("orao-vrf-randomness-request"), seed[:]}, program)
	require.NoError(t, err)
	assert.Equal(t, expected.Bytes(), []byte(randomness))
}

func TestAddresses_ProgramOverride(t *testing.T) {
	other, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	a, _, err := GetNetworkStateAddress(&GetNetworkStateAddressArgs{})
	require.NoError(t, err)
	b, _, err := GetNetworkStateAddress(&GetNetworkStateAddressArgs{Program: other})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestUnmarshalNetworkState(t *testing.T) {
	treasury, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	data := make([]byte, 8, 128)
	data = append(data, treasury...)
	data = append(data, make([]byte, 64)...)

	state, err := UnmarshalNetworkState(data)
	require.NoError(t, err)
	assert.Equal(t, treasury, state.Treasury)

	_, err = UnmarshalNetworkState(data[:20])
	assert.ErrorIs(t, err, binary.ErrTruncatedInput)
}

func TestUnmarshalRandomness(t *testing.T) {
	node, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	data := make([]byte, 32+RandomnessSize)
	data[0] = 7
	data = append(data, 1, 0, 0, 0)
	data = append(data, node...)
	data = append(data, make([]byte, RandomnessSize)...)

	r, err := UnmarshalRandomness(data)
	require.NoError(t, err)
	assert.EqualValues(t, 7, r.Seed[0])
	assert.False(t, r.Fulfilled())
	require.Len(t, r.Responses, 1)
	assert.Equal(t, node, r.Responses[0].PublicKey)

	data[32] = 1
	r, err = UnmarshalRandomness(data)
	require.NoError(t, err)
	assert.True(t, r.Fulfilled())

	_, err = UnmarshalRandomness(data[:len(data)-1])
	assert.ErrorIs(t, err, binary.ErrTruncatedInput)
}
