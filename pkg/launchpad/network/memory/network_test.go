package memory

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letscook/cook-client/pkg/launchpad/network"
	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/testutil"
)

func TestNetwork_Accounts(t *testing.T) {
	ctx := context.Background()
	n := New()

	keys := testutil.GenerateSolanaKeys(t, 2)
	address, owner := keys[0], keys[1]

	_, ok, err := n.GetAccountBytes(ctx, address)
	require.NoError(t, err)
	assert.False(t, ok)

	n.SetAccount(address, owner, []byte{1, 2, 3})

	data, ok, err := n.GetAccountBytes(ctx, address)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, data)

	data[0] = 9
	data, _, _ = n.GetAccountBytes(ctx, address)
	assert.Equal(t, []byte{1, 2, 3}, data)

	actualOwner, ok, err := n.GetAccountOwner(ctx, address)
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, owner, actualOwner)

	// The miss, both byte reads and the owner read.
	assert.Equal(t, 4, n.Reads(address))

	n.DeleteAccount(address)
	_, ok, err = n.GetAccountBytes(ctx, address)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNetwork_Scan(t *testing.T) {
	ctx := context.Background()
	n := New()

	keys := testutil.GenerateSolanaKeys(t, 5)
	program, other, collection := keys[0], keys[1], keys[2]

	matching := append(append([]byte{}, collection...), make([]byte, 72)...)
	wrongSize := append(append([]byte{}, collection...), make([]byte, 8)...)

	n.SetAccount(keys[3], program, matching)
	n.SetAccount(keys[4], program, wrongSize)
	n.SetAccount(testutil.GenerateSolanaKey(t), other, matching)

	res, err := n.GetAccountsMatching(ctx, program, solana.DataSizeFilter(104), solana.MemcmpAt(0, collection))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.EqualValues(t, keys[3], res[0].Address)
	assert.Equal(t, matching, res[0].Data)

	res, err = n.GetAccountsMatching(ctx, program)
	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, 2, n.Scans())
}

func TestNetwork_Watch(t *testing.T) {
	ctx := context.Background()
	n := New()

	keys := testutil.GenerateSolanaKeys(t, 2)
	address, owner := keys[0], keys[1]

	var updates [][]byte
	handle, err := n.WatchAccount(ctx, address, func(data []byte) {
		updates = append(updates, data)
	})
	require.NoError(t, err)
	assert.NotEmpty(t, handle)
	assert.Equal(t, 1, n.ActiveWatches(address))

	n.SetAccount(address, owner, []byte{1})
	n.DeleteAccount(address)
	require.Len(t, updates, 2)
	assert.Equal(t, []byte{1}, updates[0])
	assert.Empty(t, updates[1])

	n.Unwatch(handle)
	n.Unwatch(handle)
	n.Unwatch("unknown")
	assert.Equal(t, 0, n.ActiveWatches(address))

	n.SetAccount(address, owner, []byte{2})
	assert.Len(t, updates, 2)
}

func TestNetwork_UnwatchFromCallback(t *testing.T) {
	ctx := context.Background()
	n := New()

	keys := testutil.GenerateSolanaKeys(t, 2)

	var handle network.Handle
	var calls int
	handle, err := n.WatchAccount(ctx, keys[0], func(_ []byte) {
		calls++
		n.Unwatch(handle)
	})
	require.NoError(t, err)

	n.SetAccount(keys[0], keys[1], []byte{1})
	n.SetAccount(keys[0], keys[1], []byte{2})
	assert.Equal(t, 1, calls)
}

func TestNetwork_InducedErrors(t *testing.T) {
	ctx := context.Background()
	n := New()
	address := testutil.GenerateSolanaKey(t)

	n.InduceErrors()

	_, _, err := n.GetAccountBytes(ctx, address)
	assert.True(t, errors.Is(err, network.ErrNetworkUnavailable))

	_, err = n.GetAccountsMatching(ctx, address)
	assert.True(t, errors.Is(err, network.ErrNetworkUnavailable))

	_, err = n.WatchAccount(ctx, address, func([]byte) {})
	assert.True(t, errors.Is(err, network.ErrNetworkUnavailable))

	n.StopInducingErrors()
	_, _, err = n.GetAccountBytes(ctx, address)
	assert.NoError(t, err)
}

func TestNetwork_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := New().GetAccountBytes(ctx, testutil.GenerateSolanaKey(t))
	assert.Equal(t, context.Canceled, err)
}
