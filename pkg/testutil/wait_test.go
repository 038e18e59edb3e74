package testutil

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitFor(t *testing.T) {
	require.NoError(t, WaitFor(50*time.Millisecond, 10*time.Millisecond, func() bool { return true }))

	start := time.Now()
	require.Error(t, WaitFor(50*time.Millisecond, 10*time.Millisecond, func() bool { return false }))
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	require.Error(t, WaitFor(10*time.Millisecond, 50*time.Millisecond, func() bool { return true }))
}

func TestRequireEventually(t *testing.T) {
	var refreshed atomic.Bool
	time.AfterFunc(20*time.Millisecond, func() { refreshed.Store(true) })

	RequireEventually(t, refreshed.Load)
}

func TestGenerateSolanaKeys(t *testing.T) {
	keys := GenerateSolanaKeys(t, 3)
	require.Len(t, keys, 3)
	assert.NotEqual(t, keys[0], keys[1])
	assert.Len(t, keys[2], 32)
}

func TestDisableLogging(t *testing.T) {
	reset := DisableLogging()
	reset()
}
