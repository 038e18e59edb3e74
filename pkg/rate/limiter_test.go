package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestNoLimiter(t *testing.T) {
	l := &NoLimiter{}
	for i := 0; i < 1000; i++ {
		allowed, err := l.Allow("")
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.NoError(t, l.Wait(context.Background(), ""))
	}
}

func TestLocalRateLimiter_Allow(t *testing.T) {
	l := NewLocalRateLimiter(rate.Limit(2))

	for i := 0; i < 2; i++ {
		allowed, err := l.Allow("ipfs.io")
		assert.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := l.Allow("ipfs.io")
	assert.NoError(t, err)
	assert.False(t, allowed)

	// Hosts are limited independently
	allowed, err = l.Allow("arweave.net")
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestLocalRateLimiter_Wait(t *testing.T) {
	l := NewLocalRateLimiter(rate.Limit(0.5))

	// The first call consumes the single token.
	require.NoError(t, l.Wait(context.Background(), "host"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, "host"))
}
