package retry

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/letscook/cook-client/pkg/retry/backoff"
)

// Strategy decides whether the action is attempted again after its attempts-th
// failure with err. It may block before answering.
type Strategy func(ctx context.Context, attempts uint, err error) bool

// Limit allows at most maxAttempts attempts in total.
func Limit(maxAttempts uint) Strategy {
	return func(_ context.Context, attempts uint, _ error) bool {
		return attempts < maxAttempts
	}
}

// RetriableErrors only retries errors matching one of targets.
func RetriableErrors(targets ...error) Strategy {
	return func(_ context.Context, _ uint, err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// BackoffWithJitter waits before the next attempt. The delay from delays is
// capped at maxDelay and then scaled by a random factor in [1-jitter, 1+jitter].
// It declines to retry when ctx is done during the wait.
func BackoffWithJitter(delays backoff.Strategy, maxDelay time.Duration, jitter float64) Strategy {
	return func(ctx context.Context, attempts uint, _ error) bool {
		delay := delays(attempts)
		if delay > maxDelay {
			delay = maxDelay
		}
		delay = time.Duration(float64(delay) * (1 + jitter*(2*rand.Float64()-1)))
		return sleep(ctx, delay) == nil
	}
}

var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
