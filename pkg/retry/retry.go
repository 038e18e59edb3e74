// Package retry runs actions until they succeed or a strategy gives up.
package retry

import "context"

// Action is a function to be performed in a retriable manner.
type Action func(ctx context.Context) error

// Retrier retries actions with a fixed set of strategies.
type Retrier struct {
	strategies []Strategy
}

// NewRetrier returns a Retrier using strategies. With no strategies the action
// is retried until it succeeds or ctx is done.
func NewRetrier(strategies ...Strategy) *Retrier {
	return &Retrier{strategies: strategies}
}

func (r *Retrier) Retry(ctx context.Context, action Action) (uint, error) {
	return Retry(ctx, action, r.strategies...)
}

// Retry runs action until it returns nil, a strategy declines another attempt
// or ctx is done. It returns the number of attempts and the last error.
//
// Strategies run in order and stop at the first that declines, so ones that
// delay belong last.
func Retry(ctx context.Context, action Action, strategies ...Strategy) (uint, error) {
	for attempt := uint(1); ; attempt++ {
		err := action(ctx)
		if err == nil {
			return attempt, nil
		}
		if ctx.Err() != nil {
			return attempt, err
		}

		for _, s := range strategies {
			if !s(ctx, attempt, err) {
				return attempt, err
			}
		}
	}
}
