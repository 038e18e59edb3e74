// Package backoff provides delay schedules for retry.
package backoff

import (
	"math"
	"time"
)

// Strategy returns the delay before retrying after the attempts-th failure.
// attempts starts at 1.
type Strategy func(attempts uint) time.Duration

func Constant(delay time.Duration) Strategy {
	return func(uint) time.Duration {
		return delay
	}
}

// Exponential grows the delay as first * factor^(attempts-1), saturating at
// the largest duration instead of overflowing.
func Exponential(first time.Duration, factor float64) Strategy {
	return func(attempts uint) time.Duration {
		delay := float64(first) * math.Pow(factor, float64(attempts-1))
		if delay >= math.MaxInt64 || delay < 0 {
			return math.MaxInt64
		}
		return time.Duration(delay)
	}
}

// BinaryExponential doubles the delay on every attempt.
func BinaryExponential(first time.Duration) Strategy {
	return Exponential(first, 2)
}
