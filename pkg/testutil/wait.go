package testutil

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// WaitFor polls condition every interval until it holds or timeout passes.
func WaitFor(timeout, interval time.Duration, condition func() bool) error {
	if interval > timeout {
		return errors.Errorf("poll interval %v exceeds timeout %v", interval, timeout)
	}

	deadline := time.After(timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !condition() {
		select {
		case <-deadline:
			if condition() {
				return nil
			}
			return errors.Errorf("condition not met within %v", timeout)
		case <-ticker.C:
		}
	}
	return nil
}

// RequireEventually fails the test unless condition holds within a second.
// Watch notifications and scheduled refreshes arrive on other goroutines.
func RequireEventually(t testing.TB, condition func() bool, msgAndArgs ...interface{}) {
	t.Helper()
	require.NoError(t, WaitFor(time.Second, 5*time.Millisecond, condition), msgAndArgs...)
}
