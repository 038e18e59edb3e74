package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNoApplication(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		RecordCount(ctx, "Launchpad/Test", 1)
		RecordDuration(ctx, "Launchpad/Test", time.Second)
		RecordEvent(ctx, "LaunchpadTest", map[string]interface{}{"k": "v"})

		tracer := TraceMethodCall(ctx, "network", "GetAccountBytes")
		tracer.AddAttribute("account", "x")
		tracer.OnError(errors.New("failed"))
		tracer.End()
	})

	assert.Equal(t, ctx, WithApplication(ctx, nil))
}

func TestRelayedMessage(t *testing.T) {
	assert.Equal(t, "plain", relayedMessage(&logrus.Entry{Message: "plain"}))

	e := &logrus.Entry{
		Message: "refresh failed",
		Data: logrus.Fields{
			logrus.ErrorKey: errors.New("rpc down"),
			"page":          "cook",
		},
	}
	assert.Equal(t, `message="refresh failed", error="rpc down", data={"page":"cook"}`, relayedMessage(e))
}
