package solana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWebsocketEndpoint(t *testing.T) {
	assert.Equal(t, "wss://api.devnet.solana.com", WebsocketEndpoint(string(EnvironmentDev)))
	assert.Equal(t, "ws://localhost:8899", WebsocketEndpoint("http://localhost:8899"))
	assert.Equal(t, "ws://already", WebsocketEndpoint("ws://already"))
}
