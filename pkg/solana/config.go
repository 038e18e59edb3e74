package solana

import "strings"

type Environment string

const (
	EnvironmentDev     Environment = "https://api.devnet.solana.com"
	EnvironmentTest    Environment = "https://api.testnet.solana.com"
	EnvironmentProd    Environment = "https://api.mainnet-beta.solana.com"
	EnvironmentEclipse Environment = "https://mainnetbeta-rpc.eclipse.xyz"
)

// WebsocketEndpoint returns the pubsub endpoint served alongside an HTTP RPC
// endpoint.
func WebsocketEndpoint(endpoint string) string {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return "wss://" + strings.TrimPrefix(endpoint, "https://")
	case strings.HasPrefix(endpoint, "http://"):
		return "ws://" + strings.TrimPrefix(endpoint, "http://")
	default:
		return endpoint
	}
}
