// Package cook encodes and decodes the accounts and instructions of the
// Let's Cook launchpad program and its companion listings program.
package cook

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/token"
)

var (
	ErrInvalidAccountData = errors.New("unexpected account data")
)

var (
	PROGRAM_ID = solana.MustPublicKeyFromString("Cook7kyoaKaiG57VBDUjE2KuPXrWdLEu7d3FdDgsijHU")

	LISTINGS_PROGRAM_ID = solana.MustPublicKeyFromString("288fPpF7XGk82Wth2XgyoF2A82YKryEyzL58txxt47kd")
)

var (
	CORE_PROGRAM_ID   = solana.MustPublicKeyFromString("CoREENxT6tW1HoK8ypY1SxRMZTcVPm7R94rH4PZNhX7d")
	SYSTEM_PROGRAM_ID = ed25519.PublicKey(make([]byte, ed25519.PublicKeySize))
	WRAPPED_SOL_MINT  = token.WrappedSolMint
)

const (
	SolAccountSeed  uint32 = 59957379
	DataAccountSeed uint32 = 7571427
)

const (
	// SecondsPerDay converts unix time into the day index used by trade to
	// earn accounts.
	SecondsPerDay = 24 * 60 * 60
)
