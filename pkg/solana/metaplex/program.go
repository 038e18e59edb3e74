// Package metaplex covers the parts of the Metaplex token metadata and MPL
// Core programs the launchpad reads.
package metaplex

import (
	"github.com/letscook/cook-client/pkg/solana"
)

var (
	TOKEN_METADATA_PROGRAM_ID = solana.MustPublicKeyFromString("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
	CORE_PROGRAM_ID           = solana.MustPublicKeyFromString("CoREENxT6tW1HoK8ypY1SxRMZTcVPm7R94rH4PZNhX7d")
)
