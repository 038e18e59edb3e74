package metaplex

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana"
)

var MetadataPrefix = []byte("metadata")

type GetMetadataAddressArgs struct {
	Mint ed25519.PublicKey
}

func GetMetadataAddress(args *GetMetadataAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		TOKEN_METADATA_PROGRAM_ID,
		MetadataPrefix,
		TOKEN_METADATA_PROGRAM_ID,
		args.Mint,
	)
}
