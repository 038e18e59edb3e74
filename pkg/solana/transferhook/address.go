package transferhook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana"
)

var ExtraAccountMetasPrefix = []byte("extra-account-metas")

type GetExtraAccountMetasAddressArgs struct {
	Mint        ed25519.PublicKey
	HookProgram ed25519.PublicKey
}

// GetExtraAccountMetasAddress returns the validation account a hook program
// keeps for a mint.
func GetExtraAccountMetasAddress(args *GetExtraAccountMetasAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		args.HookProgram,
		ExtraAccountMetasPrefix,
		args.Mint,
	)
}
