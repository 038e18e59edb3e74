package cook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/binary"
)

const (
	BuyNFTInstructionArgsSize = 4 // index
)

type BuyNFTInstructionArgs struct {
	Index uint32
}

type BuyNFTInstructionAccounts struct {
	User           ed25519.PublicKey
	Collection     ed25519.PublicKey
	ProgramSol     ed25519.PublicKey
	Asset          ed25519.PublicKey
	CollectionMint ed25519.PublicKey
	Seller         ed25519.PublicKey
	Listing        ed25519.PublicKey
	Summary        ed25519.PublicKey
}

func NewBuyNFTInstruction(
	accounts *BuyNFTInstructionAccounts,
	args *BuyNFTInstructionArgs,
) (solana.Instruction, error) {
	e := binary.NewEncoder(1 + BuyNFTInstructionArgsSize)
	putInstructionType(e, InstructionTypeBuyNFT)
	e.Uint32(args.Index)

	return newInstruction(e, []solana.AccountMeta{
		{
			PublicKey:  accounts.User,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  accounts.Collection,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.ProgramSol,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Asset,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.CollectionMint,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Seller,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Listing,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.Summary,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  SYSTEM_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  CORE_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  LISTINGS_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
	})
}
