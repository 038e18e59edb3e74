package cook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/binary"
)

const (
	ListNFTInstructionArgsSize = 8 // price

	UnlistNFTInstructionArgsSize = 4 // index
)

type ListNFTInstructionArgs struct {
	Price uint64
}

type UnlistNFTInstructionArgs struct {
	Index uint32
}

// ListNFTInstructionAccounts are shared by list and unlist.
type ListNFTInstructionAccounts struct {
	User           ed25519.PublicKey
	Collection     ed25519.PublicKey
	ProgramSol     ed25519.PublicKey
	Asset          ed25519.PublicKey
	CollectionMint ed25519.PublicKey
	Listing        ed25519.PublicKey
	Summary        ed25519.PublicKey
}

func NewListNFTInstruction(
	accounts *ListNFTInstructionAccounts,
	args *ListNFTInstructionArgs,
) (solana.Instruction, error) {
	e := binary.NewEncoder(1 + ListNFTInstructionArgsSize)
	putInstructionType(e, InstructionTypeListNFT)
	e.Uint64(args.Price)

	return newInstruction(e, accounts.metas())
}

func NewUnlistNFTInstruction(
	accounts *ListNFTInstructionAccounts,
	args *UnlistNFTInstructionArgs,
) (solana.Instruction, error) {
	e := binary.NewEncoder(1 + UnlistNFTInstructionArgsSize)
	putInstructionType(e, InstructionTypeUnlistNFT)
	e.Uint32(args.Index)

	return newInstruction(e, accounts.metas())
}

func (accounts *ListNFTInstructionAccounts) metas() []solana.AccountMeta {
	return []solana.AccountMeta{
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
	}
}
