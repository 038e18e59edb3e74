package cook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/binary"
	"github.com/letscook/cook-client/pkg/solana/token"
)

var ASSOCIATED_TOKEN_PROGRAM_ID = token.AssociatedTokenAccountProgramKey

// WrapNFTInstructionAccounts returns Asset to the collection in exchange for
// tokens.
type WrapNFTInstructionAccounts struct {
	User             ed25519.PublicKey
	UserData         ed25519.PublicKey
	Collection       ed25519.PublicKey
	ProgramSol       ed25519.PublicKey
	TokenMint        ed25519.PublicKey
	UserTokenAccount ed25519.PublicKey
	PdaTokenAccount  ed25519.PublicKey
	TeamTokenAccount ed25519.PublicKey
	Asset            ed25519.PublicKey
	CollectionMint   ed25519.PublicKey
	TokenProgram     ed25519.PublicKey
}

func NewWrapNFTInstruction(accounts *WrapNFTInstructionAccounts) (solana.Instruction, error) {
	e := binary.NewEncoder(1)
	putInstructionType(e, InstructionTypeWrapNFT)

	return newInstruction(e, []solana.AccountMeta{
		{
			PublicKey:  accounts.User,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  accounts.UserData,
			IsWritable: true,
			IsSigner:   false,
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
			PublicKey:  accounts.TokenMint,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.UserTokenAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.PdaTokenAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.TeamTokenAccount,
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
			PublicKey:  accounts.TokenProgram,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  ASSOCIATED_TOKEN_PROGRAM_ID,
			IsWritable: false,
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
	})
}
