package cook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/binary"
)

// MintNFTInstructionAccounts are shared by mint and mint random. Asset is a
// fresh keypair that signs for the new asset.
type MintNFTInstructionAccounts struct {
	User             ed25519.PublicKey
	Assignment       ed25519.PublicKey
	Collection       ed25519.PublicKey
	ProgramSol       ed25519.PublicKey
	Asset            ed25519.PublicKey
	CollectionMint   ed25519.PublicKey
	TeamWallet       ed25519.PublicKey
	TokenMint        ed25519.PublicKey
	PdaTokenAccount  ed25519.PublicKey
	UserTokenAccount ed25519.PublicKey
	TeamTokenAccount ed25519.PublicKey
	RandomAddress    ed25519.PublicKey
	TokenProgram     ed25519.PublicKey
}

func NewMintNFTInstruction(accounts *MintNFTInstructionAccounts) (solana.Instruction, error) {
	e := binary.NewEncoder(1)
	putInstructionType(e, InstructionTypeMintNFT)

	return newInstruction(e, accounts.metas())
}

func NewMintRandomNFTInstruction(accounts *MintNFTInstructionAccounts) (solana.Instruction, error) {
	e := binary.NewEncoder(1)
	putInstructionType(e, InstructionTypeMintRandomNFT)

	return newInstruction(e, accounts.metas())
}

func (accounts *MintNFTInstructionAccounts) metas() []solana.AccountMeta {
	return []solana.AccountMeta{
		{
			PublicKey:  accounts.User,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  accounts.Assignment,
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
			PublicKey:  accounts.Asset,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  accounts.CollectionMint,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.TeamWallet,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.TokenMint,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.PdaTokenAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.UserTokenAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.TeamTokenAccount,
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
			PublicKey:  accounts.RandomAddress,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.TokenProgram,
			IsWritable: false,
			IsSigner:   false,
		},
	}
}
