package cook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/binary"
)

const (
	ClaimNFTInstructionArgsSize = 32 // seed
)

type ClaimNFTInstructionArgs struct {
	// Seed of the randomness request, usually the bytes of a fresh key.
	Seed [32]byte
}

type ClaimNFTInstructionAccounts struct {
	User                  ed25519.PublicKey
	UserData              ed25519.PublicKey
	Assignment            ed25519.PublicKey
	Collection            ed25519.PublicKey
	ProgramSol            ed25519.PublicKey
	TokenMint             ed25519.PublicKey
	UserTokenAccount      ed25519.PublicKey
	PdaTokenAccount       ed25519.PublicKey
	CollectionMint        ed25519.PublicKey
	CookFees              ed25519.PublicKey
	TeamWallet            ed25519.PublicKey
	TokenProgram          ed25519.PublicKey
	OraoRandom            ed25519.PublicKey
	OraoTreasury          ed25519.PublicKey
	OraoNetwork           ed25519.PublicKey
	OraoProgram           ed25519.PublicKey
	WhitelistMint         ed25519.PublicKey
	WhitelistAccount      ed25519.PublicKey
	WhitelistTokenProgram ed25519.PublicKey
}

func NewClaimNFTInstruction(
	accounts *ClaimNFTInstructionAccounts,
	args *ClaimNFTInstructionArgs,
) (solana.Instruction, error) {
	e := binary.NewEncoder(1 + ClaimNFTInstructionArgsSize)
	putInstructionType(e, InstructionTypeClaimNFT)
	e.Fixed(args.Seed[:], len(args.Seed))

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
			PublicKey:  accounts.TokenMint,
			IsWritable: false,
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
			PublicKey:  accounts.CollectionMint,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.CookFees,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.TeamWallet,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  SYSTEM_PROGRAM_ID,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.TokenProgram,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.OraoRandom,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.OraoTreasury,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.OraoNetwork,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.OraoProgram,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.WhitelistMint,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.WhitelistAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.WhitelistTokenProgram,
			IsWritable: false,
			IsSigner:   false,
		},
	})
}
