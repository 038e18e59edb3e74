package cook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/binary"
	"github.com/letscook/cook-client/pkg/solana/token"
)

const (
	UpdateLiquidityInstructionArgsSize = (1 + // side
		8) // in_amount
)

type UpdateLiquidityInstructionArgs struct {
	Side     uint8
	InAmount uint64
}

// UpdateLiquidityInstructionAccounts are shared by adding and removing
// liquidity.
type UpdateLiquidityInstructionAccounts struct {
	User               ed25519.PublicKey
	TokenMint          ed25519.PublicKey
	WSOLMint           ed25519.PublicKey
	LPMint             ed25519.PublicKey
	TempWSOL           ed25519.PublicKey
	UserTokenAccount   ed25519.PublicKey
	UserLPTokenAccount ed25519.PublicKey
	AMM                ed25519.PublicKey
	BaseAMMAccount     ed25519.PublicKey
	QuoteAMMAccount    ed25519.PublicKey
	ProgramSol         ed25519.PublicKey
	TokenProgram       ed25519.PublicKey
}

func NewUpdateCookLiquidityInstruction(
	accounts *UpdateLiquidityInstructionAccounts,
	args *UpdateLiquidityInstructionArgs,
) (solana.Instruction, error) {
	return newLiquidityInstruction(InstructionTypeUpdateCookLiquidity, accounts, args)
}

func NewRemoveCookLiquidityInstruction(
	accounts *UpdateLiquidityInstructionAccounts,
	args *UpdateLiquidityInstructionArgs,
) (solana.Instruction, error) {
	return newLiquidityInstruction(InstructionTypeRemoveCookLiquidity, accounts, args)
}

func newLiquidityInstruction(
	instructionType InstructionType,
	accounts *UpdateLiquidityInstructionAccounts,
	args *UpdateLiquidityInstructionArgs,
) (solana.Instruction, error) {
	e := binary.NewEncoder(1 + UpdateLiquidityInstructionArgsSize)
	putInstructionType(e, instructionType)
	e.Uint8(args.Side)
	e.Uint64(args.InAmount)

	return newInstruction(e, []solana.AccountMeta{
		{
			PublicKey:  accounts.User,
			IsWritable: true,
			IsSigner:   true,
		},
		{
			PublicKey:  accounts.TokenMint,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.WSOLMint,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.LPMint,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.TempWSOL,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.UserTokenAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.UserLPTokenAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.AMM,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.BaseAMMAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.QuoteAMMAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.ProgramSol,
			IsWritable: false,
			IsSigner:   false,
		},
		{
			PublicKey:  token.ProgramKey,
			IsWritable: false,
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
	})
}
