package cook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/binary"
	"github.com/letscook/cook-client/pkg/solana/token"
)

const (
	PlaceMarketOrderInstructionArgsSize = (1 + // side
		8 + // in_amount
		4) // data (empty)
)

// Sides of a market order. A buy spends SOL, a sell spends tokens.
const (
	OrderSideBuy  uint8 = 0
	OrderSideSell uint8 = 1
)

type PlaceMarketOrderInstructionArgs struct {
	Side     uint8
	InAmount uint64
	// Data is routed to an external aggregator. Direct AMM orders leave it
	// empty.
	Data []byte
}

type PlaceMarketOrderInstructionAccounts struct {
	User             ed25519.PublicKey
	UserData         ed25519.PublicKey
	UserTokenAccount ed25519.PublicKey
	TempWSOL         ed25519.PublicKey
	TokenMint        ed25519.PublicKey
	WSOLMint         ed25519.PublicKey
	AMM              ed25519.PublicKey
	BaseAMMAccount   ed25519.PublicKey
	QuoteAMMAccount  ed25519.PublicKey
	TradeToEarn      ed25519.PublicKey
	LaunchDate       ed25519.PublicKey
	UserDate         ed25519.PublicKey
	PriceData        ed25519.PublicKey
	TokenProgram     ed25519.PublicKey
	CookFees         ed25519.PublicKey
}

func NewPlaceMarketOrderInstruction(
	accounts *PlaceMarketOrderInstructionAccounts,
	args *PlaceMarketOrderInstructionArgs,
) (solana.Instruction, error) {
	e := binary.NewEncoder(1 + PlaceMarketOrderInstructionArgsSize + len(args.Data))
	putInstructionType(e, InstructionTypePlaceMarketOrder)
	e.Uint8(args.Side)
	e.Uint64(args.InAmount)
	e.Bytes(args.Data)

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
			PublicKey:  accounts.UserTokenAccount,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.TempWSOL,
			IsWritable: true,
			IsSigner:   false,
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
			PublicKey:  accounts.TradeToEarn,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.LaunchDate,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.UserDate,
			IsWritable: true,
			IsSigner:   false,
		},
		{
			PublicKey:  accounts.PriceData,
			IsWritable: true,
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
		{
			PublicKey:  accounts.CookFees,
			IsWritable: true,
			IsSigner:   false,
		},
	})
}
