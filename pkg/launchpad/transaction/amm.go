package transaction

import (
	"context"
	"crypto/ed25519"
	"math"
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/letscook/cook-client/pkg/launchpad/mint"
	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/cook"
	"github.com/letscook/cook-client/pkg/solana/token"
)

const nativeDecimals = 9

var maxAmount = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

type ammAccounts struct {
	record  *cook.AMMRecord
	address ed25519.PublicKey

	baseMint  *mint.Data
	quoteMint ed25519.PublicKey

	userTokenAccount ed25519.PublicKey
	baseAMMAccount   ed25519.PublicKey
	quoteAMMAccount  ed25519.PublicKey
	tempWSOL         ed25519.PublicKey
}

// amm resolves the pool being traded against. The base mint is the launched
// token and the quote mint is wrapped SOL.
func (b *Builder) amm(ctx context.Context, d *deriver, c *Context) (*ammAccounts, error) {
	record := c.AMM
	baseMint, quoteMint := c.BaseMint, c.QuoteMint
	if record != nil {
		baseMint, quoteMint = record.BaseMint, record.QuoteMint
	}
	if len(baseMint) == 0 || len(quoteMint) == 0 {
		return nil, errors.Wrap(ErrAMMNotFound, "base and quote mints are required")
	}

	address, err := d.amm(baseMint, quoteMint)
	if err != nil {
		return nil, err
	}

	if record == nil {
		record = &cook.AMMRecord{}
		ok, err := b.fetch(ctx, address, record)
		if err != nil {
			return nil, err
		} else if !ok {
			return nil, errors.Wrapf(ErrAMMNotFound, "no amm at %s", solana.PublicKeyString(address))
		}
	}

	base, err := b.mints.Get(ctx, baseMint)
	if err != nil {
		return nil, err
	}

	res := &ammAccounts{
		record:    record,
		address:   address,
		baseMint:  base,
		quoteMint: quoteMint,
	}
	if res.userTokenAccount, err = d.associated(c.User, baseMint, base.TokenProgram); err != nil {
		return nil, err
	}
	if res.baseAMMAccount, err = d.associated(address, baseMint, base.TokenProgram); err != nil {
		return nil, err
	}
	// The quote side is always wrapped SOL under the legacy token program.
	if res.quoteAMMAccount, err = d.associated(address, quoteMint, token.ProgramKey); err != nil {
		return nil, err
	}
	if res.tempWSOL, err = d.tempWSOL(c.User); err != nil {
		return nil, err
	}
	return res, nil
}

// scaleAmount converts a display amount into base units with the given
// number of decimals, truncating any remainder.
func scaleAmount(amount decimal.Decimal, decimals int32) (uint64, error) {
	scaled := amount.Shift(decimals).Truncate(0)
	if scaled.IsNegative() || scaled.GreaterThan(maxAmount) {
		return 0, errors.Wrapf(ErrInvalidAmount, "%s", amount)
	}
	return scaled.BigInt().Uint64(), nil
}

func (b *Builder) buildSwap(ctx context.Context, d *deriver, c *Context) (*Result, error) {
	if c.Side != cook.OrderSideBuy && c.Side != cook.OrderSideSell {
		return nil, errors.Wrapf(ErrInvalidSide, "%d", c.Side)
	}

	pool, err := b.amm(ctx, d, c)
	if err != nil {
		return nil, err
	}

	// Buys spend SOL, sells spend the token.
	decimals := int32(nativeDecimals)
	if c.Side == cook.OrderSideSell {
		decimals = int32(pool.baseMint.Decimals())
	}
	inAmount, err := scaleAmount(c.Amount, decimals)
	if err != nil {
		return nil, err
	}

	plugins, duplicates := cook.SummarizeAMMPlugins(pool.record.Plugins)
	b.warnDuplicates(pool.address, duplicates)
	day := plugins.TradeDay(b.now())

	userData, err := d.userData(c.User)
	if err != nil {
		return nil, err
	}
	tradeToEarn, err := d.tradeToEarn(pool.address)
	if err != nil {
		return nil, err
	}
	launchDate, err := d.launchDate(pool.address, day)
	if err != nil {
		return nil, err
	}
	userDate, err := d.userDate(pool.address, c.User, day)
	if err != nil {
		return nil, err
	}
	priceData, err := d.timeSeries(pool.address, 0)
	if err != nil {
		return nil, err
	}

	ix, err := cook.NewPlaceMarketOrderInstruction(
		&cook.PlaceMarketOrderInstructionAccounts{
			User:             c.User,
			UserData:         userData,
			UserTokenAccount: pool.userTokenAccount,
			TempWSOL:         pool.tempWSOL,
			TokenMint:        pool.baseMint.Address,
			WSOLMint:         pool.quoteMint,
			AMM:              pool.address,
			BaseAMMAccount:   pool.baseAMMAccount,
			QuoteAMMAccount:  pool.quoteAMMAccount,
			TradeToEarn:      tradeToEarn,
			LaunchDate:       launchDate,
			UserDate:         userDate,
			PriceData:        priceData,
			TokenProgram:     pool.baseMint.TokenProgram,
			CookFees:         b.settings.CookFees,
		},
		&cook.PlaceMarketOrderInstructionArgs{
			Side:     c.Side,
			InAmount: inAmount,
			Data:     []byte{},
		},
	)
	if err != nil {
		return nil, err
	}

	if ix.Accounts, err = b.appendTransferHook(ctx, ix.Accounts, pool.baseMint); err != nil {
		return nil, err
	}
	return &Result{Instruction: ix}, nil
}

// buildLiquidity adds or removes liquidity. The amount is passed through in
// base units and the program only accepts side 0.
func (b *Builder) buildLiquidity(ctx context.Context, d *deriver, c *Context, remove bool) (*Result, error) {
	pool, err := b.amm(ctx, d, c)
	if err != nil {
		return nil, err
	}

	inAmount, err := scaleAmount(c.Amount, 0)
	if err != nil {
		return nil, err
	}

	lpMint, err := d.lpMint(pool.address)
	if err != nil {
		return nil, err
	}
	userLPTokenAccount, err := d.associated(c.User, lpMint, pool.baseMint.TokenProgram)
	if err != nil {
		return nil, err
	}
	programSol, err := d.programSol()
	if err != nil {
		return nil, err
	}

	accounts := &cook.UpdateLiquidityInstructionAccounts{
		User:               c.User,
		TokenMint:          pool.baseMint.Address,
		WSOLMint:           pool.quoteMint,
		LPMint:             lpMint,
		TempWSOL:           pool.tempWSOL,
		UserTokenAccount:   pool.userTokenAccount,
		UserLPTokenAccount: userLPTokenAccount,
		AMM:                pool.address,
		BaseAMMAccount:     pool.baseAMMAccount,
		QuoteAMMAccount:    pool.quoteAMMAccount,
		ProgramSol:         programSol,
		TokenProgram:       pool.baseMint.TokenProgram,
	}
	args := &cook.UpdateLiquidityInstructionArgs{
		Side:     0,
		InAmount: inAmount,
	}

	var ix solana.Instruction
	if remove {
		ix, err = cook.NewRemoveCookLiquidityInstruction(accounts, args)
	} else {
		ix, err = cook.NewUpdateCookLiquidityInstruction(accounts, args)
	}
	if err != nil {
		return nil, err
	}

	if ix.Accounts, err = b.appendTransferHook(ctx, ix.Accounts, pool.baseMint); err != nil {
		return nil, err
	}
	return &Result{Instruction: ix}, nil
}
