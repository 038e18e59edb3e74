package cook

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letscook/cook-client/pkg/solana"
	"github.com/letscook/cook-client/pkg/solana/token"
)

func TestNewBuyNFTInstruction(t *testing.T) {
	accounts := &BuyNFTInstructionAccounts{
		User:           newKey(t),
		Collection:     newKey(t),
		ProgramSol:     newKey(t),
		Asset:          newKey(t),
		CollectionMint: newKey(t),
		Seller:         newKey(t),
		Listing:        newKey(t),
		Summary:        newKey(t),
	}

	ix, err := NewBuyNFTInstruction(accounts, &BuyNFTInstructionArgs{Index: 258})
	require.NoError(t, err)

	assert.Equal(t, PROGRAM_ID, ix.Program)
	assert.Equal(t, []byte{32, 0x02, 0x01, 0x00, 0x00}, ix.Data)
	require.Len(t, ix.Accounts, 11)

	assertSigner(t, ix.Accounts[0], accounts.User)
	assertWritable(t, ix.Accounts[5], accounts.Seller)
	assertReadonly(t, ix.Accounts[8], SYSTEM_PROGRAM_ID)
	assertReadonly(t, ix.Accounts[9], CORE_PROGRAM_ID)
	assertReadonly(t, ix.Accounts[10], LISTINGS_PROGRAM_ID)

	accounts.Summary = nil
	_, err = NewBuyNFTInstruction(accounts, &BuyNFTInstructionArgs{})
	assert.Error(t, err)
}

func TestNewListNFTInstruction(t *testing.T) {
	accounts := &ListNFTInstructionAccounts{
		User:           newKey(t),
		Collection:     newKey(t),
		ProgramSol:     newKey(t),
		Asset:          newKey(t),
		CollectionMint: newKey(t),
		Listing:        newKey(t),
		Summary:        newKey(t),
	}

	list, err := NewListNFTInstruction(accounts, &ListNFTInstructionArgs{Price: 1_000_000_000})
	require.NoError(t, err)
	assert.Equal(t, []byte{30, 0x00, 0xca, 0x9a, 0x3b, 0, 0, 0, 0}, list.Data)
	require.Len(t, list.Accounts, 10)
	assertSigner(t, list.Accounts[0], accounts.User)
	assertWritable(t, list.Accounts[6], accounts.Summary)

	unlist, err := NewUnlistNFTInstruction(accounts, &UnlistNFTInstructionArgs{Index: 4})
	require.NoError(t, err)
	assert.Equal(t, []byte{31, 4, 0, 0, 0}, unlist.Data)
	assert.Equal(t, list.Accounts, unlist.Accounts)
}

func TestNewClaimNFTInstruction(t *testing.T) {
	accounts := &ClaimNFTInstructionAccounts{
		User:                  newKey(t),
		UserData:              newKey(t),
		Assignment:            newKey(t),
		Collection:            newKey(t),
		ProgramSol:            newKey(t),
		TokenMint:             newKey(t),
		UserTokenAccount:      newKey(t),
		PdaTokenAccount:       newKey(t),
		CollectionMint:        newKey(t),
		CookFees:              newKey(t),
		TeamWallet:            newKey(t),
		TokenProgram:          token.Program2022Key,
		OraoRandom:            newKey(t),
		OraoTreasury:          newKey(t),
		OraoNetwork:           newKey(t),
		OraoProgram:           newKey(t),
		WhitelistMint:         PROGRAM_ID,
		WhitelistAccount:      PROGRAM_ID,
		WhitelistTokenProgram: PROGRAM_ID,
	}

	var seed [32]byte
	seed[0], seed[31] = 1, 2

	ix, err := NewClaimNFTInstruction(accounts, &ClaimNFTInstructionArgs{Seed: seed})
	require.NoError(t, err)

	require.Len(t, ix.Data, 33)
	assert.EqualValues(t, InstructionTypeClaimNFT, ix.Data[0])
	assert.Equal(t, seed[:], ix.Data[1:])

	require.Len(t, ix.Accounts, 20)
	assertSigner(t, ix.Accounts[0], accounts.User)
	assertReadonly(t, ix.Accounts[5], accounts.TokenMint)
	assertReadonly(t, ix.Accounts[11], SYSTEM_PROGRAM_ID)
	assertReadonly(t, ix.Accounts[12], token.Program2022Key)
	assertWritable(t, ix.Accounts[13], accounts.OraoRandom)
	assertReadonly(t, ix.Accounts[16], accounts.OraoProgram)
	assertWritable(t, ix.Accounts[17], PROGRAM_ID)
	assertReadonly(t, ix.Accounts[19], PROGRAM_ID)
}

func TestNewMintNFTInstructions(t *testing.T) {
	accounts := &MintNFTInstructionAccounts{
		User:             newKey(t),
		Assignment:       newKey(t),
		Collection:       newKey(t),
		ProgramSol:       newKey(t),
		Asset:            newKey(t),
		CollectionMint:   newKey(t),
		TeamWallet:       newKey(t),
		TokenMint:        newKey(t),
		PdaTokenAccount:  newKey(t),
		UserTokenAccount: newKey(t),
		TeamTokenAccount: newKey(t),
		RandomAddress:    newKey(t),
		TokenProgram:     token.ProgramKey,
	}

	mint, err := NewMintNFTInstruction(accounts)
	require.NoError(t, err)
	assert.Equal(t, []byte{15}, mint.Data)
	require.Len(t, mint.Accounts, 15)
	assertSigner(t, mint.Accounts[0], accounts.User)
	assertReadonly(t, mint.Accounts[12], CORE_PROGRAM_ID)
	assertReadonly(t, mint.Accounts[14], token.ProgramKey)

	random, err := NewMintRandomNFTInstruction(accounts)
	require.NoError(t, err)
	assert.Equal(t, []byte{18}, random.Data)
	assert.Equal(t, mint.Accounts, random.Accounts)
}

func TestNewWrapNFTInstruction(t *testing.T) {
	accounts := &WrapNFTInstructionAccounts{
		User:             newKey(t),
		UserData:         newKey(t),
		Collection:       newKey(t),
		ProgramSol:       newKey(t),
		TokenMint:        newKey(t),
		UserTokenAccount: newKey(t),
		PdaTokenAccount:  newKey(t),
		TeamTokenAccount: newKey(t),
		Asset:            newKey(t),
		CollectionMint:   newKey(t),
		TokenProgram:     token.ProgramKey,
	}

	ix, err := NewWrapNFTInstruction(accounts)
	require.NoError(t, err)
	assert.Equal(t, []byte{16}, ix.Data)
	require.Len(t, ix.Accounts, 14)
	assertSigner(t, ix.Accounts[0], accounts.User)
	assertReadonly(t, ix.Accounts[11], token.AssociatedTokenAccountProgramKey)
	assertReadonly(t, ix.Accounts[13], CORE_PROGRAM_ID)
}

func TestNewPlaceMarketOrderInstruction(t *testing.T) {
	accounts := &PlaceMarketOrderInstructionAccounts{
		User:             newKey(t),
		UserData:         newKey(t),
		UserTokenAccount: newKey(t),
		TempWSOL:         newKey(t),
		TokenMint:        newKey(t),
		WSOLMint:         WRAPPED_SOL_MINT,
		AMM:              newKey(t),
		BaseAMMAccount:   newKey(t),
		QuoteAMMAccount:  newKey(t),
		TradeToEarn:      newKey(t),
		LaunchDate:       newKey(t),
		UserDate:         newKey(t),
		PriceData:        newKey(t),
		TokenProgram:     token.Program2022Key,
		CookFees:         newKey(t),
	}

	ix, err := NewPlaceMarketOrderInstruction(accounts, &PlaceMarketOrderInstructionArgs{
		Side:     OrderSideSell,
		InAmount: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, []byte{10, 1, 5, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, ix.Data)
	assert.Len(t, ix.Data, 1+PlaceMarketOrderInstructionArgsSize)

	require.Len(t, ix.Accounts, 18)
	assertSigner(t, ix.Accounts[0], accounts.User)
	assertReadonly(t, ix.Accounts[13], token.ProgramKey)
	assertReadonly(t, ix.Accounts[14], token.Program2022Key)
	assertWritable(t, ix.Accounts[17], accounts.CookFees)
}

func TestNewLiquidityInstructions(t *testing.T) {
	accounts := &UpdateLiquidityInstructionAccounts{
		User:               newKey(t),
		TokenMint:          newKey(t),
		WSOLMint:           WRAPPED_SOL_MINT,
		LPMint:             newKey(t),
		TempWSOL:           newKey(t),
		UserTokenAccount:   newKey(t),
		UserLPTokenAccount: newKey(t),
		AMM:                newKey(t),
		BaseAMMAccount:     newKey(t),
		QuoteAMMAccount:    newKey(t),
		ProgramSol:         newKey(t),
		TokenProgram:       token.ProgramKey,
	}
	args := &UpdateLiquidityInstructionArgs{Side: 0, InAmount: 256}

	add, err := NewUpdateCookLiquidityInstruction(accounts, args)
	require.NoError(t, err)
	assert.Equal(t, []byte{22, 0, 0, 1, 0, 0, 0, 0, 0, 0}, add.Data)
	require.Len(t, add.Accounts, 15)
	assertSigner(t, add.Accounts[0], accounts.User)
	assertReadonly(t, add.Accounts[14], SYSTEM_PROGRAM_ID)

	remove, err := NewRemoveCookLiquidityInstruction(accounts, args)
	require.NoError(t, err)
	assert.EqualValues(t, InstructionTypeRemoveCookLiquidity, remove.Data[0])
	assert.Equal(t, add.Data[1:], remove.Data[1:])
	assert.Equal(t, add.Accounts, remove.Accounts)
}

func TestInstructionType_String(t *testing.T) {
	assert.Equal(t, "buy_nft", InstructionTypeBuyNFT.String())
	assert.Equal(t, "unknown", InstructionType(99).String())
}

func assertSigner(t *testing.T, meta solana.AccountMeta, key ed25519.PublicKey) {
	assert.True(t, meta.Equal(solana.NewAccountMeta(key, true)), "expected writable signer %s", meta)
}

func assertWritable(t *testing.T, meta solana.AccountMeta, key ed25519.PublicKey) {
	assert.True(t, meta.Equal(solana.NewAccountMeta(key, false)), "expected writable %s", meta)
}

func assertReadonly(t *testing.T, meta solana.AccountMeta, key ed25519.PublicKey) {
	assert.True(t, meta.Equal(solana.NewReadonlyAccountMeta(key, false)), "expected readonly %s", meta)
}
