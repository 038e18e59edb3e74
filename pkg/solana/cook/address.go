package cook

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/letscook/cook-client/pkg/solana"
)

var (
	CollectionPrefix  = []byte("Collection")
	LaunchPrefix      = []byte("Launchs")
	JoinerPrefix      = []byte("Joiner")
	AssignmentPrefix  = []byte("assignment")
	UserPrefix        = []byte("User")
	TempPrefix        = []byte("Temp")
	ListingPrefix     = []byte("Listing")
	SummaryPrefix     = []byte("Summary")
	CookAMMPrefix     = []byte("CookAMM")
	LPPrefix          = []byte("LP")
	TradeToEarnPrefix = []byte("TradeToEarn")
	LaunchDatePrefix  = []byte("LaunchDate")
	TimeSeriesPrefix  = []byte("TimeSeries")
)

type GetCollectionAddressArgs struct {
	PageName string
}

func GetCollectionAddress(args *GetCollectionAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		[]byte(args.PageName),
		CollectionPrefix,
	)
}

type GetLaunchAddressArgs struct {
	PageName string
}

func GetLaunchAddress(args *GetLaunchAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		[]byte(args.PageName),
		LaunchPrefix,
	)
}

type GetJoinAddressArgs struct {
	User     ed25519.PublicKey
	PageName string
}

func GetJoinAddress(args *GetJoinAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		args.User,
		[]byte(args.PageName),
		JoinerPrefix,
	)
}

type GetAssignmentAddressArgs struct {
	User           ed25519.PublicKey
	CollectionMint ed25519.PublicKey
}

func GetAssignmentAddress(args *GetAssignmentAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		args.User,
		args.CollectionMint,
		AssignmentPrefix,
	)
}

type GetUserDataAddressArgs struct {
	User ed25519.PublicKey
}

func GetUserDataAddress(args *GetUserDataAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		args.User,
		UserPrefix,
	)
}

// GetProgramSolAddress returns the program's SOL vault.
func GetProgramSolAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		solana.SeedUint32(SolAccountSeed),
	)
}

// GetProgramDataAddress returns the program's global data account.
func GetProgramDataAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		solana.SeedUint32(DataAccountSeed),
	)
}

type GetTempWSOLAddressArgs struct {
	User ed25519.PublicKey
}

func GetTempWSOLAddress(args *GetTempWSOLAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		args.User,
		TempPrefix,
	)
}

type GetListingEntryAddressArgs struct {
	Asset ed25519.PublicKey
}

// GetListingEntryAddress returns the listings program account for an asset.
func GetListingEntryAddress(args *GetListingEntryAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		LISTINGS_PROGRAM_ID,
		args.Asset,
		ListingPrefix,
	)
}

type GetMarketplaceSummaryAddressArgs struct {
	CollectionMint ed25519.PublicKey
}

func GetMarketplaceSummaryAddress(args *GetMarketplaceSummaryAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		LISTINGS_PROGRAM_ID,
		args.CollectionMint,
		SummaryPrefix,
	)
}

type GetAMMAddressArgs struct {
	BaseMint  ed25519.PublicKey
	QuoteMint ed25519.PublicKey
}

// GetAMMAddress derives the pool for a mint pair. The pair is ordered by the
// base58 encoding of each mint, so the order of the arguments is irrelevant.
func GetAMMAddress(args *GetAMMAddressArgs) (ed25519.PublicKey, uint8, error) {
	first, second := args.BaseMint, args.QuoteMint
	if base58.Encode(second) < base58.Encode(first) {
		first, second = second, first
	}

	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		first,
		second,
		CookAMMPrefix,
	)
}

type GetLPMintAddressArgs struct {
	AMM ed25519.PublicKey
}

func GetLPMintAddress(args *GetLPMintAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		args.AMM,
		LPPrefix,
	)
}

type GetTradeToEarnAddressArgs struct {
	AMM ed25519.PublicKey
}

func GetTradeToEarnAddress(args *GetTradeToEarnAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		args.AMM,
		TradeToEarnPrefix,
	)
}

type GetLaunchDateAddressArgs struct {
	AMM ed25519.PublicKey
	Day uint32
}

func GetLaunchDateAddress(args *GetLaunchDateAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		args.AMM,
		solana.SeedUint32(args.Day),
		LaunchDatePrefix,
	)
}

type GetUserDateAddressArgs struct {
	AMM  ed25519.PublicKey
	User ed25519.PublicKey
	Day  uint32
}

func GetUserDateAddress(args *GetUserDateAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		args.AMM,
		args.User,
		solana.SeedUint32(args.Day),
	)
}

type GetTimeSeriesAddressArgs struct {
	AMM   ed25519.PublicKey
	Index uint32
}

func GetTimeSeriesAddress(args *GetTimeSeriesAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		args.AMM,
		solana.SeedUint32(args.Index),
		TimeSeriesPrefix,
	)
}
