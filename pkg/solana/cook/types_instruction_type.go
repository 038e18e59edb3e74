package cook

type InstructionType uint8

// Opcodes of the launchpad program. Only the instructions this client builds
// are listed.
const (
	InstructionTypePlaceMarketOrder    InstructionType = 10
	InstructionTypeClaimNFT            InstructionType = 14
	InstructionTypeMintNFT             InstructionType = 15
	InstructionTypeWrapNFT             InstructionType = 16
	InstructionTypeMintRandomNFT       InstructionType = 18
	InstructionTypeUpdateCookLiquidity InstructionType = 22
	InstructionTypeRemoveCookLiquidity InstructionType = 23
	InstructionTypeListNFT             InstructionType = 30
	InstructionTypeUnlistNFT           InstructionType = 31
	InstructionTypeBuyNFT              InstructionType = 32
)

func (t InstructionType) String() string {
	switch t {
	case InstructionTypePlaceMarketOrder:
		return "place_market_order"
	case InstructionTypeClaimNFT:
		return "claim_nft"
	case InstructionTypeMintNFT:
		return "mint_nft"
	case InstructionTypeWrapNFT:
		return "wrap_nft"
	case InstructionTypeMintRandomNFT:
		return "mint_random"
	case InstructionTypeUpdateCookLiquidity:
		return "update_cook_liquidity"
	case InstructionTypeRemoveCookLiquidity:
		return "remove_cook_liquidity"
	case InstructionTypeListNFT:
		return "list_nft"
	case InstructionTypeUnlistNFT:
		return "unlist_nft"
	case InstructionTypeBuyNFT:
		return "buy_nft"
	}
	return "unknown"
}
