package transaction

import (
	"crypto/ed25519"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/letscook/cook-client/pkg/solana/cook"
)

type ActionKind uint8

const (
	ActionUnknown ActionKind = iota
	ActionBuy
	ActionList
	ActionUnlist
	ActionClaim
	ActionMint
	ActionMintRandom
	ActionWrap
	ActionSwap
	ActionUpdateLiquidity
	ActionRemoveLiquidity
)

var actionNames = map[ActionKind]string{
	ActionBuy:             "buy",
	ActionList:            "list",
	ActionUnlist:          "unlist",
	ActionClaim:           "claim",
	ActionMint:            "mint",
	ActionMintRandom:      "mint_random",
	ActionWrap:            "wrap",
	ActionSwap:            "swap",
	ActionUpdateLiquidity: "update_liquidity",
	ActionRemoveLiquidity: "remove_liquidity",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return "unknown"
}

func ParseActionKind(s string) (ActionKind, error) {
	for kind, name := range actionNames {
		if strings.EqualFold(name, s) {
			return kind, nil
		}
	}
	return ActionUnknown, errors.Wrapf(ErrUnsupportedAction, "%q", s)
}

// Context is the input to a build. Which fields are required depends on the
// action:
//
//	buy:                Collection, Asset, Index when no listing account exists
//	list:               Collection, Asset, Price
//	unlist:             Collection, Asset, Index
//	claim:              Collection
//	mint, mint_random:  Collection
//	wrap:               Collection, optionally Asset
//	swap:               AMM or BaseMint and QuoteMint, Side, Amount
//	update_liquidity,
//	remove_liquidity:   AMM or BaseMint and QuoteMint, Amount
//
// Collection may be omitted in favour of PageName, in which case the record is
// fetched. A non empty PageName always overrides Collection.PageName.
type Context struct {
	User ed25519.PublicKey

	Collection *cook.CollectionRecord
	PageName   string

	AMM       *cook.AMMRecord
	BaseMint  ed25519.PublicKey
	QuoteMint ed25519.PublicKey

	Asset ed25519.PublicKey
	Index *uint32
	Price uint64

	Side   uint8
	Amount decimal.Decimal

	// NewAsset is the signer for the asset created by a mint. A fresh key is
	// generated when nil.
	NewAsset ed25519.PrivateKey

	// Seed seeds the randomness request of a claim. A fresh seed is generated
	// when nil.
	Seed *[32]byte
}

func (c *Context) pageName() (string, error) {
	page := c.PageName
	if page == "" && c.Collection != nil {
		page = c.Collection.PageName
	}
	if page == "" {
		return "", ErrInvalidPageName
	}
	return page, nil
}
