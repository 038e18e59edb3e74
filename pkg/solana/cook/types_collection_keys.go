package cook

import (
	"crypto/ed25519"

	"github.com/pkg/errors"
)

// CollectionKey indexes CollectionRecord.Keys.
type CollectionKey int

const (
	CollectionKeySeller CollectionKey = iota
	CollectionKeyTeamWallet
	CollectionKeyMintAddress
	CollectionKeyCollectionMint
)

func (k CollectionKey) String() string {
	switch k {
	case CollectionKeySeller:
		return "seller"
	case CollectionKeyTeamWallet:
		return "team_wallet"
	case CollectionKeyMintAddress:
		return "mint_address"
	case CollectionKeyCollectionMint:
		return "collection_mint"
	}
	return "unknown"
}

// Key returns the collection key at k.
func (c *CollectionRecord) Key(k CollectionKey) (ed25519.PublicKey, error) {
	if int(k) < 0 || int(k) >= len(c.Keys) {
		return nil, errors.Wrapf(ErrInvalidAccountData, "collection has %d keys, missing %s", len(c.Keys), k)
	}
	return c.Keys[k], nil
}
