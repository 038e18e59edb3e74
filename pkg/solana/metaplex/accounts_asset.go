package metaplex

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/solana"
)

// Layout of the leading bytes of an MPL Core AssetV1 account.
//
// Reference: https://github.com/metaplex-foundation/mpl-core/blob/main/programs/mpl-core/src/state/asset.rs
const (
	AssetV1Key uint8 = 1

	assetKeyOffset                = 0
	assetOwnerOffset              = 1
	assetUpdateAuthorityOffset    = 33
	assetUpdateAuthorityKeyOffset = 34

	assetHeaderSize = assetUpdateAuthorityKeyOffset + 32
)

type UpdateAuthorityType uint8

const (
	UpdateAuthorityNone UpdateAuthorityType = iota
	UpdateAuthorityAddress
	UpdateAuthorityCollection
)

// AssetHeader is the owner and update authority of an asset.
type AssetHeader struct {
	Owner               ed25519.PublicKey
	UpdateAuthorityType UpdateAuthorityType
	UpdateAuthority     ed25519.PublicKey
}

func UnmarshalAssetHeader(data []byte) (*AssetHeader, error) {
	if len(data) < assetUpdateAuthorityOffset+1 {
		return nil, errors.Errorf("asset account too short: %d bytes", len(data))
	}
	if data[assetKeyOffset] != AssetV1Key {
		return nil, errors.Errorf("account key %d is not an asset", data[assetKeyOffset])
	}

	header := &AssetHeader{
		Owner:               append(ed25519.PublicKey{}, data[assetOwnerOffset:assetUpdateAuthorityOffset]...),
		UpdateAuthorityType: UpdateAuthorityType(data[assetUpdateAuthorityOffset]),
	}
	if header.UpdateAuthorityType != UpdateAuthorityNone {
		if len(data) < assetHeaderSize {
			return nil, errors.Errorf("asset account too short: %d bytes", len(data))
		}
		header.UpdateAuthority = append(ed25519.PublicKey{}, data[assetUpdateAuthorityKeyOffset:assetHeaderSize]...)
	}
	return header, nil
}

// CollectionAssetFilters select the assets of collection owned by owner in an
// MPL Core program scan.
func CollectionAssetFilters(owner, collection ed25519.PublicKey) []solana.ProgramAccountsFilter {
	authority := make([]byte, 0, 1+len(collection))
	authority = append(authority, byte(UpdateAuthorityCollection))
	authority = append(authority, collection...)

	return []solana.ProgramAccountsFilter{
		solana.MemcmpAt(assetKeyOffset, []byte{AssetV1Key}),
		solana.MemcmpAt(assetOwnerOffset, owner),
		solana.MemcmpAt(assetUpdateAuthorityOffset, authority),
	}
}
