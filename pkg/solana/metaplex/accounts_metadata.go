package metaplex

import (
	"crypto/ed25519"
	"strings"

	gsolana "github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
	"github.com/pkg/errors"
)

const (
	MaxNameLength   = 32
	MaxSymbolLength = 10
	MaxURILength    = 200
)

// Metadata is the leading part of a token metadata account. Fields after
// is_mutable were added over time and are absent from older accounts, so they
// are not decoded.
//
// Reference: https://github.com/metaplex-foundation/mpl-token-metadata/blob/main/programs/token-metadata/program/src/state/metadata.rs
type Metadata struct {
	Key                 uint8
	UpdateAuthority     gsolana.PublicKey
	Mint                gsolana.PublicKey
	Data                Data
	PrimarySaleHappened bool
	IsMutable           bool
}

type Data struct {
	Name                 string
	Symbol               string
	Uri                  string
	SellerFeeBasisPoints uint16
	Creators             *[]Creator
}

type Creator struct {
	Address  gsolana.PublicKey
	Verified bool
	Share    uint8
}

func UnmarshalMetadata(data []byte) (*Metadata, error) {
	var metadata Metadata
	if err := borsh.Deserialize(&metadata, data); err != nil {
		return nil, errors.Wrap(err, "invalid metadata account")
	}

	// The program pads strings to their max length with null bytes.
	metadata.Data.Name = trimPadding(metadata.Data.Name)
	metadata.Data.Symbol = trimPadding(metadata.Data.Symbol)
	metadata.Data.Uri = trimPadding(metadata.Data.Uri)

	return &metadata, nil
}

func (m *Metadata) MintKey() ed25519.PublicKey {
	return ed25519.PublicKey(m.Mint[:])
}

func trimPadding(s string) string {
	return strings.TrimRight(s, "\x00")
}
