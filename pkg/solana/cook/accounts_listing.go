package cook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana/binary"
)

// ListingRecord is the token listing a launch points at.
type ListingRecord struct {
	AccountType   uint8
	ID            uint64
	Mint          ed25519.PublicKey
	Name          string
	Symbol        string
	Decimals      uint8
	Icon          string
	MetaURL       string
	Banner        string
	Description   string
	PositiveVotes uint32
	NegativeVotes uint32
	Socials       []string
}

func (*ListingRecord) Kind() RecordKind {
	return RecordKindListing
}

func (obj *ListingRecord) Unmarshal(data []byte) error {
	_, err := unmarshalRecord(obj, data)
	return err
}

func (obj *ListingRecord) Marshal() ([]byte, error) {
	return marshalRecord(obj, 256)
}

func (obj *ListingRecord) decode(d *binary.Decoder) {
	obj.AccountType = d.Uint8()
	obj.ID = d.Uint64()
	obj.Mint = d.Key()
	obj.Name = d.Text()
	obj.Symbol = d.Text()
	obj.Decimals = d.Uint8()
	obj.Icon = d.Text()
	obj.MetaURL = d.Text()
	obj.Banner = d.Text()
	obj.Description = d.Text()
	obj.PositiveVotes = d.Uint32()
	obj.NegativeVotes = d.Uint32()
	obj.Socials = d.Texts()
}

func (obj *ListingRecord) encode(e *binary.Encoder) {
	e.Uint8(obj.AccountType)
	e.Uint64(obj.ID)
	e.Key(obj.Mint)
	e.Text(obj.Name)
	e.Text(obj.Symbol)
	e.Uint8(obj.Decimals)
	e.Text(obj.Icon)
	e.Text(obj.MetaURL)
	e.Text(obj.Banner)
	e.Text(obj.Description)
	e.Uint32(obj.PositiveVotes)
	e.Uint32(obj.NegativeVotes)
	e.Texts(obj.Socials)
}
