package cook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana/binary"
)

const (
	MarketplaceSummaryRecordSize = 4 // num_listings

	ListingEntryRecordSize = (32 + // collection
		32 + // asset
		32 + // seller
		8) // price
)

// MarketplaceSummaryRecord is kept by the listings program per collection and
// changes whenever a listing is added or removed.
type MarketplaceSummaryRecord struct {
	NumListings uint32
}

func (*MarketplaceSummaryRecord) Kind() RecordKind {
	return RecordKindMarketplaceSummary
}

func (obj *MarketplaceSummaryRecord) Unmarshal(data []byte) error {
	_, err := unmarshalRecord(obj, data)
	return err
}

func (obj *MarketplaceSummaryRecord) Marshal() ([]byte, error) {
	return marshalRecord(obj, MarketplaceSummaryRecordSize)
}

func (obj *MarketplaceSummaryRecord) decode(d *binary.Decoder) {
	obj.NumListings = d.Uint32()
}

func (obj *MarketplaceSummaryRecord) encode(e *binary.Encoder) {
	e.Uint32(obj.NumListings)
}

// ListingEntryRecord is a single asset listing account owned by the listings
// program.
type ListingEntryRecord struct {
	Collection ed25519.PublicKey
	Asset      ed25519.PublicKey
	Seller     ed25519.PublicKey
	Price      uint64
}

func (*ListingEntryRecord) Kind() RecordKind {
	return RecordKindListingEntry
}

func (obj *ListingEntryRecord) Unmarshal(data []byte) error {
	_, err := unmarshalRecord(obj, data)
	return err
}

func (obj *ListingEntryRecord) Marshal() ([]byte, error) {
	return marshalRecord(obj, ListingEntryRecordSize)
}

func (obj *ListingEntryRecord) decode(d *binary.Decoder) {
	obj.Collection = d.Key()
	obj.Asset = d.Key()
	obj.Seller = d.Key()
	obj.Price = d.Uint64()
}

func (obj *ListingEntryRecord) encode(e *binary.Encoder) {
	e.Key(obj.Collection)
	e.Key(obj.Asset)
	e.Key(obj.Seller)
	e.Uint64(obj.Price)
}
