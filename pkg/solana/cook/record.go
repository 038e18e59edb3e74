package cook

import (
	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/solana/binary"
)

type RecordKind uint8

const (
	RecordKindUnknown RecordKind = iota
	RecordKindCollection
	RecordKindLaunch
	RecordKindJoin
	RecordKindListing
	RecordKindAMM
	RecordKindMarketplaceSummary
	RecordKindListingEntry
	RecordKindAssignment
)

func (k RecordKind) String() string {
	switch k {
	case RecordKindCollection:
		return "collection"
	case RecordKindLaunch:
		return "launch"
	case RecordKindJoin:
		return "join"
	case RecordKindListing:
		return "listing"
	case RecordKindAMM:
		return "amm"
	case RecordKindMarketplaceSummary:
		return "marketplace_summary"
	case RecordKindListingEntry:
		return "listing_entry"
	case RecordKindAssignment:
		return "assignment"
	}
	return "unknown"
}

// ParseRecordKind is the inverse of RecordKind.String.
func ParseRecordKind(s string) (RecordKind, error) {
	for k := RecordKindCollection; k <= RecordKindAssignment; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return RecordKindUnknown, errors.Errorf("unknown record kind %q", s)
}

// Record is an on-chain account layout.
//
// Unmarshal accepts trailing bytes after the layout, since accounts are often
// allocated larger than their content.
type Record interface {
	Kind() RecordKind
	Unmarshal(data []byte) error
	Marshal() ([]byte, error)
}

type codecRecord interface {
	Record
	decode(d *binary.Decoder)
	encode(e *binary.Encoder)
}

// NewRecord returns an empty record of kind.
func NewRecord(kind RecordKind) (Record, error) {
	r, err := newCodecRecord(kind)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func newCodecRecord(kind RecordKind) (codecRecord, error) {
	switch kind {
	case RecordKindCollection:
		return &CollectionRecord{}, nil
	case RecordKindLaunch:
		return &LaunchRecord{}, nil
	case RecordKindJoin:
		return &JoinRecord{}, nil
	case RecordKindListing:
		return &ListingRecord{}, nil
	case RecordKindAMM:
		return &AMMRecord{}, nil
	case RecordKindMarketplaceSummary:
		return &MarketplaceSummaryRecord{}, nil
	case RecordKindListingEntry:
		return &ListingEntryRecord{}, nil
	case RecordKindAssignment:
		return &AssignmentRecord{}, nil
	}
	return nil, errors.Errorf("unknown record kind %d", kind)
}

// DecodeRecord decodes data as kind and reports the number of bytes the record
// occupied. Empty data is an absent record and yields a nil record without
// error.
func DecodeRecord(kind RecordKind, data []byte) (Record, int, error) {
	r, err := newCodecRecord(kind)
	if err != nil {
		return nil, 0, err
	}
	if len(data) == 0 {
		return nil, 0, nil
	}

	n, err := unmarshalRecord(r, data)
	if err != nil {
		return nil, 0, err
	}
	return r, n, nil
}

func unmarshalRecord(r codecRecord, data []byte) (int, error) {
	d := binary.NewDecoder(data)
	r.decode(d)
	if err := d.Err(); err != nil {
		return 0, errors.Wrapf(err, "invalid %s record", r.Kind())
	}
	return d.Offset(), nil
}

func marshalRecord(r codecRecord, sizeHint int) ([]byte, error) {
	e := binary.NewEncoder(sizeHint)
	r.encode(e)

	b, err := e.Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s record", r.Kind())
	}
	return b, nil
}
