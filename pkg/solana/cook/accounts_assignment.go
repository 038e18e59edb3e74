package cook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana/binary"
)

const (
	AssignmentRecordSize = (1 + // account_type
		32 + // nft_address
		32 + // random_address
		4 + // nft_index
		1 + // status
		4) // num_interactions
)

// AssignmentRecord is created by a claim and consumed by the mint that
// follows it. RandomAddress is the randomness account the mint reads.
type AssignmentRecord struct {
	AccountType     uint8
	NFTAddress      ed25519.PublicKey
	RandomAddress   ed25519.PublicKey
	NFTIndex        uint32
	Status          uint8
	NumInteractions uint32
}

func (*AssignmentRecord) Kind() RecordKind {
	return RecordKindAssignment
}

func (obj *AssignmentRecord) Unmarshal(data []byte) error {
	_, err := unmarshalRecord(obj, data)
	return err
}

func (obj *AssignmentRecord) Marshal() ([]byte, error) {
	return marshalRecord(obj, AssignmentRecordSize)
}

func (obj *AssignmentRecord) decode(d *binary.Decoder) {
	obj.AccountType = d.Uint8()
	obj.NFTAddress = d.Key()
	obj.RandomAddress = d.Key()
	obj.NFTIndex = d.Uint32()
	obj.Status = d.Uint8()
	obj.NumInteractions = d.Uint32()
}

func (obj *AssignmentRecord) encode(e *binary.Encoder) {
	e.Uint8(obj.AccountType)
	e.Key(obj.NFTAddress)
	e.Key(obj.RandomAddress)
	e.Uint32(obj.NFTIndex)
	e.Uint8(obj.Status)
	e.Uint32(obj.NumInteractions)
}
