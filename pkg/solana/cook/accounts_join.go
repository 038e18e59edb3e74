package cook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana/binary"
)

// JoinRecord tracks a user's tickets in a launch.
type JoinRecord struct {
	AccountType       uint8
	JoinerKey         ed25519.PublicKey
	PageName          string
	NumTickets        uint16
	NumClaimedTickets uint16
	NumWinningTickets uint16
	TicketStatus      uint8
	RandomAddress     ed25519.PublicKey
	LastSlot          uint64
}

func (*JoinRecord) Kind() RecordKind {
	return RecordKindJoin
}

func (obj *JoinRecord) Unmarshal(data []byte) error {
	_, err := unmarshalRecord(obj, data)
	return err
}

func (obj *JoinRecord) Marshal() ([]byte, error) {
	return marshalRecord(obj, 96)
}

func (obj *JoinRecord) decode(d *binary.Decoder) {
	obj.AccountType = d.Uint8()
	obj.JoinerKey = d.Key()
	obj.PageName = d.Text()
	obj.NumTickets = d.Uint16()
	obj.NumClaimedTickets = d.Uint16()
	obj.NumWinningTickets = d.Uint16()
	obj.TicketStatus = d.Uint8()
	obj.RandomAddress = d.Key()
	obj.LastSlot = d.Uint64()
}

func (obj *JoinRecord) encode(e *binary.Encoder) {
	e.Uint8(obj.AccountType)
	e.Key(obj.JoinerKey)
	e.Text(obj.PageName)
	e.Uint16(obj.NumTickets)
	e.Uint16(obj.NumClaimedTickets)
	e.Uint16(obj.NumWinningTickets)
	e.Uint8(obj.TicketStatus)
	e.Key(obj.RandomAddress)
	e.Uint64(obj.LastSlot)
}
