package cook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana/binary"
)

type LaunchRecord struct {
	AccountType     uint8
	LaunchMeta      LaunchMeta
	Plugins         []LaunchPlugin
	LastInteraction int64
	NumInteractions uint16

	PageName string
	Listing  ed25519.PublicKey

	TotalSupply      uint64
	NumMints         uint32
	TicketPrice      uint64
	MinimumLiquidity uint64
	LaunchDate       uint64
	EndDate          uint64

	TicketsSold    uint32
	TicketsClaimed uint32
	MintsWon       uint32

	TotalMMBuyAmount  uint64
	TotalMMSellAmount uint64
	LastMMRewardDate  uint32

	Distribution []byte
	Flags        []byte
	Strings      []string
	Keys         []ed25519.PublicKey
}

func (*LaunchRecord) Kind() RecordKind {
	return RecordKindLaunch
}

func (obj *LaunchRecord) Unmarshal(data []byte) error {
	_, err := unmarshalRecord(obj, data)
	return err
}

func (obj *LaunchRecord) Marshal() ([]byte, error) {
	return marshalRecord(obj, 256)
}

func (obj *LaunchRecord) decode(d *binary.Decoder) {
	obj.AccountType = d.Uint8()
	obj.LaunchMeta = decodeLaunchMeta(d)
	obj.Plugins = decodeLaunchPlugins(d)
	obj.LastInteraction = d.Int64()
	obj.NumInteractions = d.Uint16()

	obj.PageName = d.Text()
	obj.Listing = d.Key()

	obj.TotalSupply = d.Uint64()
	obj.NumMints = d.Uint32()
	obj.TicketPrice = d.Uint64()
	obj.MinimumLiquidity = d.Uint64()
	obj.LaunchDate = d.Uint64()
	obj.EndDate = d.Uint64()

	obj.TicketsSold = d.Uint32()
	obj.TicketsClaimed = d.Uint32()
	obj.MintsWon = d.Uint32()

	obj.TotalMMBuyAmount = d.Uint64()
	obj.TotalMMSellAmount = d.Uint64()
	obj.LastMMRewardDate = d.Uint32()

	obj.Distribution = d.Bytes()
	obj.Flags = d.Bytes()
	obj.Strings = d.Texts()
	obj.Keys = d.Keys()
}

func (obj *LaunchRecord) encode(e *binary.Encoder) {
	e.Uint8(obj.AccountType)
	encodeLaunchMeta(e, obj.LaunchMeta)
	encodeLaunchPlugins(e, obj.Plugins)
	e.Int64(obj.LastInteraction)
	e.Uint16(obj.NumInteractions)

	e.Text(obj.PageName)
	e.Key(obj.Listing)

	e.Uint64(obj.TotalSupply)
	e.Uint32(obj.NumMints)
	e.Uint64(obj.TicketPrice)
	e.Uint64(obj.MinimumLiquidity)
	e.Uint64(obj.LaunchDate)
	e.Uint64(obj.EndDate)

	e.Uint32(obj.TicketsSold)
	e.Uint32(obj.TicketsClaimed)
	e.Uint32(obj.MintsWon)

	e.Uint64(obj.TotalMMBuyAmount)
	e.Uint64(obj.TotalMMSellAmount)
	e.Uint32(obj.LastMMRewardDate)

	e.Bytes(obj.Distribution)
	e.Bytes(obj.Flags)
	e.Texts(obj.Strings)
	e.Keys(obj.Keys)
}
