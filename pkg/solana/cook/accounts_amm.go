package cook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana/binary"
)

type AMMRecord struct {
	AccountType      uint8
	Pool             ed25519.PublicKey
	Provider         uint8
	BaseMint         ed25519.PublicKey
	QuoteMint        ed25519.PublicKey
	LPMint           ed25519.PublicKey
	BaseKey          ed25519.PublicKey
	QuoteKey         ed25519.PublicKey
	Fee              uint16
	NumDataAccounts  uint32
	LastPrice        [4]byte
	LPAmount         uint64
	BorrowCost       uint16
	LeverageFraction uint16
	AMMBaseAmount    uint64
	AMMQuoteAmount   uint64
	ShortBaseAmount  uint64
	LongQuoteAmount  uint64
	StartTime        uint64
	Plugins          []AMMPlugin
}

func (*AMMRecord) Kind() RecordKind {
	return RecordKindAMM
}

func (obj *AMMRecord) Unmarshal(data []byte) error {
	_, err := unmarshalRecord(obj, data)
	return err
}

func (obj *AMMRecord) Marshal() ([]byte, error) {
	return marshalRecord(obj, 256)
}

func (obj *AMMRecord) decode(d *binary.Decoder) {
	obj.AccountType = d.Uint8()
	obj.Pool = d.Key()
	obj.Provider = d.Uint8()
	obj.BaseMint = d.Key()
	obj.QuoteMint = d.Key()
	obj.LPMint = d.Key()
	obj.BaseKey = d.Key()
	obj.QuoteKey = d.Key()
	obj.Fee = d.Uint16()
	obj.NumDataAccounts = d.Uint32()
	copy(obj.LastPrice[:], d.Fixed(len(obj.LastPrice)))
	obj.LPAmount = d.Uint64()
	obj.BorrowCost = d.Uint16()
	obj.LeverageFraction = d.Uint16()
	obj.AMMBaseAmount = d.Uint64()
	obj.AMMQuoteAmount = d.Uint64()
	obj.ShortBaseAmount = d.Uint64()
	obj.LongQuoteAmount = d.Uint64()
	obj.StartTime = d.Uint64()
	obj.Plugins = decodeAMMPlugins(d)
}

func (obj *AMMRecord) encode(e *binary.Encoder) {
	e.Uint8(obj.AccountType)
	e.Key(obj.Pool)
	e.Uint8(obj.Provider)
	e.Key(obj.BaseMint)
	e.Key(obj.QuoteMint)
	e.Key(obj.LPMint)
	e.Key(obj.BaseKey)
	e.Key(obj.QuoteKey)
	e.Uint16(obj.Fee)
	e.Uint32(obj.NumDataAccounts)
	e.Fixed(obj.LastPrice[:], len(obj.LastPrice))
	e.Uint64(obj.LPAmount)
	e.Uint16(obj.BorrowCost)
	e.Uint16(obj.LeverageFraction)
	e.Uint64(obj.AMMBaseAmount)
	e.Uint64(obj.AMMQuoteAmount)
	e.Uint64(obj.ShortBaseAmount)
	e.Uint64(obj.LongQuoteAmount)
	e.Uint64(obj.StartTime)
	encodeAMMPlugins(e, obj.Plugins)
}
