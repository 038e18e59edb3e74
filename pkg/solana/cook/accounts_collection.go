package cook

import (
	"crypto/ed25519"

	"github.com/letscook/cook-client/pkg/solana/binary"
)

type CollectionRecord struct {
	AccountType    uint8
	LaunchID       uint64
	CollectionMeta CollectionMeta
	Plugins        []CollectionPlugin

	CollectionName    string
	CollectionSymbol  string
	CollectionIconURL string
	CollectionMetaURL string

	TokenName       string
	TokenSymbol     string
	TokenIconURL    string
	TokenDecimals   uint8
	TokenExtensions uint8

	NFTIconURL string
	NFTMetaURL string
	NFTName    string
	NFTType    string

	Banner      string
	PageName    string
	Description string

	TotalSupply  uint32
	NumAvailable uint32
	SwapPrice    uint64
	SwapFee      uint16

	PositiveVotes uint32
	NegativeVotes uint32

	TotalMMBuyAmount  uint64
	TotalMMSellAmount uint64
	LastMMRewardDate  uint32

	Socials []string
	Flags   []byte
	Strings []string
	Keys    []ed25519.PublicKey
}

func (*CollectionRecord) Kind() RecordKind {
	return RecordKindCollection
}

func (obj *CollectionRecord) Unmarshal(data []byte) error {
	_, err := unmarshalRecord(obj, data)
	return err
}

func (obj *CollectionRecord) Marshal() ([]byte, error) {
	return marshalRecord(obj, 512)
}

func (obj *CollectionRecord) decode(d *binary.Decoder) {
	obj.AccountType = d.Uint8()
	obj.LaunchID = d.Uint64()
	obj.CollectionMeta = decodeCollectionMeta(d)
	obj.Plugins = decodeCollectionPlugins(d)

	obj.CollectionName = d.Text()
	obj.CollectionSymbol = d.Text()
	obj.CollectionIconURL = d.Text()
	obj.CollectionMetaURL = d.Text()

	obj.TokenName = d.Text()
	obj.TokenSymbol = d.Text()
	obj.TokenIconURL = d.Text()
	obj.TokenDecimals = d.Uint8()
	obj.TokenExtensions = d.Uint8()

	obj.NFTIconURL = d.Text()
	obj.NFTMetaURL = d.Text()
	obj.NFTName = d.Text()
	obj.NFTType = d.Text()

	obj.Banner = d.Text()
	obj.PageName = d.Text()
	obj.Description = d.Text()

	obj.TotalSupply = d.Uint32()
	obj.NumAvailable = d.Uint32()
	obj.SwapPrice = d.Uint64()
	obj.SwapFee = d.Uint16()

	obj.PositiveVotes = d.Uint32()
	obj.NegativeVotes = d.Uint32()

	obj.TotalMMBuyAmount = d.Uint64()
	obj.TotalMMSellAmount = d.Uint64()
	obj.LastMMRewardDate = d.Uint32()

	obj.Socials = d.Texts()
	obj.Flags = d.Bytes()
	obj.Strings = d.Texts()
	obj.Keys = d.Keys()
}

func (obj *CollectionRecord) encode(e *binary.Encoder) {
	e.Uint8(obj.AccountType)
	e.Uint64(obj.LaunchID)
	encodeCollectionMeta(e, obj.CollectionMeta)
	encodeCollectionPlugins(e, obj.Plugins)

	e.Text(obj.CollectionName)
	e.Text(obj.CollectionSymbol)
	e.Text(obj.CollectionIconURL)
	e.Text(obj.CollectionMetaURL)

	e.Text(obj.TokenName)
	e.Text(obj.TokenSymbol)
	e.Text(obj.TokenIconURL)
	e.Uint8(obj.TokenDecimals)
	e.Uint8(obj.TokenExtensions)

	e.Text(obj.NFTIconURL)
	e.Text(obj.NFTMetaURL)
	e.Text(obj.NFTName)
	e.Text(obj.NFTType)

	e.Text(obj.Banner)
	e.Text(obj.PageName)
	e.Text(obj.Description)

	e.Uint32(obj.TotalSupply)
	e.Uint32(obj.NumAvailable)
	e.Uint64(obj.SwapPrice)
	e.Uint16(obj.SwapFee)

	e.Uint32(obj.PositiveVotes)
	e.Uint32(obj.NegativeVotes)

	e.Uint64(obj.TotalMMBuyAmount)
	e.Uint64(obj.TotalMMSellAmount)
	e.Uint32(obj.LastMMRewardDate)

	e.Texts(obj.Socials)
	e.Bytes(obj.Flags)
	e.Texts(obj.Strings)
	e.Keys(obj.Keys)
}
