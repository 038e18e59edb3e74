package cook

import (
	"crypto/ed25519"
	"time"

	"github.com/letscook/cook-client/pkg/solana/binary"
)

// Plugins are closed tagged unions. Each union has its own tag table, and a
// variant type may belong to more than one union (Whitelist is both a
// collection and a launch plugin).
type Plugin interface {
	Name() string
}

type CollectionPlugin interface {
	Plugin
	isCollectionPlugin()
}

type LaunchPlugin interface {
	Plugin
	isLaunchPlugin()
}

type AMMPlugin interface {
	Plugin
	isAMMPlugin()
}

const (
	collectionPluginTagAsymmetricSwapPrice uint8 = iota
	collectionPluginTagMintProbability
	collectionPluginTagWhitelist
	collectionPluginTagMintOnly
	collectionPluginTagMarketplace
)

const (
	launchPluginTagWhitelist uint8 = iota
)

const (
	ammPluginTagTradeToEarn uint8 = iota
	ammPluginTagLiquidityScaling
)

const (
	ListingEntrySize = (32 + // asset
		32 + // seller
		8) // price

	WhitelistPluginSize = (32 + // key
		8 + // amount
		8) // phase_end
)

type AsymmetricSwapPricePlugin struct {
	ReturnSwapPrice uint64
}

type MintProbabilityPlugin struct {
	MintProb uint16
}

type WhitelistPlugin struct {
	Key      ed25519.PublicKey
	Amount   uint64
	PhaseEnd uint64
}

// PhaseEndTime interprets PhaseEnd as unix milliseconds.
func (p WhitelistPlugin) PhaseEndTime() time.Time {
	return time.UnixMilli(int64(p.PhaseEnd))
}

type MintOnlyPlugin struct{}

type MarketplacePlugin struct {
	Listings []ListingEntry
}

// ListingEntry is a listing held inline by the marketplace plugin.
type ListingEntry struct {
	Asset  ed25519.PublicKey
	Seller ed25519.PublicKey
	Price  uint64
}

type TradeToEarnPlugin struct {
	TotalTokens     uint64
	FirstRewardDate uint32
	LastRewardDate  uint32
}

type LiquidityScalingPlugin struct {
	Scalar    uint16
	Threshold uint64
	Active    uint8
}

func (AsymmetricSwapPricePlugin) Name() string { return "AsymmetricSwapPrice" }
func (MintProbabilityPlugin) Name() string     { return "MintProbability" }
func (WhitelistPlugin) Name() string           { return "Whitelist" }
func (MintOnlyPlugin) Name() string            { return "MintOnly" }
func (MarketplacePlugin) Name() string         { return "Marketplace" }
func (TradeToEarnPlugin) Name() string         { return "TradeToEarn" }
func (LiquidityScalingPlugin) Name() string    { return "LiquidityScaling" }

func (AsymmetricSwapPricePlugin) isCollectionPlugin() {}
func (MintProbabilityPlugin) isCollectionPlugin()     {}
func (WhitelistPlugin) isCollectionPlugin()           {}
func (MintOnlyPlugin) isCollectionPlugin()            {}
func (MarketplacePlugin) isCollectionPlugin()         {}

func (WhitelistPlugin) isLaunchPlugin() {}

func (TradeToEarnPlugin) isAMMPlugin()      {}
func (LiquidityScalingPlugin) isAMMPlugin() {}

// UnmarshalCollectionPlugin decodes a single collection plugin and reports the
// number of bytes it occupied.
func UnmarshalCollectionPlugin(data []byte) (CollectionPlugin, int, error) {
	d := binary.NewDecoder(data)
	p := decodeCollectionPlugin(d)
	if err := d.Err(); err != nil {
		return nil, 0, err
	}
	return p, d.Offset(), nil
}

func decodeCollectionPlugin(d *binary.Decoder) CollectionPlugin {
	tag := d.Tag()
	if d.Err() != nil {
		return nil
	}

	switch tag {
	case collectionPluginTagAsymmetricSwapPrice:
		return AsymmetricSwapPricePlugin{ReturnSwapPrice: d.Uint64()}
	case collectionPluginTagMintProbability:
		return MintProbabilityPlugin{MintProb: d.Uint16()}
	case collectionPluginTagWhitelist:
		return decodeWhitelistPlugin(d)
	case collectionPluginTagMintOnly:
		return MintOnlyPlugin{}
	case collectionPluginTagMarketplace:
		n := d.SeqLen(ListingEntrySize)
		listings := make([]ListingEntry, 0, n)
		for i := 0; i < n && d.Err() == nil; i++ {
			listings = append(listings, ListingEntry{
				Asset:  d.Key(),
				Seller: d.Key(),
				Price:  d.Uint64(),
			})
		}
		return MarketplacePlugin{Listings: listings}
	}

	d.UnknownTag("collection plugin", tag)
	return nil
}

func decodeWhitelistPlugin(d *binary.Decoder) WhitelistPlugin {
	return WhitelistPlugin{
		Key:      d.Key(),
		Amount:   d.Uint64(),
		PhaseEnd: d.Uint64(),
	}
}

func encodeCollectionPlugin(e *binary.Encoder, p CollectionPlugin) {
	switch v := p.(type) {
	case AsymmetricSwapPricePlugin:
		e.Tag(collectionPluginTagAsymmetricSwapPrice)
		e.Uint64(v.ReturnSwapPrice)
	case MintProbabilityPlugin:
		e.Tag(collectionPluginTagMintProbability)
		e.Uint16(v.MintProb)
	case WhitelistPlugin:
		e.Tag(collectionPluginTagWhitelist)
		encodeWhitelistPlugin(e, v)
	case MintOnlyPlugin:
		e.Tag(collectionPluginTagMintOnly)
	case MarketplacePlugin:
		e.Tag(collectionPluginTagMarketplace)
		e.SeqLen(len(v.Listings))
		for _, listing := range v.Listings {
			e.Key(listing.Asset)
			e.Key(listing.Seller)
			e.Uint64(listing.Price)
		}
	default:
		e.UnknownVariant("collection plugin", p)
	}
}

func encodeWhitelistPlugin(e *binary.Encoder, p WhitelistPlugin) {
	e.Key(p.Key)
	e.Uint64(p.Amount)
	e.Uint64(p.PhaseEnd)
}

func decodeCollectionPlugins(d *binary.Decoder) []CollectionPlugin {
	n := d.SeqLen(1)
	plugins := make([]CollectionPlugin, 0, n)
	for i := 0; i < n && d.Err() == nil; i++ {
		plugins = append(plugins, decodeCollectionPlugin(d))
	}
	return plugins
}

func encodeCollectionPlugins(e *binary.Encoder, plugins []CollectionPlugin) {
	e.SeqLen(len(plugins))
	for _, p := range plugins {
		encodeCollectionPlugin(e, p)
	}
}

func decodeLaunchPlugin(d *binary.Decoder) LaunchPlugin {
	tag := d.Tag()
	if d.Err() != nil {
		return nil
	}

	switch tag {
	case launchPluginTagWhitelist:
		return decodeWhitelistPlugin(d)
	}

	d.UnknownTag("launch plugin", tag)
	return nil
}

func decodeLaunchPlugins(d *binary.Decoder) []LaunchPlugin {
	n := d.SeqLen(1)
	plugins := make([]LaunchPlugin, 0, n)
	for i := 0; i < n && d.Err() == nil; i++ {
		plugins = append(plugins, decodeLaunchPlugin(d))
	}
	return plugins
}

func encodeLaunchPlugins(e *binary.Encoder, plugins []LaunchPlugin) {
	e.SeqLen(len(plugins))
	for _, p := range plugins {
		switch v := p.(type) {
		case WhitelistPlugin:
			e.Tag(launchPluginTagWhitelist)
			encodeWhitelistPlugin(e, v)
		default:
			e.UnknownVariant("launch plugin", p)
		}
	}
}

func decodeAMMPlugin(d *binary.Decoder) AMMPlugin {
	tag := d.Tag()
	if d.Err() != nil {
		return nil
	}

	switch tag {
	case ammPluginTagTradeToEarn:
		return TradeToEarnPlugin{
			TotalTokens:     d.Uint64(),
			FirstRewardDate: d.Uint32(),
			LastRewardDate:  d.Uint32(),
		}
	case ammPluginTagLiquidityScaling:
		return LiquidityScalingPlugin{
			Scalar:    d.Uint16(),
			Threshold: d.Uint64(),
			Active:    d.Uint8(),
		}
	}

	d.UnknownTag("amm plugin", tag)
	return nil
}

func decodeAMMPlugins(d *binary.Decoder) []AMMPlugin {
	n := d.SeqLen(1)
	plugins := make([]AMMPlugin, 0, n)
	for i := 0; i < n && d.Err() == nil; i++ {
		plugins = append(plugins, decodeAMMPlugin(d))
	}
	return plugins
}

func encodeAMMPlugins(e *binary.Encoder, plugins []AMMPlugin) {
	e.SeqLen(len(plugins))
	for _, p := range plugins {
		switch v := p.(type) {
		case TradeToEarnPlugin:
			e.Tag(ammPluginTagTradeToEarn)
			e.Uint64(v.TotalTokens)
			e.Uint32(v.FirstRewardDate)
			e.Uint32(v.LastRewardDate)
		case LiquidityScalingPlugin:
			e.Tag(ammPluginTagLiquidityScaling)
			e.Uint16(v.Scalar)
			e.Uint64(v.Threshold)
			e.Uint8(v.Active)
		default:
			e.UnknownVariant("amm plugin", p)
		}
	}
}
