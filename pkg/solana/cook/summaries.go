package cook

import (
	"crypto/ed25519"
	"fmt"
	"time"
)

// CollectionPluginData flattens a collection's plugins. Absent plugins leave
// their fields at the zero value.
type CollectionPluginData struct {
	ReturnSwapPrice uint64

	MintProb    uint16
	Probability string

	WhitelistKey      ed25519.PublicKey
	WhitelistAmount   uint64
	WhitelistPhaseEnd time.Time

	MintOnly bool

	Listings []ListingEntry
}

func (d *CollectionPluginData) HasWhitelist() bool {
	return d.WhitelistKey != nil
}

// LaunchPluginData flattens a launch's plugins.
type LaunchPluginData struct {
	WhitelistKey      ed25519.PublicKey
	WhitelistAmount   uint64
	WhitelistPhaseEnd time.Time
}

func (d *LaunchPluginData) HasWhitelist() bool {
	return d.WhitelistKey != nil
}

// AMMPluginData flattens an AMM's plugins.
type AMMPluginData struct {
	TradeRewardTokens    uint64
	TradeRewardFirstDate uint32
	TradeRewardLastDate  uint32

	LiquidityScalar    uint16
	LiquidityThreshold uint64
	LiquidityActive    uint8
}

// TradeDay returns the trade to earn day index for now.
func (d *AMMPluginData) TradeDay(now time.Time) uint32 {
	return uint32(now.Unix()/SecondsPerDay) - d.TradeRewardFirstDate
}

// SummarizeCollectionPlugins folds plugins into a summary. When a variant
// occurs more than once the last occurrence wins, and the variant name is
// reported in duplicates.
func SummarizeCollectionPlugins(plugins []CollectionPlugin) (CollectionPluginData, []string) {
	var data CollectionPluginData
	seen := newDuplicateTracker()

	for _, p := range plugins {
		seen.add(p)

		switch v := p.(type) {
		case AsymmetricSwapPricePlugin:
			data.ReturnSwapPrice = v.ReturnSwapPrice
		case MintProbabilityPlugin:
			data.MintProb = v.MintProb
			data.Probability = fmt.Sprintf("%d%% mint chance", v.MintProb)
		case WhitelistPlugin:
			data.WhitelistKey = v.Key
			data.WhitelistAmount = v.Amount
			data.WhitelistPhaseEnd = v.PhaseEndTime()
		case MintOnlyPlugin:
			data.MintOnly = true
		case MarketplacePlugin:
			data.Listings = v.Listings
		}
	}

	return data, seen.duplicates
}

func SummarizeLaunchPlugins(plugins []LaunchPlugin) (LaunchPluginData, []string) {
	var data LaunchPluginData
	seen := newDuplicateTracker()

	for _, p := range plugins {
		seen.add(p)

		switch v := p.(type) {
		case WhitelistPlugin:
			data.WhitelistKey = v.Key
			data.WhitelistAmount = v.Amount
			data.WhitelistPhaseEnd = v.PhaseEndTime()
		}
	}

	return data, seen.duplicates
}

func SummarizeAMMPlugins(plugins []AMMPlugin) (AMMPluginData, []string) {
	var data AMMPluginData
	seen := newDuplicateTracker()

	for _, p := range plugins {
		seen.add(p)

		switch v := p.(type) {
		case TradeToEarnPlugin:
			data.TradeRewardTokens = v.TotalTokens
			data.TradeRewardFirstDate = v.FirstRewardDate
			data.TradeRewardLastDate = v.LastRewardDate
		case LiquidityScalingPlugin:
			data.LiquidityScalar = v.Scalar
			data.LiquidityThreshold = v.Threshold
			data.LiquidityActive = v.Active
		}
	}

	return data, seen.duplicates
}

type duplicateTracker struct {
	counts     map[string]int
	duplicates []string
}

func newDuplicateTracker() *duplicateTracker {
	return &duplicateTracker{counts: make(map[string]int)}
}

func (t *duplicateTracker) add(p Plugin) {
	if p == nil {
		return
	}

	name := p.Name()
	t.counts[name]++
	if t.counts[name] == 2 {
		t.duplicates = append(t.duplicates, name)
	}
}
