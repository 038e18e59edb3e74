package state

import (
	"time"

	"github.com/letscook/cook-client/pkg/config"
	"github.com/letscook/cook-client/pkg/config/env"
	"github.com/letscook/cook-client/pkg/config/memory"
	"github.com/letscook/cook-client/pkg/config/wrapper"
)

const (
	envConfigPrefix = "LAUNCHPAD_STATE_"

	ListingRefreshIntervalConfigEnvName = envConfigPrefix + "LISTING_REFRESH_INTERVAL"
	defaultListingRefreshInterval       = time.Second

	WatchLockStripesConfigEnvName = envConfigPrefix + "WATCH_LOCK_STRIPES"
	defaultWatchLockStripes       = 64
)

type conf struct {
	listingRefreshInterval config.Duration
	watchLockStripes       config.Uint64
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			listingRefreshInterval: env.NewDurationConfig(ListingRefreshIntervalConfigEnvName, defaultListingRefreshInterval),
			watchLockStripes:       env.NewUint64Config(WatchLockStripesConfigEnvName, defaultWatchLockStripes),
		}
	}
}

type testOverrides struct {
	listingRefreshInterval time.Duration
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			listingRefreshInterval: wrapper.NewDurationConfig(memory.NewConfig(overrides.listingRefreshInterval), defaultListingRefreshInterval),
			watchLockStripes:       wrapper.NewUint64Config(memory.NewConfig(uint64(4)), defaultWatchLockStripes),
		}
	}
}
