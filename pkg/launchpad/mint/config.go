package mint

import (
	"time"

	"github.com/letscook/cook-client/pkg/config"
	"github.com/letscook/cook-client/pkg/config/env"
	"github.com/letscook/cook-client/pkg/config/memory"
	"github.com/letscook/cook-client/pkg/config/wrapper"
)

const (
	envConfigPrefix = "LAUNCHPAD_MINT_"

	MetadataFetchTimeoutConfigEnvName = envConfigPrefix + "METADATA_FETCH_TIMEOUT"
	defaultMetadataFetchTimeout       = 3 * time.Second

	PlaceholderIconConfigEnvName = envConfigPrefix + "PLACEHOLDER_ICON"
	defaultPlaceholderIcon       = "https://snipboard.io/FdHf7J.jpg"

	MetadataCacheBudgetConfigEnvName = envConfigPrefix + "METADATA_CACHE_BUDGET"
	defaultMetadataCacheBudget       = 1000

	MetadataFetchRateConfigEnvName = envConfigPrefix + "METADATA_FETCH_RATE"
	defaultMetadataFetchRate       = 5.0
)

type conf struct {
	metadataFetchTimeout config.Duration
	placeholderIcon      config.String
	metadataCacheBudget  config.Uint64
	metadataFetchRate    config.Float64
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			metadataFetchTimeout: env.NewDurationConfig(MetadataFetchTimeoutConfigEnvName, defaultMetadataFetchTimeout),
			placeholderIcon:      env.NewStringConfig(PlaceholderIconConfigEnvName, defaultPlaceholderIcon),
			metadataCacheBudget:  env.NewUint64Config(MetadataCacheBudgetConfigEnvName, defaultMetadataCacheBudget),
			metadataFetchRate:    env.NewFloat64Config(MetadataFetchRateConfigEnvName, defaultMetadataFetchRate),
		}
	}
}

type testOverrides struct {
	metadataFetchTimeout time.Duration
	metadataCacheBudget  uint64
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			metadataFetchTimeout: wrapper.NewDurationConfig(memory.NewConfig(overrides.metadataFetchTimeout), overrides.metadataFetchTimeout),
			placeholderIcon:      wrapper.NewStringConfig(memory.NewConfig(defaultPlaceholderIcon), defaultPlaceholderIcon),
			metadataCacheBudget:  wrapper.NewUint64Config(memory.NewConfig(overrides.metadataCacheBudget), overrides.metadataCacheBudget),
			metadataFetchRate:    wrapper.NewFloat64Config(memory.NewConfig(1000.0), 1000.0),
		}
	}
}
