package network

import (
	"context"
	"crypto/ed25519"
	"strings"

	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/config"
	"github.com/letscook/cook-client/pkg/config/env"
	"github.com/letscook/cook-client/pkg/config/memory"
	"github.com/letscook/cook-client/pkg/config/wrapper"
	"github.com/letscook/cook-client/pkg/solana"
)

const (
	envConfigPrefix = "LAUNCHPAD_NETWORK_"

	NameConfigEnvName = envConfigPrefix + "NAME"
	defaultName       = string(ClusterMainnet)

	CookFeesConfigEnvName = envConfigPrefix + "COOK_FEES"
	defaultCookFees       = ""

	NativeTokenNameConfigEnvName = envConfigPrefix + "NATIVE_TOKEN_NAME"
	defaultNativeTokenName       = ""

	NativeTokenIconConfigEnvName = envConfigPrefix + "NATIVE_TOKEN_ICON"
	defaultNativeTokenIcon       = ""
)

// Cluster is the network the launchpad is deployed on.
type Cluster string

const (
	ClusterMainnet Cluster = "mainnet"
	ClusterDevnet  Cluster = "devnet"
	ClusterEclipse Cluster = "eclipse"
)

func ParseCluster(s string) (Cluster, error) {
	switch c := Cluster(strings.ToLower(strings.TrimSpace(s))); c {
	case ClusterMainnet, ClusterDevnet, ClusterEclipse:
		return c, nil
	}
	return "", errors.Errorf("unknown cluster %q", s)
}

// NativeToken is the gas token of the cluster, which wrapped SOL mints stand
// in for.
func (c Cluster) NativeToken() (name, icon string) {
	if c == ClusterEclipse {
		return "ETH", "https://raw.githubusercontent.com/ethereum/ethereum-org-website/dev/public/images/eth-diamond-black.png"
	}
	return "SOL", "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/So11111111111111111111111111111111111111112/logo.png"
}

// Settings are the per cluster values instruction builders and mint resolution
// need.
type Settings struct {
	Cluster         Cluster
	CookFees        ed25519.PublicKey
	NativeTokenName string
	NativeTokenIcon string
}

type conf struct {
	name            config.String
	cookFees        config.String
	nativeTokenName config.String
	nativeTokenIcon config.String
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			name:            env.NewStringConfig(NameConfigEnvName, defaultName),
			cookFees:        env.NewStringConfig(CookFeesConfigEnvName, defaultCookFees),
			nativeTokenName: env.NewStringConfig(NativeTokenNameConfigEnvName, defaultNativeTokenName),
			nativeTokenIcon: env.NewStringConfig(NativeTokenIconConfigEnvName, defaultNativeTokenIcon),
		}
	}
}

// WithStaticConfigs returns fixed configuration, for tools and tests.
func WithStaticConfigs(cluster Cluster, cookFees ed25519.PublicKey) ConfigProvider {
	fees := ""
	if cookFees != nil {
		fees = solana.PublicKeyString(cookFees)
	}

	return func() *conf {
		return &conf{
			name:            wrapper.NewStringConfig(memory.NewConfig(string(cluster)), string(cluster)),
			cookFees:        wrapper.NewStringConfig(memory.NewConfig(fees), fees),
			nativeTokenName: wrapper.NewStringConfig(memory.NewConfig(defaultNativeTokenName), defaultNativeTokenName),
			nativeTokenIcon: wrapper.NewStringConfig(memory.NewConfig(defaultNativeTokenIcon), defaultNativeTokenIcon),
		}
	}
}

// LoadSettings resolves the configured settings. The cook fees account is
// required.
func LoadSettings(ctx context.Context, configProvider ConfigProvider) (*Settings, error) {
	c := configProvider()

	cluster, err := ParseCluster(c.name.Get(ctx))
	if err != nil {
		return nil, err
	}

	rawFees := c.cookFees.Get(ctx)
	if rawFees == "" {
		return nil, errors.Errorf("%s is not set", CookFeesConfigEnvName)
	}
	cookFees, err := solana.PublicKeyFromString(rawFees)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", CookFeesConfigEnvName)
	}

	name, icon := cluster.NativeToken()
	if v := c.nativeTokenName.Get(ctx); v != "" {
		name = v
	}
	if v := c.nativeTokenIcon.Get(ctx); v != "" {
		icon = v
	}

	return &Settings{
		Cluster:         cluster,
		CookFees:        cookFees,
		NativeTokenName: name,
		NativeTokenIcon: icon,
	}, nil
}
