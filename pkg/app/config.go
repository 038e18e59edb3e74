package app

import (
	"time"

	"github.com/spf13/viper"
)

// BaseConfig is the configuration shared by launchpad tools.
type BaseConfig struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// LogFile, when set, sends logs to a size rotated file instead of stderr.
	LogFile           string `mapstructure:"log_file"`
	LogFileMaxSizeMB  int    `mapstructure:"log_file_max_size_mb"`
	LogFileMaxBackups int    `mapstructure:"log_file_max_backups"`

	AppName string `mapstructure:"app_name"`

	RPCEndpoint       string `mapstructure:"rpc_endpoint"`
	WebsocketEndpoint string `mapstructure:"websocket_endpoint"`

	Cluster  string `mapstructure:"cluster"`
	CookFees string `mapstructure:"cook_fees"`

	ShutdownGracePeriod time.Duration `mapstructure:"shutdown_grace_period"`

	// Metrics are only reported when a license key is configured.
	NewRelicLicenseKey string `mapstructure:"new_relic_license_key"`
}

var defaultConfig = BaseConfig{
	LogLevel:  "info",
	LogFormat: "text",

	LogFileMaxSizeMB:  100,
	LogFileMaxBackups: 3,

	AppName: "cookctl",

	Cluster: "mainnet",

	ShutdownGracePeriod: 5 * time.Second,
}

var envBindings = map[string]string{
	"log_level":            "LOG_LEVEL",
	"log_format":           "LOG_FORMAT",
	"log_file":             "LOG_FILE",
	"log_file_max_size_mb": "LOG_FILE_MAX_SIZE_MB",
	"log_file_max_backups": "LOG_FILE_MAX_BACKUPS",

	"app_name": "APP_NAME",

	"rpc_endpoint":       "RPC_ENDPOINT",
	"websocket_endpoint": "WEBSOCKET_ENDPOINT",

	"cluster":   "CLUSTER",
	"cook_fees": "COOK_FEES",

	"shutdown_grace_period": "SHUTDOWN_GRACE_PERIOD",

	"new_relic_license_key": "NEW_RELIC_LICENSE_KEY",
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	return v
}
