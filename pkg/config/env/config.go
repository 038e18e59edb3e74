// Package env sources launchpad settings from environment variables. Values
// are read once, when the config is created.
package env

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/letscook/cook-client/pkg/config"
	"github.com/letscook/cook-client/pkg/config/wrapper"
)

type variable struct {
	value string
	set   bool
}

// NewConfig returns a config for the variable named key, upper cased. An
// unset or empty variable reads as config.ErrNoValue.
func NewConfig(key string) config.Config {
	value, set := os.LookupEnv(strings.ToUpper(key))
	return &variable{value: value, set: set && value != ""}
}

func (v *variable) Get(context.Context) (interface{}, error) {
	if !v.set {
		return nil, config.ErrNoValue
	}
	return []byte(v.value), nil
}

func (v *variable) Shutdown() {}

func NewDurationConfig(key string, defaultValue time.Duration) config.Duration {
	return wrapper.NewDurationConfig(NewConfig(key), defaultValue)
}

func NewFloat64Config(key string, defaultValue float64) config.Float64 {
	return wrapper.NewFloat64Config(NewConfig(key), defaultValue)
}

func NewStringConfig(key string, defaultValue string) config.String {
	return wrapper.NewStringConfig(NewConfig(key), defaultValue)
}

func NewUint64Config(key string, defaultValue uint64) config.Uint64 {
	return wrapper.NewUint64Config(NewConfig(key), defaultValue)
}
