// Package wrapper turns untyped config sources into typed values with a
// default.
package wrapper

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/config"
)

// ErrUnsuportedConversion indicates the wrapper does not implement conversion from the source type
var ErrUnsuportedConversion = errors.New("config: wrapper conversion from source type not implemented")

// Converter parses a raw source value. Env sources produce []byte, in memory
// sources produce native values.
type Converter[T any] func(raw interface{}) (T, error)

type valueConfig[T any] struct {
	override     config.Config
	defaultValue T
	convert      Converter[T]

	stateMu   sync.RWMutex
	lastValue T
}

// NewValueConfig returns a typed config over override.
func NewValueConfig[T any](override config.Config, defaultValue T, convert Converter[T]) config.Value[T] {
	return &valueConfig[T]{
		override:     override,
		defaultValue: defaultValue,
		convert:      convert,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A best-effort
// attempt is made to return the last known value
func (c *valueConfig[T]) GetSafe(ctx context.Context) (T, error) {
	c.stateMu.RLock()
	lastValue := c.lastValue
	c.stateMu.RUnlock()

	raw, err := c.override.Get(ctx)
	if err == config.ErrNoValue {
		c.setLast(c.defaultValue)
		return c.defaultValue, nil
	} else if err != nil {
		return lastValue, err
	}

	value, err := c.convert(raw)
	if err != nil {
		return lastValue, err
	}

	c.setLast(value)
	return value, nil
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *valueConfig[T]) Get(ctx context.Context) T {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *valueConfig[T]) Shutdown() {
	c.override.Shutdown()
}

func (c *valueConfig[T]) setLast(v T) {
	c.stateMu.Lock()
	c.lastValue = v
	c.stateMu.Unlock()
}

func NewBoolConfig(override config.Config, defaultValue bool) config.Bool {
	return NewValueConfig(override, defaultValue, ParseBool)
}

func NewDurationConfig(override config.Config, defaultValue time.Duration) config.Duration {
	return NewValueConfig(override, defaultValue, ParseDuration)
}

func NewFloat64Config(override config.Config, defaultValue float64) config.Float64 {
	return NewValueConfig(override, defaultValue, ParseFloat64)
}

func NewStringConfig(override config.Config, defaultValue string) config.String {
	return NewValueConfig(override, defaultValue, ParseString)
}

func NewUint64Config(override config.Config, defaultValue uint64) config.Uint64 {
	return NewValueConfig(override, defaultValue, ParseUint64)
}

func ParseBool(raw interface{}) (bool, error) {
	switch v := raw.(type) {
	case []byte:
		return strconv.ParseBool(string(v))
	case bool:
		return v, nil
	}
	return false, ErrUnsuportedConversion
}

// ParseDuration accepts duration strings and, for compatibility with plain
// numeric env values, a count of seconds.
func ParseDuration(raw interface{}) (time.Duration, error) {
	switch v := raw.(type) {
	case []byte:
		if seconds, err := strconv.ParseUint(string(v), 10, 64); err == nil {
			return time.Duration(seconds) * time.Second, nil
		}
		return time.ParseDuration(string(v))
	case time.Duration:
		return v, nil
	}
	return 0, ErrUnsuportedConversion
}

func ParseFloat64(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case []byte:
		return strconv.ParseFloat(string(v), 64)
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, ErrUnsuportedConversion
}

func ParseString(raw interface{}) (string, error) {
	switch v := raw.(type) {
	case []byte:
		return string(v), nil
	case string:
		return v, nil
	}
	return "", ErrUnsuportedConversion
}

func ParseUint64(raw interface{}) (uint64, error) {
	switch v := raw.(type) {
	case []byte:
		return strconv.ParseUint(string(v), 10, 64)
	case uint64:
		return v, nil
	case uint:
		return uint64(v), nil
	case int:
		if v < 0 {
			return 0, errors.Errorf("negative value %d", v)
		}
		return uint64(v), nil
	}
	return 0, ErrUnsuportedConversion
}
