// Package memory provides a config whose value is held in process. Launchpad
// packages use it for static overrides and tests use it to drive wrappers.
package memory

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/letscook/cook-client/pkg/config"
)

// ErrInduced is returned by Get after Fail is called without an error.
var ErrInduced = errors.New("memory config: induced failure")

type Config struct {
	mu       sync.RWMutex
	value    interface{}
	failure  error
	shutdown bool
}

// NewConfig returns a config holding value. A nil value reads as
// config.ErrNoValue.
func NewConfig(value interface{}) *Config {
	return &Config{value: value}
}

func (c *Config) Get(_ context.Context) (interface{}, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch {
	case c.shutdown:
		return nil, config.ErrShutdown
	case c.failure != nil:
		return nil, c.failure
	case c.value == nil:
		return nil, config.ErrNoValue
	}
	return c.value, nil
}

func (c *Config) Shutdown() {
	c.mu.Lock()
	c.shutdown = true
	c.mu.Unlock()
}

// Set replaces the value. Passing nil is the same as Clear.
func (c *Config) Set(value interface{}) {
	c.mu.Lock()
	c.value = value
	c.mu.Unlock()
}

func (c *Config) Clear() {
	c.Set(nil)
}

// Fail makes Get return err until Recover is called. A nil err fails with
// ErrInduced.
func (c *Config) Fail(err error) {
	if err == nil {
		err = ErrInduced
	}
	c.mu.Lock()
	c.failure = err
	c.mu.Unlock()
}

func (c *Config) Recover() {
	c.mu.Lock()
	c.failure = nil
	c.mu.Unlock()
}
