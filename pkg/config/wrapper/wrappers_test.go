package wrapper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letscook/cook-client/pkg/config"
	"github.com/letscook/cook-client/pkg/config/memory"
)

func TestValueConfig_Lifecycle(t *testing.T) {
	ctx := context.Background()
	mock := memory.NewConfig(nil)
	wrapper := NewStringConfig(mock, "default")

	// Return the default value when no override is set
	val, err := wrapper.GetSafe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default", val)

	// The overriden value is returned when set
	mock.Set("override")
	assert.Equal(t, "override", wrapper.Get(ctx))

	// The last observed config value is returned on error
	mock.Fail(nil)
	val, err = wrapper.GetSafe(ctx)
	require.Error(t, err)
	assert.Equal(t, "override", val)

	// The default value is returned when the override no longer has a value
	mock.Recover()
	mock.Clear()
	assert.Equal(t, "default", wrapper.Get(ctx))

	// Unsupported source types keep the last value
	mock.Set(42.0)
	val, err = wrapper.GetSafe(ctx)
	assert.Equal(t, ErrUnsuportedConversion, err)
	assert.Equal(t, "default", val)

	wrapper.Shutdown()
	_, err = mock.Get(ctx)
	assert.Equal(t, config.ErrShutdown, err)
}

func TestTypedConfigs(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct {
		name     string
		raw      interface{}
		get      func(config.Config) interface{}
		expected interface{}
	}{
		{
			name:     "bool env",
			raw:      []byte("true"),
			get:      func(c config.Config) interface{} { return NewBoolConfig(c, false).Get(ctx) },
			expected: true,
		},
		{
			name:     "bool native",
			raw:      true,
			get:      func(c config.Config) interface{} { return NewBoolConfig(c, false).Get(ctx) },
			expected: true,
		},
		{
			name:     "duration env",
			raw:      []byte("1500ms"),
			get:      func(c config.Config) interface{} { return NewDurationConfig(c, time.Second).Get(ctx) },
			expected: 1500 * time.Millisecond,
		},
		{
			name:     "duration env seconds",
			raw:      []byte("3"),
			get:      func(c config.Config) interface{} { return NewDurationConfig(c, time.Second).Get(ctx) },
			expected: 3 * time.Second,
		},
		{
			name:     "duration native",
			raw:      2 * time.Minute,
			get:      func(c config.Config) interface{} { return NewDurationConfig(c, time.Second).Get(ctx) },
			expected: 2 * time.Minute,
		},
		{
			name:     "float env",
			raw:      []byte("2.5"),
			get:      func(c config.Config) interface{} { return NewFloat64Config(c, 1).Get(ctx) },
			expected: 2.5,
		},
		{
			name:     "uint64 env",
			raw:      []byte("1000"),
			get:      func(c config.Config) interface{} { return NewUint64Config(c, 1).Get(ctx) },
			expected: uint64(1000),
		},
		{
			name:     "uint64 native int",
			raw:      7,
			get:      func(c config.Config) interface{} { return NewUint64Config(c, 1).Get(ctx) },
			expected: uint64(7),
		},
		{
			name:     "uint64 invalid keeps default",
			raw:      []byte("-1"),
			get:      func(c config.Config) interface{} { return NewUint64Config(c, 1).Get(ctx) },
			expected: uint64(1),
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.get(memory.NewConfig(tc.raw)))
		})
	}
}
