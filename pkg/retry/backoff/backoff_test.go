package backoff

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConstant(t *testing.T) {
	s := Constant(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, s(1))
	assert.Equal(t, 250*time.Millisecond, s(50))
}

func TestExponential(t *testing.T) {
	s := Exponential(2*time.Second, 3)
	assert.Equal(t, []time.Duration{2 * time.Second, 6 * time.Second, 18 * time.Second}, []time.Duration{s(1), s(2), s(3)})

	fast := BinaryExponential(250 * time.Millisecond)
	assert.Equal(t, time.Second, fast(3))
	assert.Equal(t, time.Duration(math.MaxInt64), fast(200))
}
