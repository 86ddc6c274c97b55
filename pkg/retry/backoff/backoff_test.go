package backoff

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConstant(t *testing.T) {
	s := Constant(100 * time.Millisecond)

	for i := uint(1); i < 10; i++ {
		assert.Equal(t, 100*time.Millisecond, s(i))
	}
}

func TestLinear(t *testing.T) {
	s := Linear(500 * time.Millisecond)

	assert.Equal(t, 500*time.Millisecond, s(1))
	assert.Equal(t, 1*time.Second, s(2))
	assert.Equal(t, 1*time.Second+500*time.Millisecond, s(3))
	assert.Equal(t, 2*time.Second, s(4))

	assert.EqualValues(t, math.MaxInt64, s(math.MaxUint32))
}

func TestExponential(t *testing.T) {
	s := Exponential(time.Second, 3)

	assert.Equal(t, 1*time.Second, s(1))
	assert.Equal(t, 3*time.Second, s(2))
	assert.Equal(t, 9*time.Second, s(3))
	assert.Equal(t, 27*time.Second, s(4))

	assert.EqualValues(t, math.MaxInt64, s(math.MaxUint16))
}

func TestBinaryExponential(t *testing.T) {
	s := BinaryExponential(time.Second)

	assert.Equal(t, 1*time.Second, s(1))
	assert.Equal(t, 2*time.Second, s(2))
	assert.Equal(t, 4*time.Second, s(3))
	assert.Equal(t, 8*time.Second, s(4))

	assert.EqualValues(t, math.MaxInt64, s(math.MaxUint16))
}
