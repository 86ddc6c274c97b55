package wrapper

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/docchat/docchat-server/pkg/config"
	"github.com/docchat/docchat-server/pkg/config/memory"
)

func TestUint64Config(t *testing.T) {
	ctx := context.Background()

	c := NewUint64Config(config.NoopConfig, 42)
	assert.EqualValues(t, 42, c.Get(ctx))

	c = NewUint64Config(memory.NewConfig(uint64(7)), 42)
	assert.EqualValues(t, 7, c.Get(ctx))

	c = NewUint64Config(memory.NewConfig("12"), 42)
	assert.EqualValues(t, 12, c.Get(ctx))

	// Conversion failures fall back to the last known value
	c = NewUint64Config(memory.NewConfig("not a number"), 42)
	val, err := c.GetSafe(ctx)
	assert.Equal(t, ErrUnsupportedConversion, err)
	assert.EqualValues(t, 42, val)
}

func TestDurationConfig(t *testing.T) {
	ctx := context.Background()

	c := NewDurationConfig(config.NoopConfig, time.Second)
	assert.Equal(t, time.Second, c.Get(ctx))

	c = NewDurationConfig(memory.NewConfig("250ms"), time.Second)
	assert.Equal(t, 250*time.Millisecond, c.Get(ctx))

	c = NewDurationConfig(memory.NewConfig(2*time.Second), time.Second)
	assert.Equal(t, 2*time.Second, c.Get(ctx))
}
