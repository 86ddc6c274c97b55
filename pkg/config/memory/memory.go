// Package memory provides fixed in-memory configs, primarily for tests.
package memory

import (
	"context"

	"github.com/docchat/docchat-server/pkg/config"
)

type conf struct {
	val interface{}
}

// NewConfig returns a config that always yields the provided value.
func NewConfig(val interface{}) config.Config {
	return &conf{
		val: val,
	}
}

// Get implements Config.Get
func (c *conf) Get(ctx context.Context) (interface{}, error) {
	if c.val == nil {
		return nil, config.ErrNoValue
	}

	return c.val, nil
}

// Shutdown implements Config.Shutdown
func (c *conf) Shutdown() {
}
