// Package env provides environment variable backed configs.
package env

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/docchat/docchat-server/pkg/config"
	"github.com/docchat/docchat-server/pkg/config/wrapper"
)

type conf struct {
	val string
}

// NewConfig returns a config sourced from the environment variable named key.
func NewConfig(key string) config.Config {
	return &conf{
		val: os.Getenv(strings.ToUpper(key)),
	}
}

// Get implements Config.Get
func (c *conf) Get(ctx context.Context) (interface{}, error) {
	if len(c.val) == 0 {
		return nil, config.ErrNoValue
	}

	return []byte(c.val), nil
}

// Shutdown implements Config.Shutdown
func (c *conf) Shutdown() {
}

// NewDurationConfig creates an env-based time.Duration config
func NewDurationConfig(key string, defaultValue time.Duration) config.Duration {
	return wrapper.NewDurationConfig(NewConfig(key), defaultValue)
}

// NewUint64Config creates an env-based uint64 config
func NewUint64Config(key string, defaultValue uint64) config.Uint64 {
	return wrapper.NewUint64Config(NewConfig(key), defaultValue)
}
