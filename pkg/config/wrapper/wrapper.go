// Package wrapper provides typed utility wrappers over raw configs.
package wrapper

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/docchat/docchat-server/pkg/config"
)

// ErrUnsupportedConversion indicates the wrapper does not implement conversion
// from the source type.
var ErrUnsupportedConversion = errors.New("config: wrapper conversion from source type not implemented")

// DurationConfig is a utility wrapper for a time.Duration config
type DurationConfig struct {
	override     config.Config
	defaultValue time.Duration

	stateMu   sync.RWMutex
	lastValue time.Duration
}

// NewDurationConfig returns a new time.Duration config utility wrapper
func NewDurationConfig(override config.Config, defaultValue time.Duration) config.Duration {
	return &DurationConfig{
		override:     override,
		defaultValue: defaultValue,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A
// best-effort attempt is made to return the last known value on error.
func (c *DurationConfig) GetSafe(ctx context.Context) (time.Duration, error) {
	override, err := c.override.Get(ctx)
	lastValue := c.load()
	if err == config.ErrNoValue {
		return c.store(c.defaultValue), nil
	} else if err != nil {
		return lastValue, err
	}

	switch override := override.(type) {
	case time.Duration:
		return c.store(override), nil
	case string:
		parsed, err := time.ParseDuration(override)
		if err != nil {
			return lastValue, ErrUnsupportedConversion
		}
		return c.store(parsed), nil
	case []byte:
		parsed, err := time.ParseDuration(string(override))
		if err != nil {
			return lastValue, ErrUnsupportedConversion
		}
		return c.store(parsed), nil
	default:
		return lastValue, ErrUnsupportedConversion
	}
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *DurationConfig) Get(ctx context.Context) time.Duration {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *DurationConfig) Shutdown() {
	c.override.Shutdown()
}

func (c *DurationConfig) load() time.Duration {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.lastValue
}

func (c *DurationConfig) store(v time.Duration) time.Duration {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.lastValue = v
	return v
}

// Uint64Config is a utility wrapper for a uint64 config
type Uint64Config struct {
	override     config.Config
	defaultValue uint64

	stateMu   sync.RWMutex
	lastValue uint64
}

// NewUint64Config returns a new uint64 config utility wrapper
func NewUint64Config(override config.Config, defaultValue uint64) config.Uint64 {
	return &Uint64Config{
		override:     override,
		defaultValue: defaultValue,
		lastValue:    defaultValue,
	}
}

// GetSafe gets a config value and propagates any errors that arise. A
// best-effort attempt is made to return the last known value on error.
func (c *Uint64Config) GetSafe(ctx context.Context) (uint64, error) {
	override, err := c.override.Get(ctx)
	lastValue := c.load()
	if err == config.ErrNoValue {
		return c.store(c.defaultValue), nil
	} else if err != nil {
		return lastValue, err
	}

	switch override := override.(type) {
	case uint64:
		return c.store(override), nil
	case uint:
		return c.store(uint64(override)), nil
	case int:
		if override < 0 {
			return lastValue, ErrUnsupportedConversion
		}
		return c.store(uint64(override)), nil
	case string:
		parsed, err := strconv.ParseUint(override, 10, 64)
		if err != nil {
			return lastValue, ErrUnsupportedConversion
		}
		return c.store(parsed), nil
	case []byte:
		parsed, err := strconv.ParseUint(string(override), 10, 64)
		if err != nil {
			return lastValue, ErrUnsupportedConversion
		}
		return c.store(parsed), nil
	default:
		return lastValue, ErrUnsupportedConversion
	}
}

// Get is a wrapper for GetSafe that ignores the returned error
func (c *Uint64Config) Get(ctx context.Context) uint64 {
	val, _ := c.GetSafe(ctx)
	return val
}

// Shutdown signals the config to stop all underlying resources
func (c *Uint64Config) Shutdown() {
	c.override.Shutdown()
}

func (c *Uint64Config) load() uint64 {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.lastValue
}

func (c *Uint64Config) store(v uint64) uint64 {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.lastValue = v
	return v
}
