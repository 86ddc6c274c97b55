package transaction

import (
	"time"

	"github.com/docchat/docchat-server/pkg/config"
	"github.com/docchat/docchat-server/pkg/config/env"
	"github.com/docchat/docchat-server/pkg/config/memory"
	"github.com/docchat/docchat-server/pkg/config/wrapper"
)

const (
	envConfigPrefix = "TRANSACTION_SERVICE_"

	VerificationMaxRetriesConfigEnvName = envConfigPrefix + "VERIFICATION_MAX_RETRIES"
	defaultVerificationMaxRetries       = 3

	VerificationRetryDelayConfigEnvName = envConfigPrefix + "VERIFICATION_RETRY_DELAY"
	defaultVerificationRetryDelay       = time.Second
)

type conf struct {
	verificationMaxRetries config.Uint64
	verificationRetryDelay config.Duration
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			verificationMaxRetries: env.NewUint64Config(VerificationMaxRetriesConfigEnvName, defaultVerificationMaxRetries),
			verificationRetryDelay: env.NewDurationConfig(VerificationRetryDelayConfigEnvName, defaultVerificationRetryDelay),
		}
	}
}

type testOverrides struct {
	verificationMaxRetries uint64
	verificationRetryDelay time.Duration
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			verificationMaxRetries: wrapper.NewUint64Config(memory.NewConfig(overrides.verificationMaxRetries), defaultVerificationMaxRetries),
			verificationRetryDelay: wrapper.NewDurationConfig(memory.NewConfig(overrides.verificationRetryDelay), defaultVerificationRetryDelay),
		}
	}
}
