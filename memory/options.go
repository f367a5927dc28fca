package memory

import (
	"go.uber.org/zap"
)

// ProviderOption is a generic type for an optional parameter of a Provider according to the functional paradigm.
type ProviderOption func(*providerOptions)

// providerOptions bundles the optional parameters shared by the Provider implementations of this package.
type providerOptions struct {
	// logger receives allocation diagnostics.
	logger *zap.Logger
}

// newProviderOptions creates providerOptions with the default values applied.
func newProviderOptions(optionalOptions []ProviderOption) *providerOptions {
	result := &providerOptions{
		logger: zap.NewNop(),
	}

	for _, optionalOption := range optionalOptions {
		optionalOption(result)
	}

	return result
}

// WithLogger sets the logger that receives allocation diagnostics (debug level for alloc/release events, warnings
// for suspicious teardown states). The default is a no-op logger.
func WithLogger(logger *zap.Logger) ProviderOption {
	return func(options *providerOptions) {
		options.logger = logger
	}
}
