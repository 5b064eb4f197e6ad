package core

import (
	"strings"

	"go.uber.org/zap"
)

// DebugEnvVar enables development logging in LoggerFromEnv when set to
// "1", "true" or "debug".
const DebugEnvVar = "FAUX_DEBUG"

// LoggerFromEnv returns a development logger when DebugEnvVar is enabled in
// the environment read through getenv, and a no-op logger otherwise.
//
// Example:
//
//	fake := faux.New("Calculator", faux.WithLogger(faux.LoggerFromEnv(os.Getenv)))
func LoggerFromEnv(getenv func(string) string) *zap.Logger {
	switch strings.ToLower(strings.TrimSpace(getenv(DebugEnvVar))) {
	case "1", "true", "debug":
		logger, err := zap.NewDevelopment()
		if err != nil {
			return zap.NewNop()
		}

		return logger
	default:
		return zap.NewNop()
	}
}

// Option configures a store.
type Option func(*config)

// WithLogger sets the logger stores write dispatch decisions to.
// The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithReporter routes unmet-expectation failures to t instead of panicking.
func WithReporter(t TestReporter) Option {
	return func(c *config) {
		c.reporter = t
	}
}

type config struct {
	logger   *zap.Logger
	reporter TestReporter
}

func newConfig(opts []Option) config {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
