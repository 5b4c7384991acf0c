package utils

import "go.uber.org/zap"

// ServiceName is attached to every log entry as the "service" field.
const ServiceName = "insightexus"

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	// Debug selects the development encoder at debug level.
	Debug bool
	// Component is added as the "component" field when set.
	Component string
	// Quiet raises the production level to warn. CLI commands set it so their
	// output is not interleaved with index and content logs.
	Quiet bool
	// OutputPath overrides the default stderr sink.
	OutputPath string
}

// NewLogger returns a zap logger: JSON at info level in production, console at
// debug level when opts.Debug is set.
func NewLogger(opts LoggerOptions) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if opts.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else if opts.Quiet {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.InitialFields = map[string]interface{}{"service": ServiceName}
	if opts.Component != "" {
		cfg.InitialFields["component"] = opts.Component
	}
	if opts.OutputPath != "" {
		cfg.OutputPaths = []string{opts.OutputPath}
	}
	return cfg.Build()
}
