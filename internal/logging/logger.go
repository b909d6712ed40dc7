// Package logging builds the operator log. The terminal belongs to the
// presentation, so log output always goes to a file.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New creates a logger writing to path. debug selects the development
// encoder and level.
func New(path string, debug bool) (*zap.Logger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}
	return logger, nil
}
