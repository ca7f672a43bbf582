// Package logging builds the zap logger shared by the server and the sim.
package logging

import (
	"fmt"

	"github.com/impactgrid/impactgrid/internal/config"
	"go.uber.org/zap"
)

// New builds a production logger, or a development logger with console
// output when cfg.Development is set.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	lvl, err := cfg.ZapLevel()
	if err != nil {
		return nil, err
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
