package app

import (
	"os"

	"academy-service/internal/config"
	"academy-service/internal/logx"
)

// NewLogger builds the process JSON logger at the configured level.
func NewLogger(cfg *config.Config) (logx.Logger, error) {
	level, err := logx.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return logx.NewJSON(os.Stdout, level), nil
}
