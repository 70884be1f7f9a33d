// Package logger builds the zap logger shared across the engine.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New constructs a logger for the given mode. "prod"/"production"
// selects the JSON production config; anything else gets the
// development console config.
func New(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}
