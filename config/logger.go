package config

import (
	"go.uber.org/zap"
)

// NewLogger builds the process logger. Development mode gets the console encoder.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg != nil && cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
