package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_HISTORY_LIMIT caps the history page loaded at room open
	HistoryLimit int `envconfig:"E2E_HISTORY_LIMIT" default:"50"`
	// E2E_LOG_LEVEL controls scenario logging verbosity
	LogLevel string `envconfig:"E2E_LOG_LEVEL" default:"INFO"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
