package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_BADGER_FILEPATH keeps the store after the run; a temp dir is used when empty
	BadgerFilepath string `envconfig:"E2E_BADGER_FILEPATH"`
	// E2E_DEBUG_JSON dumps every record returned by a step as JSON
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
