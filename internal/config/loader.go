package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies OPTVAL_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated;
// the caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known OPTVAL_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators redirect a run without touching the TOML file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Market.Underlying, "OPTVAL_UNDERLYING")
	setStr(&cfg.Market.QuoteFile, "OPTVAL_QUOTE_FILE")
	setStr(&cfg.Output.Dir, "OPTVAL_OUTPUT_DIR")
	setStr(&cfg.Log.Level, "OPTVAL_LOG_LEVEL")
}

// setStr only mutates the target when the environment variable is present
// and non-empty.
func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
