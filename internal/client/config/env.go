package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays Config with WASHSTORE_* environment variables.
// Unset variables leave the field untouched; malformed values panic.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
