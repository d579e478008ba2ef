package config

import "time"

// Environment variables read by moon.
const (
	EnvConfigDir = "MOON_CONFIG_DIR"
	EnvAPIKey    = "HELLOMOON_API_KEY"
	// EnvLegacyAPIKey is the variable name used by older .env files.
	EnvLegacyAPIKey = "api_keys"
)

// Timeout constants used across cmd and scripts.
const (
	DefaultTimeout  = 30 * time.Second
	SnapshotTimeout = 2 * time.Minute // collection snapshot fan-out, all calls together
)
