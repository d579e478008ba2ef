package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/xhit/go-str2duration/v2"

	"github.com/Mohsinsiddi/moon/internal/hellomoon"
)

const (
	defaultOutput = OutputTable

	configFile = "config.json"
)

// ErrNoAPIKey is returned by ResolveAPIKey when no source holds a key.
var ErrNoAPIKey = errors.New("no API key: pass --api-key, set " + EnvAPIKey + " or run `moon config set-key`")

// Fields lists the keys accepted by Set, in display order.
var Fields = []string{"base_url", "timeout", "default_limit", "output"}

// DefaultDir returns $MOON_CONFIG_DIR, or ~/.moon when it is unset.
func DefaultDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home dir: %w", err)
	}
	return filepath.Join(home, ".moon"), nil
}

// Load reads config from dir (or creates defaults). dir defaults to DefaultDir().
func Load(dir string) (*Config, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.configDir = dir

	if _, err := cfg.TimeoutDuration(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv loads KEY=value pairs from the given .env files (".env" when none
// are named) without overriding variables already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// TimeoutDuration parses Timeout. An empty value means DefaultTimeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := str2duration.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", c.Timeout)
	}
	return d, nil
}

// Set updates one of Fields from its string form.
func (c *Config) Set(field, value string) error {
	switch field {
	case "base_url":
		if value == "" {
			value = hellomoon.DefaultBaseURL
		}
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("base_url must start with http:// or https://")
		}
		c.BaseURL = strings.TrimRight(value, "/")
	case "timeout":
		prev := c.Timeout
		c.Timeout = value
		if _, err := c.TimeoutDuration(); err != nil {
			c.Timeout = prev
			return err
		}
	case "default_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("default_limit must be a non-negative integer, got %q", value)
		}
		c.DefaultLimit = n
	case "output":
		if value != OutputTable && value != OutputJSON {
			return fmt.Errorf("output must be %q or %q, got %q", OutputTable, OutputJSON, value)
		}
		c.Output = value
	default:
		return fmt.Errorf("unknown config field %q (valid: %s)", field, strings.Join(Fields, ", "))
	}
	return nil
}

// Get returns one of Fields in string form.
func (c *Config) Get(field string) (string, error) {
	switch field {
	case "base_url":
		return c.BaseURL, nil
	case "timeout":
		return c.Timeout, nil
	case "default_limit":
		return strconv.Itoa(c.DefaultLimit), nil
	case "output":
		return c.Output, nil
	}
	return "", fmt.Errorf("unknown config field %q", field)
}

// SecretReader is the part of the keystore ResolveAPIKey needs.
type SecretReader interface {
	Retrieve(ref string) (string, error)
}

// ResolveAPIKey picks the API key from, in order: flag, $HELLOMOON_API_KEY,
// $api_keys, the keystore entry named by KeyRef, and the plain-text APIKey.
// A keystore error is returned only when no later source has a key.
func (c *Config) ResolveAPIKey(flag string, ks SecretReader) (string, error) {
	if flag != "" {
		return flag, nil
	}
	for _, env := range []string{EnvAPIKey, EnvLegacyAPIKey} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v, nil
		}
	}
	var ksErr error
	if c.KeyRef != "" && ks != nil {
		key, err := ks.Retrieve(c.KeyRef)
		if err == nil && key != "" {
			return key, nil
		}
		ksErr = err
	}
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	if ksErr != nil {
		return "", fmt.Errorf("reading API key from keystore: %w", ksErr)
	}
	return "", ErrNoAPIKey
}

// --- helpers ---

func defaults(dir string) *Config {
	return &Config{
		BaseURL:   hellomoon.DefaultBaseURL,
		Timeout:   str2duration.String(DefaultTimeout),
		Output:    defaultOutput,
		configDir: dir,
	}
}
