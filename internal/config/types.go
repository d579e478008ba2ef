package config

// Config holds all moon configuration.
type Config struct {
	BaseURL      string `json:"base_url"`
	Timeout      string `json:"timeout"`       // str2duration syntax: "30s", "2m", "1d"
	DefaultLimit int    `json:"default_limit"` // 0 leaves the limit to the API
	Output       string `json:"output"`        // "table" | "json"

	// APIKey is the plain-text fallback for hosts without a usable keychain.
	APIKey string `json:"api_key,omitempty"`
	// KeyRef points at the API key in the keystore.
	KeyRef string `json:"key_ref,omitempty"`

	// internal: config dir path used for Save()
	configDir string
}

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)
