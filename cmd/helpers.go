package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"

	"github.com/Mohsinsiddi/moon/internal/config"
	"github.com/Mohsinsiddi/moon/internal/hellomoon"
	"github.com/Mohsinsiddi/moon/internal/keystore"
	"github.com/Mohsinsiddi/moon/internal/ui"
)

// openKeystore is replaced in tests.
var openKeystore = func(dir string) keystore.Store {
	return keystore.DefaultKeystore(dir)
}

// newClient builds the API client from flags and config.
func newClient() (*hellomoon.Client, error) {
	d, err := callTimeout()
	if err != nil {
		return nil, err
	}
	u := cfg.BaseURL
	if baseURL != "" {
		u = baseURL
	}
	if u == "" {
		u = hellomoon.DefaultBaseURL
	}
	return hellomoon.NewClient(
		hellomoon.WithBaseURL(u),
		hellomoon.WithTimeout(d),
		hellomoon.WithLogger(logger),
	), nil
}

func callTimeout() (time.Duration, error) {
	if timeout == "" {
		return cfg.TimeoutDuration()
	}
	d, err := str2duration.ParseDuration(timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid --timeout %q", timeout)
	}
	return d, nil
}

// apiKey resolves the key; the keychain is only opened when config points into it.
func apiKey() (string, error) {
	var ks config.SecretReader
	if cfg.KeyRef != "" {
		ks = openKeystore(cfg.Dir())
	}
	return cfg.ResolveAPIKey(apiKeyFlag, ks)
}

func wantJSON() bool {
	return jsonOut || cfg.Output == config.OutputJSON
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// errLine renders err for the terminal, with a hint for the common failures.
func errLine(err error) string {
	msg := ui.Err(err.Error())
	switch {
	case strings.Contains(err.Error(), "HTTP 401"), strings.Contains(err.Error(), "HTTP 403"):
		msg += "\n" + ui.Meta("  check the API key: moon config list")
	case strings.Contains(err.Error(), "HTTP 429"):
		msg += "\n" + ui.Meta("  rate limited: retry later or lower --pages")
	}
	return msg
}

// maskKey hides all but the last four characters of a secret.
func maskKey(k string) string {
	if k == "" {
		return ""
	}
	if len(k) <= 4 {
		return strings.Repeat("•", len(k))
	}
	return strings.Repeat("•", 8) + k[len(k)-4:]
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
