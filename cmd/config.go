package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/moon/internal/config"
	"github.com/Mohsinsiddi/moon/internal/ui"
)

const apiKeyName = "api-key"

var (
	setKeyPlain bool
	clearKeyYes bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		source := keySource()
		if wantJSON() {
			return writeJSON(out, map[string]any{
				"base_url":       cfg.BaseURL,
				"timeout":        cfg.Timeout,
				"default_limit":  cfg.DefaultLimit,
				"output":         cfg.Output,
				"api_key_source": source,
				"config_dir":     cfg.Dir(),
			})
		}
		limit := "API default"
		if cfg.DefaultLimit > 0 {
			limit = fmt.Sprintf("%d", cfg.DefaultLimit)
		}
		fmt.Fprintln(out, ui.KeyValueBlock("Current Configuration", [][2]string{
			{"base_url", cfg.BaseURL},
			{"timeout", cfg.Timeout},
			{"default_limit", limit},
			{"output", cfg.Output},
			{"api key", source},
		}))
		fmt.Fprintln(out, ui.Meta("Config directory: "+cfg.Dir()))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a config field: " + strings.Join(config.Fields, ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		v, _ := cfg.Get(args[0])
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(args[0]+" set to "+ui.Val(v)))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <field>",
	Short: "Print one config field",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [api-key]",
	Short: "Store the Hello Moon API key in the OS keychain",
	Long: `Store the Hello Moon API key in the OS keychain.

Without an argument the key is read from the terminal without echo (or from
stdin when it is not a terminal). --plain stores it in config.json instead,
for hosts without a keychain.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var key string
		if len(args) == 1 {
			key = strings.TrimSpace(args[0])
		} else {
			k, err := ui.ReadSecret("Hello Moon API key:")
			if err != nil {
				return err
			}
			key = k
		}
		if key == "" {
			return fmt.Errorf("empty API key")
		}

		out := cmd.OutOrStdout()
		if setKeyPlain {
			cfg.APIKey = key
			if err := cfg.Save(); err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Warn("API key stored in plain text in "+cfg.Dir()))
			return nil
		}

		ref, err := openKeystore(cfg.Dir()).Store(apiKeyName, key)
		if err != nil {
			return fmt.Errorf("%w (use --plain to store it in config.json)", err)
		}
		cfg.KeyRef = ref
		cfg.APIKey = ""
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Success("API key "+maskKey(key)+" stored in the keychain"))
		return nil
	},
}

var configClearKeyCmd = &cobra.Command{
	Use:   "clear-key",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg.KeyRef == "" && cfg.APIKey == "" {
			fmt.Fprintln(out, ui.Meta("No stored API key."))
			return nil
		}
		if !clearKeyYes && !ui.Confirm(os.Stdin, out, "Remove the stored API key?") {
			fmt.Fprintln(out, ui.Meta("Cancelled."))
			return nil
		}
		if cfg.KeyRef != "" {
			if err := openKeystore(cfg.Dir()).Delete(cfg.KeyRef); err != nil {
				return err
			}
		}
		cfg.KeyRef = ""
		cfg.APIKey = ""
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Success("API key removed"))
		return nil
	},
}

// keySource describes where the API key would come from, without reading
// the keychain.
func keySource() string {
	switch {
	case apiKeyFlag != "":
		return "--api-key flag"
	case os.Getenv(config.EnvAPIKey) != "":
		return "$" + config.EnvAPIKey
	case os.Getenv(config.EnvLegacyAPIKey) != "":
		return "$" + config.EnvLegacyAPIKey
	case cfg.KeyRef != "":
		return "keychain (" + cfg.KeyRef + ")"
	case cfg.APIKey != "":
		return "config.json " + maskKey(cfg.APIKey)
	}
	return "not set"
}

func init() {
	configSetKeyCmd.Flags().BoolVar(&setKeyPlain, "plain", false, "store the key in config.json instead of the keychain")
	configClearKeyCmd.Flags().BoolVarP(&clearKeyYes, "yes", "y", false, "do not ask for confirmation")
	configCmd.AddCommand(configListCmd, configSetCmd, configGetCmd, configSetKeyCmd, configClearKeyCmd)
}
