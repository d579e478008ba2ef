package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/moon/internal/config"
	"github.com/Mohsinsiddi/moon/internal/ui"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/moon/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir     string
	cfg        *config.Config
	verbose    bool
	apiKeyFlag string
	baseURL    string
	timeout    string
	jsonOut    bool

	logger = zerolog.Nop()
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "moon",
	Short: "Query Hello Moon Solana analytics from the terminal",
	Long: `moon: a terminal client for the Hello Moon REST API.

  Browse NFT listings, sales and candlesticks, DeFi swaps, lending and
  liquidity pools, and the NFT / DeFi summary endpoints.

The API key is read from --api-key, $HELLOMOON_API_KEY, a .env file in the
working directory, the OS keychain (moon config set-key) or config.json.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config (skip for commands that don't need it).
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if err := config.LoadEnv(); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if verbose {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				Level(zerolog.DebugLevel).
				With().Timestamp().Logger()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.OutOrStdout(), ui.Banner(Version))
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errLine(err))
		os.Exit(1)
	}
}

func init() {
	// MOON_CONFIG_DIR env var is the --config default.
	cfgDir = os.Getenv(config.EnvConfigDir)

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.moon)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Hello Moon API key (overrides env and keychain)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API root (default from config)")
	rootCmd.PersistentFlags().StringVar(&timeout, "timeout", "", "per-call timeout, e.g. 30s or 2m (default from config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print JSON instead of tables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and responses to stderr")

	// Register all sub-commands.
	rootCmd.AddCommand(
		endpointsCmd,
		callCmd,
		collectionCmd,
		mintsCmd,
		pingCmd,
		configCmd,
	)
}
