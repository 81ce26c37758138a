package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/audit"
	"github.com/doodlesbykumbi/rsa-in-go/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "rsactl",
	Short: "Textbook RSA key generation and arithmetic",
	Long: `Generate textbook RSA keys, encrypt and decrypt integers, and run the
number theory helpers they are built on.

Settings are read from $RSA_CONFIG_PATH/rsa.yml and RSA_* environment
variables. See "rsactl configuration show".`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides RSA_LOG_LEVEL)")
}

// setup loads configuration and wires logging and the audit trail before any
// command runs.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(cfg.Level())

	if cfg.AuditEnabled {
		audit.DefaultLogger.SetWriter(os.Stderr)
		audit.SetEnabled(true)

		store, err := audit.NewStore(cfg.AuditDatabaseURL)
		if err != nil {
			return err
		}
		audit.SetStore(store)
	}

	runtimeConfig = cfg
	return nil
}

// runtimeConfig is the configuration loaded by setup
var runtimeConfig *config.Config

func Execute() {
	defer func() {
		if store := audit.DefaultStore(); store != nil {
			_ = store.Close()
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
