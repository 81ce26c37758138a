package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/config"
)

// configurationWatchCmd represents the configuration watch command
var configurationWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the config file and report changes",
	Long: `Watch the config file and print the configuration each time it changes.
Invalid edits are reported and ignored. Stops on SIGINT or SIGTERM.

Example:
  rsactl configuration watch`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %s for changes\n", config.Path())

		return config.Watch(ctx, func(cfg *config.Config) {
			logrus.SetLevel(cfg.Level())
			fmt.Fprint(out, cfg.FormatText())
		})
	},
}

func init() {
	configurationCmd.AddCommand(configurationWatchCmd)
}
