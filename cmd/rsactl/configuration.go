package main

import (
	"github.com/spf13/cobra"
)

// configurationCmd represents the configuration command
var configurationCmd = &cobra.Command{
	Use:   "configuration",
	Short: "Inspect rsactl configuration",
	Long:  `Inspect rsactl configuration settings.`,
}

func init() {
	rootCmd.AddCommand(configurationCmd)
}
