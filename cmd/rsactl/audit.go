package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/rsa-in-go/pkg/audit"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Manage the audit database",
	Long: `Manage the PostgreSQL database key generation events are stored in.

The database is taken from AUDIT_DATABASE_URL or audit_database_url in the
config file.`,
}

var auditMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and/or upgrade the audit schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := audit.Migrate(runtimeConfig.AuditDatabaseURL); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Audit schema is up to date")
		return nil
	},
}

var auditDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Rollback audit migrations",
	Long: `Rollback audit migrations (default: 1).

Example:
  rsactl audit down
  rsactl audit down 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid steps: %s", args[0])
			}
			steps = n
		}
		if err := audit.MigrateDown(runtimeConfig.AuditDatabaseURL, steps); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %d migration(s)\n", steps)
		return nil
	},
}

var auditStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current audit schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		version, dirty, err := audit.MigrationVersion(runtimeConfig.AuditDatabaseURL)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Version: %d (dirty: %v)\n", version, dirty)
		return nil
	},
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent key generation events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := audit.NewStore(runtimeConfig.AuditDatabaseURL)
		if err != nil {
			return err
		}
		if store == nil {
			return fmt.Errorf("audit database URL is required")
		}
		defer func() { _ = store.Close() }()

		messages, err := store.Recent("keygen", limit)
		if err != nil {
			return err
		}
		printMessages(cmd.OutOrStdout(), messages)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditMigrateCmd)
	auditCmd.AddCommand(auditDownCmd)
	auditCmd.AddCommand(auditStatusCmd)
	auditCmd.AddCommand(auditListCmd)
	auditListCmd.Flags().Int("limit", 20, "Maximum number of events to show")
}

func printMessages(w io.Writer, messages []audit.Message) {
	if len(messages) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}
	for _, m := range messages {
		fmt.Fprintf(w, "%s %s %s\n", m.Timestamp.UTC().Format("2006-01-02T15:04:05Z"), m.Hostname, m.Message)
	}
}
