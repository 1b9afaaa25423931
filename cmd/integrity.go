package cmd

import (
	"errors"
	"fmt"

	"pokemon-service/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the pokemon database",
	Long:  `Checks that the database has every table and column the service uses, and lists archived cleaning reports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd, true, true)
	},
}

// serverCmd represents the integrity server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Check the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd, true, false)
	},
}

// reportsCmd represents the integrity reports command
var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List archived cleaning reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(serverCmd, reportsCmd)
}

func runIntegrityChecks(cmd *cobra.Command, runServer, runReports bool) error {
	ctx := cmd.Context()
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	logg := env.logger
	out := cmd.OutOrStdout()
	svc := integrity.NewService(env.store, env.archive, logg)

	if runServer {
		logg.Info("Checking server schema integrity...")
		report, err := svc.CheckServer(ctx)
		if err != nil {
			return fmt.Errorf("server schema check failed: %w", err)
		}
		if report.Matched {
			logg.Info("Server schema matches")
		} else {
			logg.Warn("Server schema mismatch", zap.Strings("errors", report.Errors))
		}
		if err := printJSON(out, report); err != nil {
			return err
		}
	}

	if runReports {
		keys, err := svc.CheckReports(ctx)
		switch {
		case errors.Is(err, integrity.ErrStorageDisabled):
			logg.Info("Report storage disabled, skipping report listing")
		case err != nil:
			return fmt.Errorf("report listing failed: %w", err)
		default:
			fmt.Fprintf(out, "\n=== Archived Cleaning Reports (%d) ===\n", len(keys))
			for _, k := range keys {
				fmt.Fprintln(out, k)
			}
		}
	}

	return nil
}
