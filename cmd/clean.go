package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"pokemon-service/feature/cleaning"

	"github.com/spf13/cobra"
)

var historyFlag bool

// cleanCmd runs the cleaning pass on its own.
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the pokemon dataset",
	Long: `Removes sentinel and unnamed rows, fixes known misspellings and casing,
re-points references and removes duplicates, all in one transaction.
Running it again on a clean dataset changes nothing.

With --history, lists archived cleaning reports instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := setup(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		out := cmd.OutOrStdout()

		if historyFlag {
			if env.archive == nil {
				return errors.New("report storage is disabled or unreachable")
			}
			keys, err := env.archive.List(ctx)
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(out, k)
			}
			return nil
		}

		report, err := cleaning.NewEngine(env.store, env.logger, env.archive).Clean(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "\n=== Cleaning Report ===")
		printCounts(out, "Deleted", report.Deleted)
		printCounts(out, "Renamed", report.Renamed)
		printCounts(out, "Re-pointed", report.Repointed)
		fmt.Fprintf(out, "Total Changes: %d\n", report.Total())
		fmt.Fprintf(out, "Execution Time: %s\n", report.Duration)
		return nil
	},
}

func printCounts(out io.Writer, label string, counts map[string]int64) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(out, "%s:\n", label)
	if len(keys) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %d\n", k, counts[k])
	}
}

func init() {
	RootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVar(&historyFlag, "history", false, "List archived cleaning reports")
}
