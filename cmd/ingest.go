package cmd

import (
	"pokemon-service/feature/pokemon"
	"pokemon-service/feature/pokemon/lookup"

	"github.com/spf13/cobra"
)

// ingestCmd adds a pokemon from PokeAPI.
var ingestCmd = &cobra.Command{
	Use:   "ingest <name>",
	Short: "Add a pokemon from PokeAPI",
	Long: `Looks the pokemon up in PokeAPI, stores its types and abilities, gives it
to a random trainer and prints the inserted association ids.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		env, err := setup(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		svc := pokemon.NewService(env.store, lookup.NewClient(env.cfg.Lookup), env.logger)
		result, err := svc.Ingest(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	RootCmd.AddCommand(ingestCmd)
}
