package cmd

import (
	"context"

	"pokemon-service/feature/pokemon"
	"pokemon-service/feature/pokemon/lookup"

	"github.com/spf13/cobra"
)

// queryCmd is the parent command for the dataset queries.
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the pokemon dataset",
	Long: `Runs one of the dataset queries and prints the names as JSON.
Names are matched without regard to case.

Examples:
  query ability overgrow
  query type fire
  query trainers pikachu
  query abilities pikachu`,
}

type queryFunc func(svc *pokemon.Service, ctx context.Context, name string) ([]string, error)

func newQueryCmd(use, short string, run queryFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := setup(ctx)
			if err != nil {
				return err
			}
			defer env.Close()

			svc := pokemon.NewService(env.store, lookup.NewClient(env.cfg.Lookup), env.logger)
			names, err := run(svc, ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), names)
		},
	}
}

func init() {
	RootCmd.AddCommand(queryCmd)
	queryCmd.AddCommand(
		newQueryCmd("ability", "Pokemon held with an ability", (*pokemon.Service).PokemonByAbility),
		newQueryCmd("type", "Pokemon with a type in either slot", (*pokemon.Service).PokemonByType),
		newQueryCmd("trainers", "Trainers holding a pokemon", (*pokemon.Service).TrainersByPokemon),
		newQueryCmd("abilities", "Abilities of a pokemon", (*pokemon.Service).AbilitiesByPokemon),
	)
}
