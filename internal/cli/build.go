package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/wayli-app/firelens/internal/query"
)

var buildCmd = &cobra.Command{
	Use:   "build [expression]",
	Short: "Parse a fluent expression and print the structured query",
	Long: `Build extracts the query parameters (collection, filters, ordering,
limit, projection) from a fluent expression and prints the wire-format
structured query. Reads from stdin when no expression is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args)
		if err != nil {
			return err
		}

		parser := query.NewParser(cfg.Query.DefaultCollection, cfg.Query.DefaultLimit)
		params := parser.Parse(text)

		log.Debug().
			Str("collection", params.Collection).
			Int("limit", params.Limit).
			Int("filters", len(params.Where)).
			Msg("Parsed expression")

		return formatter.Print(query.Build(params))
	},
}
