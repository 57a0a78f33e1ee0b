package cli

import (
	"github.com/spf13/cobra"

	"github.com/wayli-app/firelens/internal/autocomplete"
	"github.com/wayli-app/firelens/internal/output"
)

var cursorFlag int

var completeCmd = &cobra.Command{
	Use:   "complete [text]",
	Short: "Rank completion candidates for a cursor position",
	Long: `Complete analyzes the expression text at the given cursor offset and
prints the ranked completion candidates. The cursor defaults to the end
of the text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args)
		if err != nil {
			return err
		}

		cursor := cursorFlag
		if cursor < 0 || cursor > len(text) {
			cursor = len(text)
		}

		ctx := autocomplete.Analyze(text, cursor)
		ranker := autocomplete.NewRanker(autocomplete.Catalog(), nil)
		candidates := ranker.Rank(ctx.Trigger, ctx)

		table := output.TableData{Headers: []string{"TEXT", "KIND", "DESCRIPTION"}}
		for _, c := range candidates {
			table.Rows = append(table.Rows, []string{c.Text(), string(c.Kind), c.Description})
		}
		return formatter.PrintTable(table)
	},
}

func init() {
	completeCmd.Flags().IntVar(&cursorFlag, "cursor", -1,
		"cursor offset into the text (default: end of text)")
}
