package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sd2k/recipes/internal/ingredient"
)

type parsedLine struct {
	Ingredient ingredient.ScrapedIngredient `json:"ingredient"`
	Formatted  string                       `json:"formatted"`
	Error      string                       `json:"error,omitempty"`
}

var parseCmd = &cobra.Command{
	Use:   "parse <line>...",
	Short: "Parse ingredient lines and print them in canonical units",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := make([]parsedLine, 0, len(args))
		for _, line := range args {
			ing, err := ingredient.ParseLine(line)
			p := parsedLine{Ingredient: ing, Formatted: ingredient.Format(ing)}
			if err != nil {
				p.Error = err.Error()
			}
			out = append(out, p)
		}

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), out)
		}
		for _, p := range out {
			fmt.Fprintln(cmd.OutOrStdout(), p.Formatted)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
