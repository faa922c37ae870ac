package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sd2k/recipes/internal/scraper"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Scrape one recipe page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newScraper()
		if err != nil {
			return err
		}
		recipe, err := s.Scrape(cmd.Context(), args[0])
		if err != nil {
			var se *scraper.ScrapeError
			if errors.As(err, &se) {
				return fmt.Errorf("%s: %w", scraper.UserMessage(err), err)
			}
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), recipe)
		}
		printRecipe(cmd.OutOrStdout(), recipe)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func printRecipe(w io.Writer, r scraper.ScrapedRecipe) {
	fmt.Fprintln(w, r.Name)
	if r.Source != nil {
		fmt.Fprintf(w, "Source: %s\n", r.Source)
	}
	if r.Description != nil {
		fmt.Fprintln(w, *r.Description)
	}
	if r.PrepTimeMinutes != nil {
		fmt.Fprintf(w, "Prep: %d min\n", *r.PrepTimeMinutes)
	}
	if r.CookingTimeMinutes != nil {
		fmt.Fprintf(w, "Cook: %d min\n", *r.CookingTimeMinutes)
	}
	if r.Servings != nil {
		fmt.Fprintf(w, "Serves: %d\n", *r.Servings)
	}
	fmt.Fprintln(w, "Ingredients:")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(w, "  - %s\n", ing)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
