package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sd2k/recipes/internal/config"
	"github.com/sd2k/recipes/internal/scraper"
)

var adaptersCmd = &cobra.Command{
	Use:   "adapters",
	Short: "List the hosts recipes can be scraped from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		sites, err := config.LoadSites(cfg.SitesPath)
		if err != nil {
			return err
		}
		registry, err := scraper.DefaultRegistry(config.Hosts(sites)...)
		if err != nil {
			return err
		}
		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), registry.Hosts())
		}
		for _, h := range registry.Hosts() {
			fmt.Fprintln(cmd.OutOrStdout(), h)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adaptersCmd)
}
