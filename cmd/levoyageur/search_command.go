package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitxyzlabs/levoyageur/internal/marker"
	"github.com/gitxyzlabs/levoyageur/internal/services/places"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var maxResults int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the place provider and render results as markers",
		Long: "Search results are a separate marker set: they are not merged with the\n" +
			"persisted sources, so an already-saved place shows the provider's marker.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			searcher, err := ctx.newSearcher()
			if err != nil {
				return err
			}

			limit := maxResults
			if limit <= 0 {
				limit = cfg.Places.MaxResults
			}
			results, err := searcher.Search(cmd.Context(), strings.Join(args, " "), places.SearchOptions{MaxResults: limit})
			if err != nil {
				return fmt.Errorf("search places: %w", err)
			}

			markers := marker.SearchMarkers(results)
			if jsonOut {
				return writeJSON(cmd, markerViews(markers))
			}

			out := cmd.OutOrStdout()
			if len(markers) == 0 {
				fmt.Fprintln(out, "No results.")
				return nil
			}
			fmt.Fprintln(out, renderTable(markerHeaders, markerRows(markers), markerAligns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	cmd.Flags().IntVarP(&maxResults, "limit", "n", 0, "Maximum results (default from config)")
	return cmd
}
