package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitxyzlabs/levoyageur/internal/marker"
	"github.com/gitxyzlabs/levoyageur/internal/store"
)

func newMarkersCommand(ctx *commandContext) *cobra.Command {
	var lvFilter bool
	var awardFilter bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "markers",
		Short: "Compose the deduplicated marker list for the current view",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				userID, err := ctx.resolveUserID(cmd.Context(), s)
				if err != nil {
					return err
				}

				sources, err := s.SourcesFor(cmd.Context(), userID)
				if err != nil {
					return err
				}
				session, err := s.SessionFor(cmd.Context(), userID)
				if err != nil {
					return err
				}

				view := marker.View{LVFilter: lvFilter, AwardFilter: awardFilter}
				markers := marker.Compose(sources, session, view)

				if jsonOut {
					return writeJSON(cmd, markerViews(markers))
				}

				out := cmd.OutOrStdout()
				if len(markers) == 0 {
					fmt.Fprintln(out, "No markers for this view.")
					return nil
				}
				fmt.Fprintln(out, renderTable(markerHeaders, markerRows(markers), markerAligns))
				fmt.Fprintf(out, "%d markers\n", len(markers))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&lvFilter, "lv", false, "Show the curated-ratings layer")
	cmd.Flags().BoolVar(&awardFilter, "awards", false, "Show the award layer")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}
