package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitxyzlabs/levoyageur/internal/geo"
	"github.com/gitxyzlabs/levoyageur/internal/identity"
	"github.com/gitxyzlabs/levoyageur/internal/match"
	"github.com/gitxyzlabs/levoyageur/internal/place"
	"github.com/gitxyzlabs/levoyageur/internal/store"
)

// importPayload mirrors the export shape of the upstream feeds. Cross-ref ids
// arrive under whichever field name the source uses; CrossRefFields resolves
// the precedence.
type importPayload struct {
	Locations    []importLocation `json:"locations"`
	AwardRecords []importAward    `json:"awardRecords"`
}

type importLocation struct {
	identity.CrossRefFields
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	EditorScore *float64 `json:"editorScore"`
	CrowdScore  *float64 `json:"crowdScore"`
	LegacyScore *float64 `json:"legacyScore"`
	Distinction string   `json:"distinction"`
	Stars       int      `json:"stars"`
	GreenStar   bool     `json:"greenStar"`
	Tags        []string `json:"tags"`
}

type importAward struct {
	identity.CrossRefFields
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Distinction string   `json:"distinction"`
	Stars       int      `json:"stars"`
	GreenStar   bool     `json:"greenStar"`
	LegacyScore *float64 `json:"legacyScore"`
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Load locations and award records from a JSON export",
		Long: `Import reads a JSON export and upserts its locations and award
records. Entries that land within the configured coordinate epsilon of an
existing unrelated location are imported anyway but reported as possible
duplicates for manual review.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			var payload importPayload
			if err := json.Unmarshal(data, &payload); err != nil {
				return fmt.Errorf("parse import file: %w", err)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withStore(func(s *store.Store) error {
				existing, err := s.ListLocations(cmd.Context())
				if err != nil {
					return err
				}
				logger := ctx.ensureLogger()

				var imported, dupes int
				for _, in := range payload.Locations {
					loc := place.Location{
						ID:          in.ID,
						Name:        in.Name,
						CrossRef:    identity.FirstCrossRef(in.CrossRef()),
						Coordinates: geo.Coordinates{Lat: in.Lat, Lng: in.Lng},
						EditorScore: in.EditorScore,
						CrowdScore:  in.CrowdScore,
						LegacyScore: in.LegacyScore,
						Award: place.Award{
							Distinction: place.ParseDistinction(in.Distinction),
							Stars:       in.Stars,
							GreenStar:   in.GreenStar,
						},
						Tags: in.Tags,
					}
					for _, have := range existing {
						if have.ID == loc.ID || identity.SameCrossRef(have.CrossRef, loc.CrossRef) {
							continue
						}
						if match.SamePlaceWithin(have.Ref(), loc.Ref(), cfg.Matching.EpsilonDegrees) {
							dupes++
							fmt.Fprintf(cmd.OutOrStdout(), "possible duplicate: %q near existing %q (%s)\n",
								loc.Name, have.Name, have.ID)
							break
						}
					}
					if err := s.SaveLocation(cmd.Context(), &loc); err != nil {
						return fmt.Errorf("save location %q: %w", in.Name, err)
					}
					imported++
				}

				for _, in := range payload.AwardRecords {
					rec := place.AwardRecord{
						ID:          in.ID,
						Name:        in.Name,
						CrossRef:    identity.FirstCrossRef(in.CrossRef()),
						Address:     in.Address,
						Coordinates: geo.Coordinates{Lat: in.Lat, Lng: in.Lng},
						Award: place.Award{
							Distinction: place.ParseDistinction(in.Distinction),
							Stars:       in.Stars,
							GreenStar:   in.GreenStar,
						},
						LegacyScore: in.LegacyScore,
					}
					if err := s.SaveAwardRecord(cmd.Context(), &rec); err != nil {
						return fmt.Errorf("save award record %q: %w", in.Name, err)
					}
					imported++
				}

				logger.Info("import finished",
					"file", args[0], "imported", imported, "possibleDuplicates", dupes)
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records (%d possible duplicates flagged)\n",
					imported, dupes)
				return nil
			})
		},
	}
}
