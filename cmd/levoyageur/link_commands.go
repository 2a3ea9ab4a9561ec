package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gitxyzlabs/levoyageur/internal/candidates"
	"github.com/gitxyzlabs/levoyageur/internal/place"
	"github.com/gitxyzlabs/levoyageur/internal/services/places"
	"github.com/gitxyzlabs/levoyageur/internal/store"
	"github.com/gitxyzlabs/levoyageur/internal/validation"
)

func newLinkCommand(ctx *commandContext) *cobra.Command {
	linkCmd := &cobra.Command{
		Use:   "link",
		Short: "Suggest and validate cross-reference links for award records",
	}

	linkCmd.AddCommand(newLinkSuggestCommand(ctx))
	linkCmd.AddCommand(newLinkDecisionCommand(ctx, "confirm", validation.DecisionConfirmed))
	linkCmd.AddCommand(newLinkDecisionCommand(ctx, "reject", validation.DecisionRejected))

	return linkCmd
}

func newLinkSuggestCommand(ctx *commandContext) *cobra.Command {
	var recordID string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Score provider candidates for unlinked award records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			searcher, err := ctx.newSearcher()
			if err != nil {
				return err
			}

			return ctx.withStore(func(s *store.Store) error {
				var records []place.AwardRecord
				if recordID != "" {
					rec, err := s.GetAwardRecord(cmd.Context(), recordID)
					if err != nil {
						return err
					}
					records = append(records, rec)
				} else {
					records, err = s.UnlinkedAwardRecords(cmd.Context())
					if err != nil {
						return err
					}
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Every award record is already linked.")
					return nil
				}

				policy := ctx.scoringPolicy()
				workflow := validation.New(s, policy, ctx.ensureLogger())
				prompt := interactive && isatty.IsTerminal(os.Stdin.Fd())
				reader := bufio.NewReader(cmd.InOrStdin())

				for _, rec := range records {
					results, err := searcher.Nearby(cmd.Context(), rec.Coordinates, places.SearchOptions{
						RadiusMeters: cfg.Places.NearbyRadiusMeters,
						MaxResults:   cfg.Places.MaxResults,
						Keyword:      rec.Name,
					})
					if err != nil {
						return fmt.Errorf("nearby search for %q: %w", rec.Name, err)
					}

					suggestion := candidates.Score(rec, results, policy)
					review := workflow.Propose(cmd.Context(), rec, suggestion)
					if review == nil {
						fmt.Fprintf(cmd.OutOrStdout(), "%s: no candidate above the review threshold\n", rec.Name)
						continue
					}

					printReview(cmd, rec, review)
					if !prompt {
						continue
					}
					if err := resolveInteractively(cmd, reader, review); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&recordID, "record", "", "Suggest for a single award record id")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", true, "Prompt for decisions on a terminal")
	return cmd
}

func printReview(cmd *cobra.Command, rec place.AwardRecord, review *validation.Review) {
	match := review.Match()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "\n%s (%s)\n", rec.Name, rec.ID)
	applied := ""
	if review.AutoApplied() {
		applied = "  [link applied, awaiting confirmation]"
	}
	fmt.Fprintf(out, "  -> %s  confidence %d%s\n", match.Candidate.Name, match.Confidence, applied)
	if match.Candidate.Address != "" {
		fmt.Fprintf(out, "     %s\n", match.Candidate.Address)
	}
	fmt.Fprintf(out, "     distance %sm, name similarity %s\n",
		strconv.FormatFloat(match.DistanceMeters, 'f', 0, 64),
		strconv.FormatFloat(match.NameSimilarity, 'f', 2, 64))
}

func resolveInteractively(cmd *cobra.Command, reader *bufio.Reader, review *validation.Review) error {
	fmt.Fprint(cmd.OutOrStdout(), "  confirm? [y]es / [n]o / [u]nsure: ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read answer: %w", err)
	}

	var decision validation.Decision
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		decision = validation.DecisionConfirmed
	case "n", "no":
		decision = validation.DecisionRejected
	default:
		decision = validation.DecisionUnsure
	}

	outcome := review.Resolve(cmd.Context(), decision)
	if outcome.SubmitErr != nil {
		// Fail open: the decision stands locally even when persistence is down.
		fmt.Fprintf(cmd.OutOrStdout(), "  recorded %s locally; submission failed: %v\n", outcome.State, outcome.SubmitErr)
		return nil
	}
	if outcome.AutoUpdated {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s (link was already applied)\n", outcome.State)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", outcome.State)
	}
	return nil
}

func newLinkDecisionCommand(ctx *commandContext, verb string, decision validation.Decision) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <award-record-id> <candidate-id>",
		Short: verb + " a candidate link for an award record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(s *store.Store) error {
				result, err := s.SubmitValidation(cmd.Context(), args[0], args[1], decision)
				if err != nil {
					return err
				}
				if result.AutoUpdated {
					fmt.Fprintln(cmd.OutOrStdout(), "Confirmed; the link was already applied.")
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Decision %s recorded.\n", decision)
				}
				return nil
			})
		},
	}
}
