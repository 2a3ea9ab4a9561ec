// Package validation governs the human-in-the-loop confirmation of a
// candidate link between an award record and a search result.
package validation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gitxyzlabs/levoyageur/internal/candidates"
	"github.com/gitxyzlabs/levoyageur/internal/logging"
	"github.com/gitxyzlabs/levoyageur/internal/place"
)

// Decision is the reviewer's answer.
type Decision string

const (
	DecisionConfirmed Decision = "confirmed"
	DecisionRejected  Decision = "rejected"
	// DecisionUnsure behaves like a rejection for linking purposes but is
	// recorded distinctly for downstream analytics.
	DecisionUnsure Decision = "unsure"
)

// State is the review state. Every transition out of StatePending is terminal.
type State string

const (
	StatePending   State = "pending"
	StateConfirmed State = "confirmed"
	StateRejected  State = "rejected"
	StateUnsure    State = "unsure"
)

// SubmissionResult is the persistence collaborator's acknowledgement.
type SubmissionResult struct {
	// AutoUpdated is true when the link was already applied (speculatively or
	// otherwise) and the confirmation required no second mutation.
	AutoUpdated bool
}

// Submitter is the persistence-collaborator surface the workflow needs.
type Submitter interface {
	// ApplyLink sets the award record's cross-reference id to the candidate's.
	ApplyLink(ctx context.Context, awardRecordID, candidateID string) error
	// SubmitValidation records the reviewer's decision and applies the link on
	// confirmation when it is not already in place.
	SubmitValidation(ctx context.Context, awardRecordID, candidateID string, decision Decision) (SubmissionResult, error)
}

// Outcome reports what a resolution did.
type Outcome struct {
	State       State
	AutoUpdated bool
	// SubmitErr carries a failed submission. The review state does not roll
	// back to pending on failure; the caller is told and may re-trigger review
	// manually. Fail open, never a stuck modal.
	SubmitErr error
}

// Workflow owns per-session review bookkeeping: which candidates were already
// rejected and must not be re-suggested while this session lives.
type Workflow struct {
	submitter Submitter
	policy    candidates.Policy
	logger    *slog.Logger

	mu        sync.Mutex
	dismissed map[string]map[string]struct{} // award record id -> candidate ids
}

// New builds a workflow around the persistence collaborator.
func New(submitter Submitter, policy candidates.Policy, logger *slog.Logger) *Workflow {
	return &Workflow{
		submitter: submitter,
		policy:    policy.Normalized(),
		logger:    logging.NewComponentLogger(logger, "validation"),
		dismissed: make(map[string]map[string]struct{}),
	}
}

// Review is one pending confirmation. Created only by Propose.
type Review struct {
	workflow    *Workflow
	record      place.AwardRecord
	match       candidates.Match
	state       State
	autoApplied bool
	outcome     Outcome
}

// Match returns the candidate under review.
func (r *Review) Match() candidates.Match { return r.match }

// State returns the current review state.
func (r *Review) State() State { return r.state }

// AutoApplied reports whether the link was applied speculatively before the
// reviewer answered.
func (r *Review) AutoApplied() bool { return r.autoApplied }

// Propose decides whether the suggestion warrants a review prompt. It returns
// nil when the record is already linked, there are no candidates, every
// candidate was dismissed earlier in this session, or the best confidence sits
// below the review threshold.
//
// When the best confidence also meets the auto-apply threshold, the link is
// applied speculatively before the human answers; the later confirmation is
// then a no-op acknowledgement.
func (w *Workflow) Propose(ctx context.Context, record place.AwardRecord, suggestion candidates.Suggestion) *Review {
	if suggestion.HasPlaceID || !suggestion.HasResults {
		return nil
	}

	best := w.firstUndismissed(record.ID, suggestion.Matches)
	if best == nil || best.Confidence < w.policy.ReviewThreshold {
		return nil
	}

	review := &Review{workflow: w, record: record, match: *best, state: StatePending}

	if best.Confidence >= w.policy.AutoApplyThreshold {
		if err := w.submitter.ApplyLink(ctx, record.ID, best.Candidate.ID); err != nil {
			// The prompt still goes out; the confirmation submission will
			// apply the link for real.
			w.logger.Warn("speculative link failed",
				logging.String("award_record_id", record.ID),
				logging.String("candidate_id", best.Candidate.ID),
				logging.Error(err))
		} else {
			review.autoApplied = true
			w.logger.Info("link auto-applied pending confirmation",
				logging.String("award_record_id", record.ID),
				logging.String("candidate_id", best.Candidate.ID),
				logging.Int("confidence", best.Confidence))
		}
	}

	return review
}

func (w *Workflow) firstUndismissed(recordID string, matches []candidates.Match) *candidates.Match {
	w.mu.Lock()
	defer w.mu.Unlock()
	dismissed := w.dismissed[recordID]
	for i := range matches {
		if _, skip := dismissed[matches[i].Candidate.ID]; skip {
			continue
		}
		return &matches[i]
	}
	return nil
}

func (w *Workflow) dismiss(recordID, candidateID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	set, ok := w.dismissed[recordID]
	if !ok {
		set = make(map[string]struct{})
		w.dismissed[recordID] = set
	}
	set[candidateID] = struct{}{}
}

// Resolve applies the reviewer's decision. The pending state is cleared
// immediately, before the submission's result is known; a second Resolve on
// the same review returns the stored outcome without resubmitting.
func (r *Review) Resolve(ctx context.Context, decision Decision) Outcome {
	if r.state != StatePending {
		return r.outcome
	}

	switch decision {
	case DecisionConfirmed:
		r.state = StateConfirmed
	case DecisionUnsure:
		r.state = StateUnsure
	default:
		r.state = StateRejected
	}

	w := r.workflow
	if r.state == StateRejected {
		w.dismiss(r.record.ID, r.match.Candidate.ID)
	}

	result, err := w.submitter.SubmitValidation(ctx, r.record.ID, r.match.Candidate.ID, decision)
	outcome := Outcome{State: r.state, AutoUpdated: result.AutoUpdated, SubmitErr: err}
	if err != nil {
		w.logger.Warn("validation submission failed",
			logging.String("award_record_id", r.record.ID),
			logging.String("candidate_id", r.match.Candidate.ID),
			logging.String("decision", string(decision)),
			logging.Error(err))
	} else {
		w.logger.Info("validation decision recorded",
			logging.String("award_record_id", r.record.ID),
			logging.String("candidate_id", r.match.Candidate.ID),
			logging.String("decision", string(decision)),
			logging.Bool("auto_updated", result.AutoUpdated))
	}

	r.outcome = outcome
	return outcome
}
