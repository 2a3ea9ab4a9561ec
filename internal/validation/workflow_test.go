package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/gitxyzlabs/levoyageur/internal/candidates"
	"github.com/gitxyzlabs/levoyageur/internal/geo"
	"github.com/gitxyzlabs/levoyageur/internal/logging"
	"github.com/gitxyzlabs/levoyageur/internal/place"
)

type fakeSubmitter struct {
	links       map[string]string // award record id -> cross-ref id
	applyCalls  int
	submitCalls int
	applyErr    error
	submitErr   error
}

func newFakeSubmitter() *fakeSubmitter {
	return &fakeSubmitter{links: make(map[string]string)}
}

func (f *fakeSubmitter) ApplyLink(_ context.Context, awardRecordID, candidateID string) error {
	f.applyCalls++
	if f.applyErr != nil {
		return f.applyErr
	}
	f.links[awardRecordID] = candidateID
	return nil
}

func (f *fakeSubmitter) SubmitValidation(_ context.Context, awardRecordID, candidateID string, decision Decision) (SubmissionResult, error) {
	f.submitCalls++
	if f.submitErr != nil {
		return SubmissionResult{}, f.submitErr
	}
	if decision != DecisionConfirmed {
		return SubmissionResult{}, nil
	}
	if f.links[awardRecordID] == candidateID {
		return SubmissionResult{AutoUpdated: true}, nil
	}
	f.links[awardRecordID] = candidateID
	return SubmissionResult{}, nil
}

func record() place.AwardRecord {
	return place.AwardRecord{
		ID:          "m1",
		Name:        "Septime",
		Coordinates: geo.Coordinates{Lat: 48.85, Lng: 2.38},
	}
}

func suggestionWith(confidences ...int) candidates.Suggestion {
	s := candidates.Suggestion{HasResults: true}
	for i, c := range confidences {
		s.Matches = append(s.Matches, candidates.Match{
			AwardRecordID: "m1",
			Candidate:     place.SearchCandidate{ID: "g" + string(rune('1'+i)), Name: "Septime"},
			Confidence:    c,
		})
	}
	return s
}

func newWorkflow(sub Submitter) *Workflow {
	return New(sub, candidates.DefaultPolicy(), logging.NewNop())
}

func TestProposeConfidenceGate(t *testing.T) {
	w := newWorkflow(newFakeSubmitter())
	if r := w.Propose(context.Background(), record(), suggestionWith(69)); r != nil {
		t.Fatal("confidence 69 must not trigger a review prompt")
	}
	if r := w.Propose(context.Background(), record(), suggestionWith(70)); r == nil {
		t.Fatal("confidence 70 must trigger a review prompt")
	}
}

func TestProposeSkipsLinkedAndEmpty(t *testing.T) {
	w := newWorkflow(newFakeSubmitter())
	if r := w.Propose(context.Background(), record(), candidates.Suggestion{HasPlaceID: true, HasResults: true}); r != nil {
		t.Fatal("already-linked record needs no review")
	}
	if r := w.Propose(context.Background(), record(), candidates.Suggestion{}); r != nil {
		t.Fatal("no results, no prompt")
	}
}

func TestAutoApplyThenConfirmIsNoOp(t *testing.T) {
	sub := newFakeSubmitter()
	w := newWorkflow(sub)

	review := w.Propose(context.Background(), record(), suggestionWith(95))
	if review == nil {
		t.Fatal("expected review")
	}
	if !review.AutoApplied() {
		t.Fatal("confidence 95 should be auto-applied before the human answers")
	}
	if sub.links["m1"] != "g1" {
		t.Fatal("speculative link should be in place")
	}

	outcome := review.Resolve(context.Background(), DecisionConfirmed)
	if outcome.State != StateConfirmed {
		t.Fatalf("state = %q", outcome.State)
	}
	if !outcome.AutoUpdated {
		t.Fatal("confirmation of an auto-applied link must report AutoUpdated")
	}
	if sub.applyCalls != 1 {
		t.Fatalf("expected exactly one link mutation, apply was called %d times", sub.applyCalls)
	}
}

func TestMidConfidenceConfirmsWithoutAutoApply(t *testing.T) {
	sub := newFakeSubmitter()
	w := newWorkflow(sub)

	review := w.Propose(context.Background(), record(), suggestionWith(75))
	if review == nil || review.AutoApplied() {
		t.Fatalf("confidence 75 should prompt without auto-apply, got %+v", review)
	}
	outcome := review.Resolve(context.Background(), DecisionConfirmed)
	if outcome.AutoUpdated {
		t.Fatal("first application of the link is not an auto-update")
	}
	if sub.links["m1"] != "g1" {
		t.Fatal("confirmation should apply the link")
	}
}

func TestRejectedCandidateNotReSuggested(t *testing.T) {
	sub := newFakeSubmitter()
	w := newWorkflow(sub)
	suggestion := suggestionWith(85, 72)

	review := w.Propose(context.Background(), record(), suggestion)
	if review == nil || review.Match().Candidate.ID != "g1" {
		t.Fatalf("expected best candidate first, got %+v", review)
	}
	if outcome := review.Resolve(context.Background(), DecisionRejected); outcome.State != StateRejected {
		t.Fatalf("outcome = %+v", outcome)
	}
	if sub.links["m1"] != "" {
		t.Fatal("rejection must not mutate the record")
	}

	// Same session, same suggestion: the rejected candidate is skipped and the
	// runner-up is offered instead.
	review = w.Propose(context.Background(), record(), suggestion)
	if review == nil || review.Match().Candidate.ID != "g2" {
		t.Fatalf("expected runner-up after rejection, got %+v", review)
	}
}

func TestUnsureBehavesLikeRejectionWithoutSuppression(t *testing.T) {
	sub := newFakeSubmitter()
	w := newWorkflow(sub)

	review := w.Propose(context.Background(), record(), suggestionWith(80))
	outcome := review.Resolve(context.Background(), DecisionUnsure)
	if outcome.State != StateUnsure {
		t.Fatalf("state = %q", outcome.State)
	}
	if sub.links["m1"] != "" {
		t.Fatal("unsure must not mutate the record")
	}
}

func TestResolveFailsOpen(t *testing.T) {
	sub := newFakeSubmitter()
	sub.submitErr = errors.New("persistence offline")
	w := newWorkflow(sub)

	review := w.Propose(context.Background(), record(), suggestionWith(80))
	outcome := review.Resolve(context.Background(), DecisionConfirmed)
	if outcome.SubmitErr == nil {
		t.Fatal("caller must be told about the submission failure")
	}
	if review.State() != StateConfirmed {
		t.Fatal("review must not roll back to pending on failure")
	}

	// A later Resolve is a no-op returning the stored outcome.
	sub.submitErr = nil
	again := review.Resolve(context.Background(), DecisionRejected)
	if again.State != StateConfirmed || sub.submitCalls != 1 {
		t.Fatalf("terminal review resubmitted: %+v calls=%d", again, sub.submitCalls)
	}
}

func TestSpeculativeApplyFailureStillPrompts(t *testing.T) {
	sub := newFakeSubmitter()
	sub.applyErr = errors.New("persistence offline")
	w := newWorkflow(sub)

	review := w.Propose(context.Background(), record(), suggestionWith(95))
	if review == nil {
		t.Fatal("prompt should still go out when speculative apply fails")
	}
	if review.AutoApplied() {
		t.Fatal("failed speculative apply must not be reported as applied")
	}

	sub.applyErr = nil
	outcome := review.Resolve(context.Background(), DecisionConfirmed)
	if outcome.AutoUpdated {
		t.Fatal("link was never applied, so confirmation is a real mutation")
	}
	if sub.links["m1"] != "g1" {
		t.Fatal("confirmation should apply the link for real")
	}
}
