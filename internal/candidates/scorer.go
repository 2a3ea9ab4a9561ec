// Package candidates scores nearby search results as link candidates for an
// award record that lacks a cross-reference id.
package candidates

import (
	"math"
	"sort"
	"strings"

	"github.com/gitxyzlabs/levoyageur/internal/geo"
	"github.com/gitxyzlabs/levoyageur/internal/place"
	"github.com/gitxyzlabs/levoyageur/internal/textutil"
)

// restaurantCategories are provider category tags that make a candidate
// plausible for a fine-dining award record.
var restaurantCategories = map[string]struct{}{
	"restaurant":    {},
	"food":          {},
	"cafe":          {},
	"bar":           {},
	"bakery":        {},
	"meal_takeaway": {},
	"bistro":        {},
	"brasserie":     {},
}

// Match pairs one unlinked award record with one nearby search result.
// Ephemeral; never persisted.
type Match struct {
	AwardRecordID  string
	Candidate      place.SearchCandidate
	Confidence     int // 0-100
	DistanceMeters float64
	NameSimilarity float64
}

// Suggestion is the scoring outcome consumed by the validation workflow.
type Suggestion struct {
	// HasPlaceID is true when the award record already carries a
	// cross-reference id; scoring is skipped and Matches is empty.
	HasPlaceID bool
	// HasResults reports whether the provider returned anything to score.
	// Zero results is a normal outcome, not an error.
	HasResults bool
	// Matches is ordered by descending confidence, ties broken by distance.
	Matches []Match
}

// Best returns the highest-confidence match, or nil when there is none.
func (s Suggestion) Best() *Match {
	if len(s.Matches) == 0 {
		return nil
	}
	return &s.Matches[0]
}

// Score ranks the provider's nearby results as link candidates for record.
// Results are assumed already geographically filtered by the provider.
func Score(record place.AwardRecord, results []place.SearchCandidate, policy Policy) Suggestion {
	policy = policy.Normalized()

	if record.Linked() {
		return Suggestion{HasPlaceID: true, HasResults: len(results) > 0}
	}
	if len(results) == 0 {
		return Suggestion{}
	}

	weightSum := policy.NameWeight + policy.DistanceWeight + policy.CategoryWeight
	recordName := textutil.NewFingerprint(record.Name)

	matches := make([]Match, 0, len(results))
	for _, res := range results {
		if res.ID == "" {
			// A candidate without a provider id cannot be linked to.
			continue
		}
		distance := candidateDistance(record, res)
		nameScore := textutil.CosineSimilarity(recordName, textutil.NewFingerprint(res.Name))
		distScore := math.Exp(-distance / policy.DistanceDecayMeters)
		catScore := categoryPlausibility(res.Categories)

		score := (policy.NameWeight*nameScore + policy.DistanceWeight*distScore + policy.CategoryWeight*catScore) / weightSum
		confidence := int(math.Round(score * 100))
		if confidence < 0 {
			confidence = 0
		}
		if confidence > 100 {
			confidence = 100
		}

		matches = append(matches, Match{
			AwardRecordID:  record.ID,
			Candidate:      res,
			Confidence:     confidence,
			DistanceMeters: distance,
			NameSimilarity: nameScore,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		return matches[i].DistanceMeters < matches[j].DistanceMeters
	})
	if len(matches) > policy.MaxCandidates {
		matches = matches[:policy.MaxCandidates]
	}

	return Suggestion{HasResults: true, Matches: matches}
}

func candidateDistance(record place.AwardRecord, res place.SearchCandidate) float64 {
	if res.DistanceMeters != nil && *res.DistanceMeters >= 0 {
		return *res.DistanceMeters
	}
	return geo.DistanceMeters(record.Coordinates, res.Coordinates)
}

// categoryPlausibility scores how restaurant-like the candidate's provider
// categories are: full credit for a restaurant-family tag, a light penalty for
// tags from other families, neutral when the provider sent none.
func categoryPlausibility(categories []string) float64 {
	if len(categories) == 0 {
		return 0.5
	}
	for _, cat := range categories {
		if _, ok := restaurantCategories[strings.ToLower(strings.TrimSpace(cat))]; ok {
			return 1.0
		}
	}
	return 0.25
}
