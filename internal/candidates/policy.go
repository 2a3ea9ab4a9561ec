package candidates

// Policy centralizes candidate scoring weights and workflow thresholds. The
// weighting is a tunable policy behind the scoring contract; only the
// thresholds are part of the observable surface.
type Policy struct {
	// Relative weights, normalized before use. Name similarity carries the
	// most signal, distance next, category plausibility least.
	NameWeight     float64
	DistanceWeight float64
	CategoryWeight float64

	// DistanceDecayMeters is the e-folding distance of the smooth distance
	// score: exp(-d/decay), so a candidate this far away keeps ~37% of the
	// distance component. No hard cutoff.
	DistanceDecayMeters float64

	// ReviewThreshold is the 0-100 confidence at or above which a candidate
	// triggers a review prompt.
	ReviewThreshold int
	// AutoApplyThreshold is the 0-100 confidence at or above which the link
	// is applied speculatively before the human answers.
	AutoApplyThreshold int

	// MaxCandidates caps how many scored matches are returned.
	MaxCandidates int
}

// DefaultPolicy returns the production scoring policy.
func DefaultPolicy() Policy {
	return Policy{
		NameWeight:          0.55,
		DistanceWeight:      0.30,
		CategoryWeight:      0.15,
		DistanceDecayMeters: 250,
		ReviewThreshold:     70,
		AutoApplyThreshold:  90,
		MaxCandidates:       5,
	}
}

// Normalized returns the policy with out-of-range values replaced by defaults.
func (p Policy) Normalized() Policy {
	d := DefaultPolicy()

	if p.NameWeight < 0 {
		p.NameWeight = d.NameWeight
	}
	if p.DistanceWeight < 0 {
		p.DistanceWeight = d.DistanceWeight
	}
	if p.CategoryWeight < 0 {
		p.CategoryWeight = d.CategoryWeight
	}
	if p.NameWeight+p.DistanceWeight+p.CategoryWeight == 0 {
		p.NameWeight = d.NameWeight
		p.DistanceWeight = d.DistanceWeight
		p.CategoryWeight = d.CategoryWeight
	}
	if p.DistanceDecayMeters <= 0 {
		p.DistanceDecayMeters = d.DistanceDecayMeters
	}
	if p.ReviewThreshold <= 0 || p.ReviewThreshold > 100 {
		p.ReviewThreshold = d.ReviewThreshold
	}
	if p.AutoApplyThreshold <= 0 || p.AutoApplyThreshold > 100 {
		p.AutoApplyThreshold = d.AutoApplyThreshold
	}
	if p.AutoApplyThreshold < p.ReviewThreshold {
		p.AutoApplyThreshold = p.ReviewThreshold
	}
	if p.MaxCandidates <= 0 {
		p.MaxCandidates = d.MaxCandidates
	}
	return p
}
