package place

import "github.com/gitxyzlabs/levoyageur/internal/match"

// Ref returns the identity view used for same-place comparison.
func (l Location) Ref() match.Ref {
	return match.Ref{CrossRef: l.CrossRef, Coordinates: l.Coordinates}
}

// Ref returns the identity view used for same-place comparison.
func (r AwardRecord) Ref() match.Ref {
	return match.Ref{CrossRef: r.CrossRef, Coordinates: r.Coordinates}
}

// Ref returns the identity view used for same-place comparison. The provider
// id doubles as the cross-reference id.
func (c SearchCandidate) Ref() match.Ref {
	return match.Ref{CrossRef: c.ID, Coordinates: c.Coordinates}
}
