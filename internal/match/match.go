// Package match holds the single same-place predicate every component uses
// when two location-like records must be compared. No other package is allowed
// to grow its own ad-hoc matching logic; dedup behavior stays consistent only
// because this predicate is the one door.
package match

import (
	"github.com/gitxyzlabs/levoyageur/internal/geo"
	"github.com/gitxyzlabs/levoyageur/internal/identity"
)

// Ref is the minimal identity view of any location-like record: a normalized
// cross-reference id (possibly absent) and coordinates (possibly unset). Every
// source type converts to a Ref before comparison, so field-name differences
// between collaborators never reach this package.
type Ref struct {
	CrossRef    string
	Coordinates geo.Coordinates
}

// Matchable reports whether the ref can match anything at all. A record with
// neither a cross-reference id nor valid coordinates is always distinct; it is
// carried through composition untouched rather than dropped.
func (r Ref) Matchable() bool {
	return identity.NormalizeCrossRef(r.CrossRef) != "" || r.Coordinates.Valid()
}

// SamePlace reports whether a and b denote the same physical place: either
// their cross-reference ids agree, or both positions fall inside the epsilon
// coordinate box. Symmetric, and reflexive for matchable refs.
//
// Not transitive: box proximity is not an equivalence relation, so A~B and
// B~C do not imply A~C. Composition relies on a fixed pass order instead of
// clustering for exactly this reason.
func SamePlace(a, b Ref) bool {
	return SamePlaceWithin(a, b, geo.DefaultEpsilonDegrees)
}

// SamePlaceWithin is SamePlace with an explicit epsilon box, for callers with
// a configured threshold.
func SamePlaceWithin(a, b Ref, epsilonDegrees float64) bool {
	if identity.SameCrossRef(a.CrossRef, b.CrossRef) {
		return true
	}
	return geo.WithinBox(a.Coordinates, b.Coordinates, epsilonDegrees)
}
