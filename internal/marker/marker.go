package marker

import (
	"github.com/gitxyzlabs/levoyageur/internal/geo"
	"github.com/gitxyzlabs/levoyageur/internal/match"
	"github.com/gitxyzlabs/levoyageur/internal/place"
)

// Marker is the derived visual unit for one distinct place.
type Marker struct {
	Position       geo.Coordinates
	Category       Category
	SourceRecordID string
	CrossRef       string
	Name           string
	Rating         *float64
	Award          place.Award
	FavoritesCount int
	WantToGoCount  int
}

// Ref returns the identity view used when later passes test incoming records
// against already-emitted markers.
func (m Marker) Ref() match.Ref {
	return match.Ref{CrossRef: m.CrossRef, Coordinates: m.Position}
}
