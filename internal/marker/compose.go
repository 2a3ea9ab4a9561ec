package marker

import (
	"github.com/gitxyzlabs/levoyageur/internal/identity"
	"github.com/gitxyzlabs/levoyageur/internal/match"
	"github.com/gitxyzlabs/levoyageur/internal/place"
)

// Session is the current user's view of personal-list membership. Membership
// is tested by record id or cross-reference id, because favorite rows key on
// whichever the client had at save time.
type Session struct {
	Authenticated bool
	FavoriteIDs   map[string]struct{}
	WantToGoIDs   map[string]struct{}
}

// AnonymousSession returns the session used when no user is signed in.
func AnonymousSession() Session {
	return Session{}
}

func (s Session) contains(ids map[string]struct{}, recordID, crossRef string) bool {
	if !s.Authenticated || len(ids) == 0 {
		return false
	}
	if _, ok := ids[recordID]; ok {
		return true
	}
	if normalized := identity.NormalizeCrossRef(crossRef); normalized != "" {
		if _, ok := ids[normalized]; ok {
			return true
		}
	}
	return false
}

// IsFavorite reports favorite membership by id or cross-reference id.
func (s Session) IsFavorite(recordID, crossRef string) bool {
	return s.contains(s.FavoriteIDs, recordID, crossRef)
}

// IsWantToGo reports want-to-go membership by id or cross-reference id.
func (s Session) IsWantToGo(recordID, crossRef string) bool {
	return s.contains(s.WantToGoIDs, recordID, crossRef)
}

// Sources are the three persisted lists feeding composition, already fetched
// as explicit snapshots. Live search results are deliberately not a source;
// they render through SearchMarkers as a disjoint set.
type Sources struct {
	Locations    []place.Location
	AwardRecords []place.AwardRecord
	WantToGo     []place.Location
}

// Compose folds the three source lists into one deduplicated marker list.
//
// The algorithm is a fixed three-pass ordered fold: curated locations first,
// then award records not already represented, then want-to-go records not
// already represented. Each incoming record is tested against everything
// accumulated so far with the shared same-place predicate. Because that
// predicate is not transitive, the pass order is load-bearing: a clustering
// or union-find formulation could merge unrelated places through a chain of
// near-matches and must not be substituted here.
//
// Output order is insertion order. Compose is pure: identical inputs yield an
// identical list, order included, so callers may key UI elements by position.
func Compose(src Sources, session Session, view View) []Marker {
	markers := make([]Marker, 0, len(src.Locations)+len(src.AwardRecords)+len(src.WantToGo))

	// Pass 1: curated locations.
	for _, loc := range src.Locations {
		flags := Flags{
			HasLVRating:  loc.HasLVRating(),
			HasAwardTier: loc.HasAwardTier(),
			IsFavorite:   session.IsFavorite(loc.ID, loc.CrossRef),
			IsWantToGo:   session.IsWantToGo(loc.ID, loc.CrossRef),
		}
		category := ResolveCategory(flags, view, session.Authenticated)
		if category == CategoryNone {
			continue
		}
		markers = append(markers, locationMarker(loc, category))
	}

	// Pass 2: award records not already represented.
	for _, rec := range src.AwardRecords {
		if represented(markers, rec.Ref()) {
			continue
		}
		flags := Flags{
			HasLVRating:  false,
			HasAwardTier: rec.HasAwardTier(),
			IsFavorite:   session.IsFavorite(rec.ID, rec.CrossRef),
			IsWantToGo:   session.IsWantToGo(rec.ID, rec.CrossRef),
		}
		category := ResolveCategory(flags, view, session.Authenticated)
		if category == CategoryNone {
			continue
		}
		markers = append(markers, Marker{
			Position:       rec.Coordinates,
			Category:       category,
			SourceRecordID: rec.ID,
			CrossRef:       identity.NormalizeCrossRef(rec.CrossRef),
			Name:           rec.Name,
			Rating:         rec.LegacyScore,
			Award:          rec.Award,
		})
	}

	// Pass 3: personal want-to-go records not already represented. Membership
	// is forced rather than recomputed; the snapshot itself is the membership.
	for _, loc := range src.WantToGo {
		if represented(markers, loc.Ref()) {
			continue
		}
		flags := Flags{
			HasLVRating:  loc.HasLVRating(),
			HasAwardTier: loc.HasAwardTier(),
			IsFavorite:   false,
			IsWantToGo:   true,
		}
		category := ResolveCategory(flags, view, session.Authenticated)
		if category == CategoryNone {
			continue
		}
		markers = append(markers, locationMarker(loc, category))
	}

	return markers
}

// represented tests a candidate against every marker accumulated so far.
func represented(markers []Marker, ref match.Ref) bool {
	for _, m := range markers {
		if match.SamePlace(m.Ref(), ref) {
			return true
		}
	}
	return false
}

func locationMarker(loc place.Location, category Category) Marker {
	return Marker{
		Position:       loc.Coordinates,
		Category:       category,
		SourceRecordID: loc.ID,
		CrossRef:       identity.NormalizeCrossRef(loc.CrossRef),
		Name:           loc.Name,
		Rating:         loc.DisplayRating(),
		Award:          loc.Award,
		FavoritesCount: loc.FavoritesCount,
		WantToGoCount:  loc.WantToGoCount,
	}
}

// SearchMarkers renders live search results as an uncategorized marker set.
// Search results bypass composition entirely: no merging against the persisted
// sources, so searching for an already-favorited place shows the provider's
// marker, not the personal one. A documented simplification.
func SearchMarkers(results []place.SearchCandidate) []Marker {
	markers := make([]Marker, 0, len(results))
	for _, res := range results {
		markers = append(markers, Marker{
			Position:       res.Coordinates,
			Category:       CategoryNone,
			SourceRecordID: res.ID,
			CrossRef:       identity.NormalizeCrossRef(res.ID),
			Name:           res.Name,
			Rating:         res.Rating,
		})
	}
	return markers
}
