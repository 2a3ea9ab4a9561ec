package marker

// Category is the single display category assigned to a marker. A place can
// simultaneously be LV-rated, award-tiered, favorited, and want-to-go'd, but
// the map renders one marker per place, so the most authoritative distinction
// wins and personal-list membership is a fallback.
type Category string

const (
	// CategoryNone means the place produces no marker at all.
	CategoryNone     Category = ""
	CategoryLV       Category = "lv"
	CategoryAward    Category = "award"
	CategoryFavorite Category = "favorite"
	CategoryWantToGo Category = "want_to_go"
)

// Flags are the marker-relevant attributes of one place, computed per source
// record during composition.
type Flags struct {
	HasLVRating  bool
	HasAwardTier bool
	IsFavorite   bool
	IsWantToGo   bool
}

// View carries the map-level filter toggles. These are properties of what the
// user is looking at, not of any place.
type View struct {
	LVFilter    bool
	AwardFilter bool
}

// ResolveCategory picks the display category for a place. Priority order,
// first match wins:
//
//  1. LV filter on and LV-rated
//  2. award filter on and award-tiered
//  3. authenticated and favorited
//  4. authenticated and want-to-go
//  5. no marker
func ResolveCategory(f Flags, v View, authenticated bool) Category {
	switch {
	case v.LVFilter && f.HasLVRating:
		return CategoryLV
	case v.AwardFilter && f.HasAwardTier:
		return CategoryAward
	case authenticated && f.IsFavorite:
		return CategoryFavorite
	case authenticated && f.IsWantToGo:
		return CategoryWantToGo
	default:
		return CategoryNone
	}
}
