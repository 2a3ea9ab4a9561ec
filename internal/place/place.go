package place

import (
	"strings"
	"time"

	"github.com/gitxyzlabs/levoyageur/internal/geo"
)

// Distinction is the award-database tier attached to a place.
type Distinction string

const (
	DistinctionNone        Distinction = "none"
	DistinctionStars       Distinction = "stars"
	DistinctionBibGourmand Distinction = "bib_gourmand"
	DistinctionPlate       Distinction = "plate"
)

// ParseDistinction maps a stored string to a Distinction, defaulting unknown
// values to none rather than failing.
func ParseDistinction(raw string) Distinction {
	switch Distinction(strings.ToLower(strings.TrimSpace(raw))) {
	case DistinctionStars:
		return DistinctionStars
	case DistinctionBibGourmand:
		return DistinctionBibGourmand
	case DistinctionPlate:
		return DistinctionPlate
	default:
		return DistinctionNone
	}
}

// Award is the fine-dining distinction of a place. Stars is meaningful only
// for DistinctionStars (1..3). GreenStar is orthogonal and can co-occur with
// any tier, including none.
type Award struct {
	Distinction Distinction `json:"distinction"`
	Stars       int         `json:"stars,omitempty"`
	GreenStar   bool        `json:"greenStar,omitempty"`
}

// Rated reports whether the place holds any award tier. A green star on its
// own is not a tier.
func (a Award) Rated() bool {
	return a.Distinction != "" && a.Distinction != DistinctionNone
}

// Location is the canonical place entity owned by the curated database.
type Location struct {
	ID            string
	Name          string
	CrossRef      string
	AwardRecordID string
	Coordinates   geo.Coordinates

	// EditorScore and CrowdScore are independent rating scales. nil means
	// "not yet rated", which is distinct from a zero rating.
	EditorScore *float64
	CrowdScore  *float64
	// LegacyScore is the pre-tier single-number award score still present on
	// older rows. It counts as award presence when no tier is set.
	LegacyScore *float64

	Award Award
	Tags  []string

	// Denormalized counters maintained by the persistence layer.
	FavoritesCount int
	WantToGoCount  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Linked reports whether the record carries a provider cross-reference id.
// Unlinked records can only be matched by coordinate proximity.
func (l Location) Linked() bool {
	return l.CrossRef != ""
}

// HasLVRating reports whether the curated database has rated the place on
// either scale.
func (l Location) HasLVRating() bool {
	return l.EditorScore != nil || l.CrowdScore != nil
}

// HasAwardTier reports award presence, counting the legacy single-number
// score as a fallback for rows predating tiered awards.
func (l Location) HasAwardTier() bool {
	return l.Award.Rated() || l.LegacyScore != nil
}

// DisplayRating picks the rating shown on a marker: editor score first, crowd
// score next, legacy award score last. nil when the place is unrated.
func (l Location) DisplayRating() *float64 {
	switch {
	case l.EditorScore != nil:
		return l.EditorScore
	case l.CrowdScore != nil:
		return l.CrowdScore
	default:
		return l.LegacyScore
	}
}

// AwardRecord is a row from the fine-dining-award dataset. It lives in a
// separate table from curated locations and may or may not carry a
// cross-reference id.
type AwardRecord struct {
	ID          string
	Name        string
	CrossRef    string
	Address     string
	Coordinates geo.Coordinates
	Award       Award
	LegacyScore *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Linked reports whether the award record already carries a provider
// cross-reference id.
func (r AwardRecord) Linked() bool {
	return r.CrossRef != ""
}

// HasAwardTier mirrors Location.HasAwardTier for award rows.
func (r AwardRecord) HasAwardTier() bool {
	return r.Award.Rated() || r.LegacyScore != nil
}

// SearchCandidate is a result from the external place-search provider. ID is
// the provider's identifier, i.e. a valid cross-reference id for linking.
type SearchCandidate struct {
	ID          string
	Name        string
	Address     string
	Coordinates geo.Coordinates
	Rating      *float64
	Categories  []string
	// DistanceMeters is optionally pre-computed by the provider; when nil the
	// scorer derives it from the coordinates.
	DistanceMeters *float64
}

// NormalizeTags deduplicates tags case-insensitively, preserving first
// occurrence and its original casing. Blank tags are dropped.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
