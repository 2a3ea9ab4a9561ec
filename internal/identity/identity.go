package identity

import (
	"strings"

	"github.com/google/uuid"
)

// Collaborators disagree on how "no cross-reference id" is encoded: some send
// an empty string, others the stringified sentinels of their own runtimes.
// Every predicate in this package treats all of them as "absent".
var absentSentinels = map[string]struct{}{
	"":          {},
	"undefined": {},
	"null":      {},
}

// NormalizeCrossRef trims a raw cross-reference id and maps absence sentinels
// to the empty string. Total over any input.
func NormalizeCrossRef(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if _, absent := absentSentinels[strings.ToLower(trimmed)]; absent {
		return ""
	}
	return trimmed
}

// FirstCrossRef returns the first value that normalizes to a present
// cross-reference id, or "" when every value is absent.
func FirstCrossRef(values ...string) string {
	for _, v := range values {
		if normalized := NormalizeCrossRef(v); normalized != "" {
			return normalized
		}
	}
	return ""
}

// SameCrossRef reports whether a and b carry the same present cross-reference
// id. An absent id never compares equal to anything, itself included.
func SameCrossRef(a, b string) bool {
	na := NormalizeCrossRef(a)
	nb := NormalizeCrossRef(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb
}

// IsInternalID reports whether s has the canonical 8-4-4-4-12 dashed hex shape
// of an internally-generated UUID.
func IsInternalID(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// LooksLikeCrossRef reports whether s plausibly is an identifier issued by the
// external place-search provider: present after normalization and not shaped
// like one of our own UUIDs. Guards against treating an internal id as an
// external one when only a single id field is populated.
func LooksLikeCrossRef(s string) bool {
	normalized := NormalizeCrossRef(s)
	if normalized == "" {
		return false
	}
	return !IsInternalID(normalized)
}

// CrossRefFields is the loosely-keyed form in which collaborator payloads
// carry the provider cross-reference id. The three source schemas evolved
// independently and never agreed on a field name; any record shape that can
// carry the id embeds this struct so the fallback order lives in one place.
type CrossRefFields struct {
	PlaceID       string `json:"placeId,omitempty"`
	PlaceIDSnake  string `json:"place_id,omitempty"`
	GooglePlaceID string `json:"googlePlaceId,omitempty"`
}

// CrossRef resolves the normalized cross-reference id from whichever field the
// source populated, preferring values that look provider-issued.
func (f CrossRefFields) CrossRef() string {
	candidates := []string{f.PlaceID, f.PlaceIDSnake, f.GooglePlaceID}
	for _, c := range candidates {
		if LooksLikeCrossRef(c) {
			return NormalizeCrossRef(c)
		}
	}
	return ""
}

// NewID mints an internal record identifier. Internal ids are UUIDs so that
// IsInternalID can tell them apart from provider cross-reference ids.
func NewID() string {
	return uuid.NewString()
}
