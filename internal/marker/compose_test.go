package marker

import (
	"reflect"
	"testing"

	"github.com/gitxyzlabs/levoyageur/internal/geo"
	"github.com/gitxyzlabs/levoyageur/internal/match"
	"github.com/gitxyzlabs/levoyageur/internal/place"
)

func floatPtr(v float64) *float64 { return &v }

func allOn() View { return View{LVFilter: true, AwardFilter: true} }

func ratedLocation(id, crossRef string, lat, lng float64) place.Location {
	return place.Location{
		ID:          id,
		Name:        "Location " + id,
		CrossRef:    crossRef,
		Coordinates: geo.Coordinates{Lat: lat, Lng: lng},
		EditorScore: floatPtr(16),
	}
}

func starredAward(id, crossRef string, lat, lng float64) place.AwardRecord {
	return place.AwardRecord{
		ID:          id,
		Name:        "Award " + id,
		CrossRef:    crossRef,
		Coordinates: geo.Coordinates{Lat: lat, Lng: lng},
		Award:       place.Award{Distinction: place.DistinctionStars, Stars: 1},
	}
}

func TestComposeCrossRefDedup(t *testing.T) {
	src := Sources{
		Locations:    []place.Location{ratedLocation("u1", "g1", 10, 10)},
		AwardRecords: []place.AwardRecord{starredAward("m1", "g1", 10.0005, 10.0005)},
	}
	markers := Compose(src, AnonymousSession(), allOn())
	if len(markers) != 1 {
		t.Fatalf("expected exactly one marker, got %d", len(markers))
	}
	if markers[0].SourceRecordID != "u1" {
		t.Fatalf("pass 1 should win; marker sourced from %q", markers[0].SourceRecordID)
	}
	if markers[0].Category != CategoryLV {
		t.Fatalf("expected LV category, got %q", markers[0].Category)
	}
}

func TestComposeCoordinateOnlyDedup(t *testing.T) {
	src := Sources{
		Locations:    []place.Location{ratedLocation("u2", "", 20, 20)},
		AwardRecords: []place.AwardRecord{starredAward("m2", "", 20.0004, 20.0004)},
	}
	markers := Compose(src, AnonymousSession(), allOn())
	if len(markers) != 1 {
		t.Fatalf("expected one marker within the coordinate box, got %d", len(markers))
	}
	if markers[0].SourceRecordID != "u2" {
		t.Fatalf("curated record should win, got %q", markers[0].SourceRecordID)
	}
}

func TestComposeCoordinateBoxMiss(t *testing.T) {
	src := Sources{
		Locations:    []place.Location{ratedLocation("u2", "", 20, 20)},
		AwardRecords: []place.AwardRecord{starredAward("m2", "", 20.002, 20.0004)},
	}
	markers := Compose(src, AnonymousSession(), allOn())
	if len(markers) != 2 {
		t.Fatalf("outside the box should produce two markers, got %d", len(markers))
	}
	if markers[0].SourceRecordID != "u2" || markers[1].SourceRecordID != "m2" {
		t.Fatalf("output must preserve pass order, got %q then %q",
			markers[0].SourceRecordID, markers[1].SourceRecordID)
	}
	if markers[1].Category != CategoryAward {
		t.Fatalf("award record should resolve to award category, got %q", markers[1].Category)
	}
}

func TestComposeIdempotent(t *testing.T) {
	session := Session{
		Authenticated: true,
		FavoriteIDs:   map[string]struct{}{"u3": {}},
		WantToGoIDs:   map[string]struct{}{"w1": {}},
	}
	src := Sources{
		Locations: []place.Location{
			ratedLocation("u1", "g1", 10, 10),
			{ID: "u3", Name: "Favorite only", Coordinates: geo.Coordinates{Lat: 30, Lng: 30}},
		},
		AwardRecords: []place.AwardRecord{
			starredAward("m1", "g1", 10.0005, 10.0005),
			starredAward("m9", "", 40, 40),
		},
		WantToGo: []place.Location{
			{ID: "w1", Name: "Wish", Coordinates: geo.Coordinates{Lat: 50, Lng: 50}},
		},
	}
	view := allOn()

	first := Compose(src, session, view)
	second := Compose(src, session, view)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("Compose must be idempotent, order included")
	}
}

func TestComposeNoDuplicatesInvariant(t *testing.T) {
	src := Sources{
		Locations: []place.Location{
			ratedLocation("u1", "g1", 10, 10),
			ratedLocation("u2", "", 20, 20),
		},
		AwardRecords: []place.AwardRecord{
			starredAward("m1", "g1", 10.0005, 10.0005),
			starredAward("m2", "", 20.0004, 20.0004),
			starredAward("m3", "", 21, 21),
		},
		WantToGo: []place.Location{
			{ID: "w1", Coordinates: geo.Coordinates{Lat: 21.0002, Lng: 21.0002}, EditorScore: floatPtr(10)},
			{ID: "w2", Coordinates: geo.Coordinates{Lat: 60, Lng: 60}},
		},
	}
	session := Session{Authenticated: true}
	markers := Compose(src, session, allOn())

	for i := range markers {
		for j := i + 1; j < len(markers); j++ {
			if match.SamePlace(markers[i].Ref(), markers[j].Ref()) {
				t.Fatalf("markers %d (%s) and %d (%s) describe the same place",
					i, markers[i].SourceRecordID, j, markers[j].SourceRecordID)
			}
		}
	}
}

func TestComposePassThreeForcesWantToGo(t *testing.T) {
	// The snapshot itself is the membership: no ids in the session, and the
	// record has no rating or award data, yet it still emits a marker.
	src := Sources{
		WantToGo: []place.Location{{ID: "w1", Name: "Wish", Coordinates: geo.Coordinates{Lat: 5, Lng: 5}}},
	}
	markers := Compose(src, Session{Authenticated: true}, allOn())
	if len(markers) != 1 || markers[0].Category != CategoryWantToGo {
		t.Fatalf("expected a single want-to-go marker, got %+v", markers)
	}

	// A want-to-go record with an award tier and the award filter on is still
	// an award marker; forced membership is a fallback, not an override.
	src = Sources{
		WantToGo: []place.Location{{
			ID:          "w2",
			Coordinates: geo.Coordinates{Lat: 6, Lng: 6},
			Award:       place.Award{Distinction: place.DistinctionBibGourmand},
		}},
	}
	markers = Compose(src, Session{Authenticated: true}, allOn())
	if len(markers) != 1 || markers[0].Category != CategoryAward {
		t.Fatalf("expected award category from record's own data, got %+v", markers)
	}
}

func TestComposeUnmatchableRecordNeverDropped(t *testing.T) {
	// No cross-ref and no valid coordinates: cannot match anything, but must
	// still surface as its own marker.
	src := Sources{
		Locations: []place.Location{
			{ID: "u1", Name: "Ghost", EditorScore: floatPtr(12)},
			{ID: "u2", Name: "Ghost twin", EditorScore: floatPtr(13)},
		},
	}
	markers := Compose(src, AnonymousSession(), allOn())
	if len(markers) != 2 {
		t.Fatalf("unmatchable records must stay distinct, got %d markers", len(markers))
	}
}

func TestComposeAnonymousSeesNoPersonalMarkers(t *testing.T) {
	src := Sources{
		Locations: []place.Location{{ID: "u1", Coordinates: geo.Coordinates{Lat: 1, Lng: 1}}},
		WantToGo:  []place.Location{{ID: "w1", Coordinates: geo.Coordinates{Lat: 2, Lng: 2}}},
	}
	markers := Compose(src, AnonymousSession(), allOn())
	if len(markers) != 0 {
		t.Fatalf("anonymous view of unrated places should be empty, got %+v", markers)
	}
}

func TestSessionMembershipByCrossRef(t *testing.T) {
	session := Session{
		Authenticated: true,
		FavoriteIDs:   map[string]struct{}{"g1": {}},
	}
	if !session.IsFavorite("u1", "g1") {
		t.Fatal("membership by cross-reference id should hold")
	}
	if session.IsFavorite("u1", "undefined") {
		t.Fatal("sentinel cross-ref must not grant membership")
	}
	if (Session{}).IsFavorite("g1", "g1") {
		t.Fatal("unauthenticated session has no memberships")
	}
}

func TestSearchMarkersDisjoint(t *testing.T) {
	results := []place.SearchCandidate{
		{ID: "g1", Name: "Hit one", Coordinates: geo.Coordinates{Lat: 1, Lng: 1}, Rating: floatPtr(4.4)},
		{ID: "g2", Name: "Hit two", Coordinates: geo.Coordinates{Lat: 2, Lng: 2}},
	}
	markers := SearchMarkers(results)
	if len(markers) != 2 {
		t.Fatalf("expected 2 search markers, got %d", len(markers))
	}
	for _, m := range markers {
		if m.Category != CategoryNone {
			t.Fatalf("search markers are uncategorized, got %q", m.Category)
		}
	}
	if markers[0].CrossRef != "g1" {
		t.Fatalf("provider id should carry through as cross-ref, got %q", markers[0].CrossRef)
	}
}
