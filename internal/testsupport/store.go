package testsupport

import (
	"context"
	"testing"

	"github.com/gitxyzlabs/levoyageur/internal/config"
	"github.com/gitxyzlabs/levoyageur/internal/geo"
	"github.com/gitxyzlabs/levoyageur/internal/logging"
	"github.com/gitxyzlabs/levoyageur/internal/place"
	"github.com/gitxyzlabs/levoyageur/internal/store"
)

// MustOpenStore opens a store over a per-test config and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	if cfg == nil {
		cfg = NewConfig(t)
	}
	s, err := store.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// SeedLocation saves a minimal curated location and returns it with its
// assigned id.
func SeedLocation(t testing.TB, s *store.Store, name, crossRef string, coords geo.Coordinates) place.Location {
	t.Helper()

	loc := place.Location{Name: name, CrossRef: crossRef, Coordinates: coords}
	if err := s.SaveLocation(context.Background(), &loc); err != nil {
		t.Fatalf("seed location %q: %v", name, err)
	}
	return loc
}

// SeedAwardRecord saves a minimal award record and returns it with its
// assigned id.
func SeedAwardRecord(t testing.TB, s *store.Store, name, crossRef string, coords geo.Coordinates, award place.Award) place.AwardRecord {
	t.Helper()

	rec := place.AwardRecord{Name: name, CrossRef: crossRef, Coordinates: coords, Award: award}
	if err := s.SaveAwardRecord(context.Background(), &rec); err != nil {
		t.Fatalf("seed award record %q: %v", name, err)
	}
	return rec
}

// SeedUser ensures a user exists and returns it.
func SeedUser(t testing.TB, s *store.Store, name string, role store.Role) store.User {
	t.Helper()

	user, err := s.EnsureUser(context.Background(), name, role)
	if err != nil {
		t.Fatalf("seed user %q: %v", name, err)
	}
	return user
}
