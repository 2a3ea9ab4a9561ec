package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/gitxyzlabs/levoyageur/internal/listcache"
	"github.com/gitxyzlabs/levoyageur/internal/logging"
	"github.com/gitxyzlabs/levoyageur/internal/marker"
	"github.com/gitxyzlabs/levoyageur/internal/place"
)

// AddFavorite puts a location on a user's favorites list and bumps the
// denormalized counter. Adding an existing favorite is a no-op.
func (s *Store) AddFavorite(ctx context.Context, userID, locationID string) error {
	return s.mutateList(ctx, listSpec{
		table:   "favorites",
		counter: "favorites_count",
		key:     listcache.FavoritesKey(userID),
	}, userID, locationID, true)
}

// RemoveFavorite removes a favorite and decrements the counter. Removing an
// absent favorite is a no-op.
func (s *Store) RemoveFavorite(ctx context.Context, userID, locationID string) error {
	return s.mutateList(ctx, listSpec{
		table:   "favorites",
		counter: "favorites_count",
		key:     listcache.FavoritesKey(userID),
	}, userID, locationID, false)
}

// AddWantToGo puts a location on a user's want-to-go list.
func (s *Store) AddWantToGo(ctx context.Context, userID, locationID string) error {
	return s.mutateList(ctx, listSpec{
		table:   "want_to_go",
		counter: "want_to_go_count",
		key:     listcache.WantToGoKey(userID),
	}, userID, locationID, true)
}

// RemoveWantToGo removes a want-to-go entry.
func (s *Store) RemoveWantToGo(ctx context.Context, userID, locationID string) error {
	return s.mutateList(ctx, listSpec{
		table:   "want_to_go",
		counter: "want_to_go_count",
		key:     listcache.WantToGoKey(userID),
	}, userID, locationID, false)
}

type listSpec struct {
	table   string
	counter string
	key     listcache.Key
}

func (s *Store) mutateList(ctx context.Context, spec listSpec, userID, locationID string, add bool) error {
	if userID == "" || locationID == "" {
		return errors.New("user id and location id are required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin list tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var changed int64
	if add {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO `+spec.table+` (user_id, location_id, created_at) VALUES (?, ?, ?)`,
			userID, locationID, nowStamp())
		if err != nil {
			return fmt.Errorf("insert into %s: %w", spec.table, err)
		}
		if changed, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
	} else {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM `+spec.table+` WHERE user_id = ? AND location_id = ?`,
			userID, locationID)
		if err != nil {
			return fmt.Errorf("delete from %s: %w", spec.table, err)
		}
		if changed, err = res.RowsAffected(); err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
	}

	if changed > 0 {
		delta := "+ 1"
		if !add {
			delta = "- 1"
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE locations SET `+spec.counter+` = MAX(0, `+spec.counter+` `+delta+`), updated_at = ? WHERE id = ?`,
			nowStamp(), locationID); err != nil {
			return fmt.Errorf("update %s: %w", spec.counter, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit list tx: %w", err)
	}

	if changed > 0 {
		s.lists.Invalidate(spec.key, listcache.LocationsKey())
		s.logger.Debug("personal list updated",
			logging.String("table", spec.table),
			logging.String("user_id", userID),
			logging.String("location_id", locationID),
			logging.Bool("added", add))
	}
	return nil
}

// FavoriteIDsFor returns the membership set for a user's favorites: location
// ids plus their cross-reference ids, the two keys composition tests against.
func (s *Store) FavoriteIDsFor(ctx context.Context, userID string) (map[string]struct{}, error) {
	return listcache.Get(ctx, s.lists, listcache.FavoritesKey(userID), func(ctx context.Context) (map[string]struct{}, error) {
		return s.queryMembership(ctx, "favorites", userID)
	})
}

// WantToGoFor returns the locations on a user's want-to-go list, cached per
// user.
func (s *Store) WantToGoFor(ctx context.Context, userID string) ([]place.Location, error) {
	return listcache.Get(ctx, s.lists, listcache.WantToGoKey(userID), func(ctx context.Context) ([]place.Location, error) {
		rows, err := s.db.QueryContext(ctx,
			`SELECT `+locationColumns+` FROM locations
			 WHERE id IN (SELECT location_id FROM want_to_go WHERE user_id = ?)
			 ORDER BY created_at, id`, userID)
		if err != nil {
			return nil, fmt.Errorf("query want to go: %w", err)
		}
		defer rows.Close()

		var locations []place.Location
		for rows.Next() {
			loc, err := scanLocation(rows)
			if err != nil {
				return nil, err
			}
			locations = append(locations, loc)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate want to go: %w", err)
		}
		return locations, nil
	})
}

func (s *Store) queryMembership(ctx context.Context, table, userID string) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.id, l.cross_ref FROM locations l
		 JOIN `+table+` m ON m.location_id = l.id
		 WHERE m.user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("query %s membership: %w", table, err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		var crossRef *string
		if err := rows.Scan(&id, &crossRef); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		ids[id] = struct{}{}
		if crossRef != nil && *crossRef != "" {
			ids[*crossRef] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate membership: %w", err)
	}
	return ids, nil
}

// SessionFor assembles the composition session for a user. An empty userID
// yields the anonymous session.
func (s *Store) SessionFor(ctx context.Context, userID string) (marker.Session, error) {
	if userID == "" {
		return marker.AnonymousSession(), nil
	}

	favorites, err := s.FavoriteIDsFor(ctx, userID)
	if err != nil {
		return marker.Session{}, err
	}

	wantToGo, err := s.WantToGoFor(ctx, userID)
	if err != nil {
		return marker.Session{}, err
	}
	wantToGoIDs := make(map[string]struct{}, len(wantToGo)*2)
	for _, loc := range wantToGo {
		wantToGoIDs[loc.ID] = struct{}{}
		if loc.CrossRef != "" {
			wantToGoIDs[loc.CrossRef] = struct{}{}
		}
	}

	return marker.Session{
		Authenticated: true,
		FavoriteIDs:   favorites,
		WantToGoIDs:   wantToGoIDs,
	}, nil
}

// SourcesFor assembles the three snapshot lists feeding composition.
func (s *Store) SourcesFor(ctx context.Context, userID string) (marker.Sources, error) {
	locations, err := s.ListLocations(ctx)
	if err != nil {
		return marker.Sources{}, err
	}
	awards, err := s.ListAwardRecords(ctx)
	if err != nil {
		return marker.Sources{}, err
	}

	var wantToGo []place.Location
	if userID != "" {
		if wantToGo, err = s.WantToGoFor(ctx, userID); err != nil {
			return marker.Sources{}, err
		}
	}

	return marker.Sources{
		Locations:    locations,
		AwardRecords: awards,
		WantToGo:     wantToGo,
	}, nil
}
