package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gitxyzlabs/levoyageur/internal/geo"
	"github.com/gitxyzlabs/levoyageur/internal/identity"
	"github.com/gitxyzlabs/levoyageur/internal/listcache"
	"github.com/gitxyzlabs/levoyageur/internal/logging"
	"github.com/gitxyzlabs/levoyageur/internal/place"
)

const locationColumns = `id, name, cross_ref, award_record_id, lat, lng,
	editor_score, crowd_score, legacy_score, distinction, stars, green_star,
	tags_json, favorites_count, want_to_go_count, created_at, updated_at`

// ErrLocationNotFound indicates a lookup by unknown location id.
var ErrLocationNotFound = errors.New("location not found")

// ListLocations returns every curated location. The result is cached until a
// location mutation invalidates it.
func (s *Store) ListLocations(ctx context.Context) ([]place.Location, error) {
	return listcache.Get(ctx, s.lists, listcache.LocationsKey(), s.queryLocations)
}

func (s *Store) queryLocations(ctx context.Context) ([]place.Location, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+locationColumns+` FROM locations ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
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
		return nil, fmt.Errorf("iterate locations: %w", err)
	}
	return locations, nil
}

// GetLocation fetches one location by id.
func (s *Store) GetLocation(ctx context.Context, id string) (place.Location, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = ?`, id)
	loc, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return place.Location{}, fmt.Errorf("%w: %s", ErrLocationNotFound, id)
	}
	if err != nil {
		return place.Location{}, err
	}
	return loc, nil
}

// SaveLocation inserts or replaces a location. A missing id is assigned. The
// denormalized counters are owned by the favorite and want-to-go mutations
// and are preserved on update.
func (s *Store) SaveLocation(ctx context.Context, loc *place.Location) error {
	if loc == nil {
		return errors.New("location is nil")
	}
	if loc.ID == "" {
		loc.ID = identity.NewID()
	}
	loc.CrossRef = identity.NormalizeCrossRef(loc.CrossRef)
	loc.Tags = place.NormalizeTags(loc.Tags)

	stamp := nowStamp()
	if loc.CreatedAt.IsZero() {
		loc.CreatedAt = parseStamp(stamp)
	}
	loc.UpdatedAt = parseStamp(stamp)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO locations (
			id, name, cross_ref, award_record_id, lat, lng,
			editor_score, crowd_score, legacy_score, distinction, stars, green_star,
			tags_json, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			cross_ref = excluded.cross_ref,
			award_record_id = excluded.award_record_id,
			lat = excluded.lat,
			lng = excluded.lng,
			editor_score = excluded.editor_score,
			crowd_score = excluded.crowd_score,
			legacy_score = excluded.legacy_score,
			distinction = excluded.distinction,
			stars = excluded.stars,
			green_star = excluded.green_star,
			tags_json = excluded.tags_json,
			updated_at = excluded.updated_at`,
		loc.ID,
		loc.Name,
		nullableString(loc.CrossRef),
		nullableString(loc.AwardRecordID),
		loc.Coordinates.Lat,
		loc.Coordinates.Lng,
		nullableFloat(loc.EditorScore),
		nullableFloat(loc.CrowdScore),
		nullableFloat(loc.LegacyScore),
		string(loc.Award.Distinction),
		loc.Award.Stars,
		boolToInt(loc.Award.GreenStar),
		encodeTags(loc.Tags),
		loc.CreatedAt.UTC().Format(stampLayout),
		loc.UpdatedAt.UTC().Format(stampLayout),
	)
	if err != nil {
		return fmt.Errorf("save location: %w", err)
	}

	s.lists.Invalidate(listcache.LocationsKey())
	return nil
}

// SetEditorScore writes the editor rating for a location. Only users with
// the editor role may call it; ErrNotEditor is returned otherwise. A nil
// score clears the rating.
func (s *Store) SetEditorScore(ctx context.Context, userID, locationID string, score *float64) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != RoleEditor {
		return fmt.Errorf("%w: user %s has role %s", ErrNotEditor, user.Name, user.Role)
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE locations SET editor_score = ?, updated_at = ? WHERE id = ?`,
		nullableFloat(score), nowStamp(), locationID)
	if err != nil {
		return fmt.Errorf("set editor score: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrLocationNotFound, locationID)
	}

	s.lists.Invalidate(listcache.LocationsKey())
	s.logger.Info("editor score updated",
		logging.String("location_id", locationID),
		logging.String("user", user.Name))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocation(row rowScanner) (place.Location, error) {
	var (
		loc           place.Location
		crossRef      sql.NullString
		awardRecordID sql.NullString
		lat, lng      float64
		editorScore   sql.NullFloat64
		crowdScore    sql.NullFloat64
		legacyScore   sql.NullFloat64
		distinction   string
		stars         int
		greenStar     int
		tagsJSON      sql.NullString
		createdAt     string
		updatedAt     string
	)

	err := row.Scan(
		&loc.ID, &loc.Name, &crossRef, &awardRecordID, &lat, &lng,
		&editorScore, &crowdScore, &legacyScore, &distinction, &stars, &greenStar,
		&tagsJSON, &loc.FavoritesCount, &loc.WantToGoCount, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return place.Location{}, err
	}
	if err != nil {
		return place.Location{}, fmt.Errorf("scan location: %w", err)
	}

	loc.CrossRef = identity.NormalizeCrossRef(stringOrEmpty(crossRef))
	loc.AwardRecordID = stringOrEmpty(awardRecordID)
	loc.Coordinates = geo.Coordinates{Lat: lat, Lng: lng}
	loc.EditorScore = floatPtr(editorScore)
	loc.CrowdScore = floatPtr(crowdScore)
	loc.LegacyScore = floatPtr(legacyScore)
	loc.Award = place.Award{
		Distinction: place.ParseDistinction(distinction),
		Stars:       stars,
		GreenStar:   greenStar != 0,
	}
	loc.Tags = decodeTags(tagsJSON)
	loc.CreatedAt = parseStamp(createdAt)
	loc.UpdatedAt = parseStamp(updatedAt)

	return loc, nil
}
