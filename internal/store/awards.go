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
	"github.com/gitxyzlabs/levoyageur/internal/validation"
)

const awardColumns = `id, name, cross_ref, address, lat, lng,
	distinction, stars, green_star, legacy_score, created_at, updated_at`

// ErrAwardRecordNotFound indicates a lookup by unknown award record id.
var ErrAwardRecordNotFound = errors.New("award record not found")

// ListAwardRecords returns every award record, cached until invalidated.
func (s *Store) ListAwardRecords(ctx context.Context) ([]place.AwardRecord, error) {
	return listcache.Get(ctx, s.lists, listcache.AwardRecordsKey(), s.queryAwardRecords)
}

func (s *Store) queryAwardRecords(ctx context.Context) ([]place.AwardRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+awardColumns+` FROM award_records ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query award records: %w", err)
	}
	defer rows.Close()

	var records []place.AwardRecord
	for rows.Next() {
		rec, err := scanAwardRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate award records: %w", err)
	}
	return records, nil
}

// GetAwardRecord fetches one award record by id.
func (s *Store) GetAwardRecord(ctx context.Context, id string) (place.AwardRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+awardColumns+` FROM award_records WHERE id = ?`, id)
	rec, err := scanAwardRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return place.AwardRecord{}, fmt.Errorf("%w: %s", ErrAwardRecordNotFound, id)
	}
	if err != nil {
		return place.AwardRecord{}, err
	}
	return rec, nil
}

// SaveAwardRecord inserts or replaces an award record. A missing id is
// assigned.
func (s *Store) SaveAwardRecord(ctx context.Context, rec *place.AwardRecord) error {
	if rec == nil {
		return errors.New("award record is nil")
	}
	if rec.ID == "" {
		rec.ID = identity.NewID()
	}
	rec.CrossRef = identity.NormalizeCrossRef(rec.CrossRef)

	stamp := nowStamp()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = parseStamp(stamp)
	}
	rec.UpdatedAt = parseStamp(stamp)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO award_records (
			id, name, cross_ref, address, lat, lng,
			distinction, stars, green_star, legacy_score, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			cross_ref = excluded.cross_ref,
			address = excluded.address,
			lat = excluded.lat,
			lng = excluded.lng,
			distinction = excluded.distinction,
			stars = excluded.stars,
			green_star = excluded.green_star,
			legacy_score = excluded.legacy_score,
			updated_at = excluded.updated_at`,
		rec.ID,
		rec.Name,
		nullableString(rec.CrossRef),
		nullableString(rec.Address),
		rec.Coordinates.Lat,
		rec.Coordinates.Lng,
		string(rec.Award.Distinction),
		rec.Award.Stars,
		boolToInt(rec.Award.GreenStar),
		nullableFloat(rec.LegacyScore),
		rec.CreatedAt.UTC().Format(stampLayout),
		rec.UpdatedAt.UTC().Format(stampLayout),
	)
	if err != nil {
		return fmt.Errorf("save award record: %w", err)
	}

	s.lists.Invalidate(listcache.AwardRecordsKey())
	return nil
}

// UnlinkedAwardRecords returns award records without a cross-reference id,
// the input to candidate suggestion.
func (s *Store) UnlinkedAwardRecords(ctx context.Context) ([]place.AwardRecord, error) {
	records, err := s.ListAwardRecords(ctx)
	if err != nil {
		return nil, err
	}
	var unlinked []place.AwardRecord
	for _, rec := range records {
		if !rec.Linked() {
			unlinked = append(unlinked, rec)
		}
	}
	return unlinked, nil
}

// ApplyLink writes a provider cross-reference id onto an award record.
func (s *Store) ApplyLink(ctx context.Context, awardRecordID, candidateID string) error {
	candidateID = identity.NormalizeCrossRef(candidateID)
	if candidateID == "" {
		return errors.New("candidate id is absent")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE award_records SET cross_ref = ?, updated_at = ? WHERE id = ?`,
		candidateID, nowStamp(), awardRecordID)
	if err != nil {
		return fmt.Errorf("apply link: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrAwardRecordNotFound, awardRecordID)
	}

	s.lists.Invalidate(listcache.AwardRecordsKey())
	s.logger.Info("award record linked",
		logging.String("award_record_id", awardRecordID),
		logging.String("cross_ref", candidateID))
	return nil
}

// SubmitValidation records a reviewer decision. Confirming a candidate whose
// id already matches the record's cross-reference is a no-op acknowledgement
// reported as AutoUpdated; otherwise confirmation applies the link. Rejection
// and unsure record the decision without touching the record.
func (s *Store) SubmitValidation(ctx context.Context, awardRecordID, candidateID string, decision validation.Decision) (validation.SubmissionResult, error) {
	candidateID = identity.NormalizeCrossRef(candidateID)
	if candidateID == "" {
		return validation.SubmissionResult{}, errors.New("candidate id is absent")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return validation.SubmissionResult{}, fmt.Errorf("begin validation tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var current sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT cross_ref FROM award_records WHERE id = ?`, awardRecordID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return validation.SubmissionResult{}, fmt.Errorf("%w: %s", ErrAwardRecordNotFound, awardRecordID)
	}
	if err != nil {
		return validation.SubmissionResult{}, fmt.Errorf("read award record: %w", err)
	}

	var result validation.SubmissionResult
	linkChanged := false
	if decision == validation.DecisionConfirmed {
		if identity.SameCrossRef(stringOrEmpty(current), candidateID) {
			result.AutoUpdated = true
		} else {
			if _, err := tx.ExecContext(ctx,
				`UPDATE award_records SET cross_ref = ?, updated_at = ? WHERE id = ?`,
				candidateID, nowStamp(), awardRecordID); err != nil {
				return validation.SubmissionResult{}, fmt.Errorf("apply confirmed link: %w", err)
			}
			linkChanged = true
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO validation_decisions (award_record_id, candidate_id, decision, auto_updated, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		awardRecordID, candidateID, string(decision), boolToInt(result.AutoUpdated), nowStamp()); err != nil {
		return validation.SubmissionResult{}, fmt.Errorf("record decision: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return validation.SubmissionResult{}, fmt.Errorf("commit validation: %w", err)
	}

	if linkChanged {
		s.lists.Invalidate(listcache.AwardRecordsKey())
	}
	s.logger.Info("validation decision stored",
		logging.String("award_record_id", awardRecordID),
		logging.String("candidate_id", candidateID),
		logging.String("decision", string(decision)),
		logging.Bool("auto_updated", result.AutoUpdated))
	return result, nil
}

func scanAwardRecord(row rowScanner) (place.AwardRecord, error) {
	var (
		rec         place.AwardRecord
		crossRef    sql.NullString
		address     sql.NullString
		lat, lng    float64
		distinction string
		stars       int
		greenStar   int
		legacyScore sql.NullFloat64
		createdAt   string
		updatedAt   string
	)

	err := row.Scan(
		&rec.ID, &rec.Name, &crossRef, &address, &lat, &lng,
		&distinction, &stars, &greenStar, &legacyScore, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return place.AwardRecord{}, err
	}
	if err != nil {
		return place.AwardRecord{}, fmt.Errorf("scan award record: %w", err)
	}

	rec.CrossRef = identity.NormalizeCrossRef(stringOrEmpty(crossRef))
	rec.Address = stringOrEmpty(address)
	rec.Coordinates = geo.Coordinates{Lat: lat, Lng: lng}
	rec.Award = place.Award{
		Distinction: place.ParseDistinction(distinction),
		Stars:       stars,
		GreenStar:   greenStar != 0,
	}
	rec.LegacyScore = floatPtr(legacyScore)
	rec.CreatedAt = parseStamp(createdAt)
	rec.UpdatedAt = parseStamp(updatedAt)

	return rec, nil
}
