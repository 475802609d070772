// Bearing reference table: a flat personal lookup table with no relation to
// the equipment tree.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/electroterrain/fieldlog/pkg/types"
)

const bearingColumns = "id, ref, d, od, b, type, note, created_at"

func scanBearing(scan func(...any) error) (*types.Bearing, error) {
	var b types.Bearing
	var d, od, width sql.NullFloat64
	var createdAt string
	if err := scan(&b.ID, &b.Ref, &d, &od, &width, &b.Type, &b.Note, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("scanning bearing: %w", err)
	}
	if d.Valid {
		b.D = &d.Float64
	}
	if od.Valid {
		b.OD = &od.Float64
	}
	if width.Valid {
		b.B = &width.Float64
	}
	var err error
	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing bearing created_at: %w", err)
	}
	return &b, nil
}

func (s *Store) getBearing(id string) (*types.Bearing, error) {
	row := s.db.QueryRow("SELECT "+bearingColumns+" FROM bearings WHERE id = ?", id)
	return scanBearing(row.Scan)
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func (s *Store) putBearing(b *types.Bearing) error {
	if b.ID == "" {
		return types.ErrInvalidID
	}
	if _, err := s.db.Exec(`
		INSERT OR REPLACE INTO bearings (id, ref, d, od, b, type, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Ref, nullFloat(b.D), nullFloat(b.OD), nullFloat(b.B),
		b.Type, b.Note, formatTime(b.CreatedAt)); err != nil {
		return fmt.Errorf("upserting bearing: %w", err)
	}
	return nil
}

func (s *Store) listBearings() ([]*types.Bearing, error) {
	rows, err := s.db.Query("SELECT " + bearingColumns + " FROM bearings")
	if err != nil {
		return nil, fmt.Errorf("fetching bearings: %w", err)
	}
	defer rows.Close()

	results := []*types.Bearing{}
	for rows.Next() {
		b, err := scanBearing(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, b)
	}
	return results, rows.Err()
}

// Bearings returns the whole table sorted by catalog reference with French
// collation.
func (s *Store) Bearings() ([]*types.Bearing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}
	bs, err := s.listBearings()
	if err != nil {
		return nil, err
	}
	sortBy(bs, func(b *types.Bearing) string { return b.Ref })
	return bs, nil
}

// SearchBearings returns the bearings whose text fields contain query,
// case-insensitively, sorted by reference. An empty query matches all.
func (s *Store) SearchBearings(query string) ([]*types.Bearing, error) {
	bs, err := s.Bearings()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return bs, nil
	}
	matched := []*types.Bearing{}
	for _, b := range bs {
		if strings.Contains(b.SearchText(), needle) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

// AddBearing validates, normalizes, stamps and persists a new reference
// row, returning the stored record. Nothing is written on a validation
// failure.
func (s *Store) AddBearing(data types.Bearing) (*types.Bearing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	b := data
	b.Normalize()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	b.ID = newID()
	b.CreatedAt = time.Now()
	if err := s.putBearing(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBearing applies the patch, re-normalizes and re-validates the
// record and persists. Returns types.ErrNotFound if the bearing does not
// exist.
func (s *Store) UpdateBearing(id string, patch types.BearingPatch) (*types.Bearing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	b, err := s.getBearing(id)
	if err != nil {
		return nil, err
	}
	patch.Apply(b)
	b.Normalize()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := s.putBearing(b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBearing removes a reference row. Deleting a missing ID is not an
// error.
func (s *Store) DeleteBearing(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}
	return s.deleteKey(types.BearingsCollection, id)
}
