// Fault-code reference table: vendor fault codes with causes and actions,
// maintained by the user as a personal knowledge base.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/electroterrain/fieldlog/pkg/types"
)

const faultColumns = "id, vendor, product, code, title, causes, actions, notes, created_at, updated_at"

func scanFault(scan func(...any) error) (*types.Fault, error) {
	var f types.Fault
	var createdAt, updatedAt string
	if err := scan(&f.ID, &f.Vendor, &f.Product, &f.Code, &f.Title, &f.Causes,
		&f.Actions, &f.Notes, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("scanning fault: %w", err)
	}
	var err error
	f.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing fault created_at: %w", err)
	}
	f.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing fault updated_at: %w", err)
	}
	return &f, nil
}

func (s *Store) getFault(id string) (*types.Fault, error) {
	row := s.db.QueryRow("SELECT "+faultColumns+" FROM faults WHERE id = ?", id)
	return scanFault(row.Scan)
}

func (s *Store) putFault(f *types.Fault) error {
	if f.ID == "" {
		return types.ErrInvalidID
	}
	if _, err := s.db.Exec(`
		INSERT OR REPLACE INTO faults
		(id, vendor, product, code, title, causes, actions, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.Vendor, f.Product, f.Code, f.Title, f.Causes, f.Actions, f.Notes,
		formatTime(f.CreatedAt), formatTime(f.UpdatedAt)); err != nil {
		return fmt.Errorf("upserting fault: %w", err)
	}
	return nil
}

func (s *Store) listFaults() ([]*types.Fault, error) {
	rows, err := s.db.Query("SELECT " + faultColumns + " FROM faults")
	if err != nil {
		return nil, fmt.Errorf("fetching faults: %w", err)
	}
	defer rows.Close()

	results := []*types.Fault{}
	for rows.Next() {
		f, err := scanFault(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, f)
	}
	return results, rows.Err()
}

// Faults returns the whole table sorted by vendor, product then code with
// French collation.
func (s *Store) Faults() ([]*types.Fault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}
	fs, err := s.listFaults()
	if err != nil {
		return nil, err
	}
	sortBy(fs, func(f *types.Fault) string {
		return f.Vendor + "\x00" + f.Product + "\x00" + f.Code
	})
	return fs, nil
}

// SearchFaults returns the faults whose text fields contain query,
// case-insensitively, with optional exact-match filters on vendor and
// product. Empty arguments match all.
func (s *Store) SearchFaults(query, vendor, product string) ([]*types.Fault, error) {
	fs, err := s.Faults()
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	matched := []*types.Fault{}
	for _, f := range fs {
		if vendor != "" && !strings.EqualFold(f.Vendor, vendor) {
			continue
		}
		if product != "" && !strings.EqualFold(f.Product, product) {
			continue
		}
		if needle != "" && !strings.Contains(f.SearchText(), needle) {
			continue
		}
		matched = append(matched, f)
	}
	return matched, nil
}

// AddFault validates, normalizes, stamps and persists a new fault,
// returning the stored record. Vendor, product and code are required; the
// code is upper-cased on write. Nothing is written on a validation failure.
func (s *Store) AddFault(data types.Fault) (*types.Fault, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	f := data
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f.ID = newID()
	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now
	if err := s.putFault(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// UpdateFault applies the patch, re-normalizes and re-validates the record,
// stamps UpdatedAt and persists. Returns types.ErrNotFound if the fault
// does not exist.
func (s *Store) UpdateFault(id string, patch types.FaultPatch) (*types.Fault, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	f, err := s.getFault(id)
	if err != nil {
		return nil, err
	}
	patch.Apply(f)
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f.UpdatedAt = time.Now()
	if err := s.putFault(f); err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteFault removes a fault. Deleting a missing ID is not an error.
func (s *Store) DeleteFault(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}
	return s.deleteKey(types.FaultsCollection, id)
}
