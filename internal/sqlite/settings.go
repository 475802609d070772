// Settings storage: singleton-per-key configuration records with arbitrary
// JSON-serializable values.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/electroterrain/fieldlog/pkg/types"
)

func scanSetting(scan func(...any) error) (*types.Setting, error) {
	var st types.Setting
	var valueJSON string
	if err := scan(&st.Key, &valueJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("scanning setting: %w", err)
	}
	if err := json.Unmarshal([]byte(valueJSON), &st.Value); err != nil {
		return nil, fmt.Errorf("parsing setting value: %w", err)
	}
	return &st, nil
}

func (s *Store) getSettingRecord(key string) (*types.Setting, error) {
	row := s.db.QueryRow("SELECT key, value FROM settings WHERE key = ?", key)
	return scanSetting(row.Scan)
}

func (s *Store) putSetting(st *types.Setting) error {
	if st.Key == "" {
		return types.ErrInvalidID
	}
	valueJSON, err := json.Marshal(st.Value)
	if err != nil {
		return fmt.Errorf("marshaling setting value: %w", err)
	}
	if _, err := s.db.Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)",
		st.Key, string(valueJSON)); err != nil {
		return fmt.Errorf("upserting setting: %w", err)
	}
	return nil
}

func (s *Store) listSettings() ([]*types.Setting, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("fetching settings: %w", err)
	}
	defer rows.Close()

	results := []*types.Setting{}
	for rows.Next() {
		st, err := scanSetting(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, st)
	}
	return results, rows.Err()
}

// GetSetting returns the value stored under key, or fallback when the key
// has never been set.
func (s *Store) GetSetting(key string, fallback any) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	st, err := s.getSettingRecord(key)
	if err == types.ErrNotFound {
		return fallback, nil
	}
	if err != nil {
		return nil, err
	}
	return st.Value, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}
	return s.putSetting(&types.Setting{Key: key, Value: value})
}
