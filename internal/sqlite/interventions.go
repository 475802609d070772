// Intervention storage and the log queries. Interventions are immutable
// once written; there is no update path.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/electroterrain/fieldlog/pkg/types"
)

const interventionColumns = "id, created_at, duration_min, category, symptom, action, cause, parts, status, tags, node_id"

func scanIntervention(scan func(...any) error) (*types.Intervention, error) {
	var iv types.Intervention
	var createdAt, tagsJSON string
	if err := scan(&iv.ID, &createdAt, &iv.DurationMin, &iv.Category, &iv.Symptom,
		&iv.Action, &iv.Cause, &iv.Parts, &iv.Status, &tagsJSON, &iv.NodeID); err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("scanning intervention: %w", err)
	}
	var err error
	iv.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing intervention created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(tagsJSON), &iv.Tags); err != nil {
		return nil, fmt.Errorf("parsing intervention tags: %w", err)
	}
	return &iv, nil
}

func (s *Store) getIntervention(id string) (*types.Intervention, error) {
	row := s.db.QueryRow("SELECT "+interventionColumns+" FROM interventions WHERE id = ?", id)
	return scanIntervention(row.Scan)
}

func (s *Store) putIntervention(iv *types.Intervention) error {
	if iv.ID == "" {
		return types.ErrInvalidID
	}
	if iv.Tags == nil {
		iv.Tags = []string{}
	}
	tagsJSON, err := json.Marshal(iv.Tags)
	if err != nil {
		return fmt.Errorf("marshaling intervention tags: %w", err)
	}
	if _, err := s.db.Exec(`
		INSERT OR REPLACE INTO interventions
		(id, created_at, duration_min, category, symptom, action, cause, parts, status, tags, node_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		iv.ID, formatTime(iv.CreatedAt), iv.DurationMin, iv.Category, iv.Symptom,
		iv.Action, iv.Cause, iv.Parts, iv.Status, string(tagsJSON), iv.NodeID); err != nil {
		return fmt.Errorf("upserting intervention: %w", err)
	}
	return nil
}

func (s *Store) listInterventions() ([]*types.Intervention, error) {
	return s.selectInterventions("SELECT " + interventionColumns + " FROM interventions")
}

func (s *Store) queryInterventions(index string, value any) ([]*types.Intervention, error) {
	var column string
	switch index {
	case types.IndexByNode:
		column = "node_id"
	case types.IndexByDate:
		column = "created_at"
	default:
		return nil, types.ErrUnknownIndex
	}
	where, args := indexedWhere(column, value)
	return s.selectInterventions("SELECT "+interventionColumns+" FROM interventions WHERE "+where, args...)
}

func (s *Store) selectInterventions(query string, args ...any) ([]*types.Intervention, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching interventions: %w", err)
	}
	defer rows.Close()

	results := []*types.Intervention{}
	for rows.Next() {
		iv, err := scanIntervention(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, iv)
	}
	return results, rows.Err()
}

// AddIntervention normalizes and persists a new log entry, returning the
// stored record. The node must be live at creation time; the record is
// purged when the node is cascade-deleted.
func (s *Store) AddIntervention(data types.Intervention) (*types.Intervention, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	iv := data
	iv.ID = newID()
	iv.CreatedAt = time.Now()
	iv.Normalize()
	if err := s.putIntervention(&iv); err != nil {
		return nil, err
	}
	return &iv, nil
}

// InterventionsForNode returns the entries for one node, most recent first.
func (s *Store) InterventionsForNode(nodeID string) ([]*types.Intervention, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}
	return s.selectInterventions(
		"SELECT "+interventionColumns+" FROM interventions WHERE node_id = ? ORDER BY created_at DESC",
		nodeID)
}

// RecentInterventions returns the most recent entries across every node,
// newest first, truncated to limit.
func (s *Store) RecentInterventions(limit int) ([]*types.Intervention, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}
	if limit <= 0 {
		return []*types.Intervention{}, nil
	}
	return s.selectInterventions(
		"SELECT "+interventionColumns+" FROM interventions ORDER BY created_at DESC LIMIT ?",
		limit)
}
