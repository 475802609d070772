// Checklist storage: global templates and node-bound instances. Item
// check-state changes are caller-side mutations of the fetched record
// followed by a whole-record Put (last write wins).
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/electroterrain/fieldlog/pkg/types"
)

const checklistColumns = "id, scope, node_id, title, items, updated_at"

func scanChecklist(scan func(...any) error) (*types.Checklist, error) {
	var c types.Checklist
	var nodeID sql.NullString
	var updatedAt, itemsJSON string
	if err := scan(&c.ID, &c.Scope, &nodeID, &c.Title, &itemsJSON, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("scanning checklist: %w", err)
	}
	if nodeID.Valid {
		c.NodeID = &nodeID.String
	}
	var err error
	c.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing checklist updated_at: %w", err)
	}
	if err := json.Unmarshal([]byte(itemsJSON), &c.Items); err != nil {
		return nil, fmt.Errorf("parsing checklist items: %w", err)
	}
	return &c, nil
}

func (s *Store) getChecklist(id string) (*types.Checklist, error) {
	row := s.db.QueryRow("SELECT "+checklistColumns+" FROM checklists WHERE id = ?", id)
	return scanChecklist(row.Scan)
}

func (s *Store) putChecklist(c *types.Checklist) error {
	if c.ID == "" {
		return types.ErrInvalidID
	}
	if c.Items == nil {
		c.Items = []types.ChecklistItem{}
	}
	itemsJSON, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("marshaling checklist items: %w", err)
	}
	var nodeID sql.NullString
	if c.NodeID != nil {
		nodeID = sql.NullString{String: *c.NodeID, Valid: true}
	}
	if _, err := s.db.Exec(`
		INSERT OR REPLACE INTO checklists (id, scope, node_id, title, items, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Scope, nodeID, c.Title, string(itemsJSON), formatTime(c.UpdatedAt)); err != nil {
		return fmt.Errorf("upserting checklist: %w", err)
	}
	return nil
}

func (s *Store) listChecklists() ([]*types.Checklist, error) {
	return s.selectChecklists("SELECT " + checklistColumns + " FROM checklists")
}

func (s *Store) queryChecklists(index string, value any) ([]*types.Checklist, error) {
	var column string
	switch index {
	case types.IndexByScope:
		column = "scope"
	case types.IndexByNode:
		column = "node_id"
	default:
		return nil, types.ErrUnknownIndex
	}
	where, args := indexedWhere(column, value)
	return s.selectChecklists("SELECT "+checklistColumns+" FROM checklists WHERE "+where, args...)
}

func (s *Store) selectChecklists(query string, args ...any) ([]*types.Checklist, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching checklists: %w", err)
	}
	defer rows.Close()

	results := []*types.Checklist{}
	for rows.Next() {
		c, err := scanChecklist(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// SetChecklistForNode persists a fresh node-scoped checklist built from the
// given texts, each item unchecked and keyed by its positional index. A new
// record is always created, never merged with an existing title.
func (s *Store) SetChecklistForNode(nodeID, title string, texts []string) (*types.Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	c := &types.Checklist{
		ID:        newID(),
		Scope:     types.ScopeNode,
		NodeID:    &nodeID,
		Title:     title,
		Items:     types.NewItems(texts),
		UpdatedAt: time.Now(),
	}
	if err := s.putChecklist(c); err != nil {
		return nil, err
	}
	return c, nil
}

// CloneTemplate instantiates a global template onto a node: same title, the
// template's item texts, every item reset to unchecked.
func (s *Store) CloneTemplate(templateID, nodeID string) (*types.Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	tpl, err := s.getChecklist(templateID)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(tpl.Items))
	for i, item := range tpl.Items {
		texts[i] = item.Text
	}
	c := &types.Checklist{
		ID:        newID(),
		Scope:     types.ScopeNode,
		NodeID:    &nodeID,
		Title:     tpl.Title,
		Items:     types.NewItems(texts),
		UpdatedAt: time.Now(),
	}
	if err := s.putChecklist(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ToggleChecklistItem flips one item's checked state and writes the whole
// record back.
func (s *Store) ToggleChecklistItem(checklistID, itemID string) (*types.Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	c, err := s.getChecklist(checklistID)
	if err != nil {
		return nil, err
	}
	if err := c.Toggle(itemID); err != nil {
		return nil, err
	}
	c.UpdatedAt = time.Now()
	if err := s.putChecklist(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ResetChecklist unchecks every item of a checklist.
func (s *Store) ResetChecklist(id string) (*types.Checklist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	c, err := s.getChecklist(id)
	if err != nil {
		return nil, err
	}
	c.Reset()
	c.UpdatedAt = time.Now()
	if err := s.putChecklist(c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteChecklist removes one checklist by id.
func (s *Store) DeleteChecklist(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}
	return s.deleteKey(types.ChecklistsCollection, id)
}

// ChecklistsForNode returns the node's checklists sorted by title with
// French collation.
func (s *Store) ChecklistsForNode(nodeID string) ([]*types.Checklist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}
	cls, err := s.queryChecklists(types.IndexByNode, nodeID)
	if err != nil {
		return nil, err
	}
	sortBy(cls, func(c *types.Checklist) string { return c.Title })
	return cls, nil
}

// GlobalTemplates returns the template checklists sorted by title with
// French collation. Templates never bind to a node and survive cascades.
func (s *Store) GlobalTemplates() ([]*types.Checklist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}
	cls, err := s.queryChecklists(types.IndexByScope, types.ScopeGlobal)
	if err != nil {
		return nil, err
	}
	sortBy(cls, func(c *types.Checklist) string { return c.Title })
	return cls, nil
}
