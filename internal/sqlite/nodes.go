// Node storage and the tree operations: create, patch, children lookup and
// cascade delete over the descendant set.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/electroterrain/fieldlog/pkg/types"
)

const nodeColumns = "id, type, level, parent_id, name, created_at, meta"

func scanNode(scan func(...any) error) (*types.Node, error) {
	var n types.Node
	var parentID sql.NullString
	var createdAt, metaJSON string
	if err := scan(&n.ID, &n.Type, &n.Level, &parentID, &n.Name, &createdAt, &metaJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("scanning node: %w", err)
	}
	if parentID.Valid {
		n.ParentID = &parentID.String
	}
	var err error
	n.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing node created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(metaJSON), &n.Meta); err != nil {
		return nil, fmt.Errorf("parsing node meta: %w", err)
	}
	return &n, nil
}

func (s *Store) getNode(id string) (*types.Node, error) {
	row := s.db.QueryRow("SELECT "+nodeColumns+" FROM nodes WHERE id = ?", id)
	return scanNode(row.Scan)
}

func (s *Store) putNode(n *types.Node) error {
	if n.ID == "" {
		return types.ErrInvalidID
	}
	if n.Meta == nil {
		n.Meta = map[string]string{}
	}
	metaJSON, err := json.Marshal(n.Meta)
	if err != nil {
		return fmt.Errorf("marshaling node meta: %w", err)
	}
	var parentID sql.NullString
	if n.ParentID != nil {
		parentID = sql.NullString{String: *n.ParentID, Valid: true}
	}
	if _, err := s.db.Exec(`
		INSERT OR REPLACE INTO nodes (id, type, level, parent_id, name, created_at, meta)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Type, n.Level, parentID, n.Name,
		formatTime(n.CreatedAt), string(metaJSON)); err != nil {
		return fmt.Errorf("upserting node: %w", err)
	}
	return nil
}

func (s *Store) listNodes() ([]*types.Node, error) {
	return s.selectNodes("SELECT " + nodeColumns + " FROM nodes")
}

func (s *Store) queryNodes(index string, value any) ([]*types.Node, error) {
	var column string
	switch index {
	case types.IndexByParent:
		column = "parent_id"
	case types.IndexByType:
		column = "type"
	default:
		return nil, types.ErrUnknownIndex
	}
	where, args := indexedWhere(column, value)
	return s.selectNodes("SELECT "+nodeColumns+" FROM nodes WHERE "+where, args...)
}

func (s *Store) selectNodes(query string, args ...any) ([]*types.Node, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching nodes: %w", err)
	}
	defer rows.Close()

	results := []*types.Node{}
	for rows.Next() {
		n, err := scanNode(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, n)
	}
	return results, rows.Err()
}

// CreateNode persists a new node at the given parent and level. The type is
// derived from the level (clamped to equipment past the known range). The
// caller is responsible for parentID referencing an existing node.
func (s *Store) CreateNode(parentID *string, level int, name string, meta map[string]string) (*types.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	if meta == nil {
		meta = map[string]string{}
	}
	n := &types.Node{
		ID:        newID(),
		Type:      types.TypeForLevel(level),
		Level:     level,
		ParentID:  parentID,
		Name:      name,
		CreatedAt: time.Now(),
		Meta:      meta,
	}
	if err := s.putNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// UpdateNode applies the patch to the node's mutable fields and persists it.
// Returns types.ErrNotFound if the node does not exist.
func (s *Store) UpdateNode(id string, patch types.NodePatch) (*types.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	n, err := s.getNode(id)
	if err != nil {
		return nil, err
	}
	patch.Apply(n)
	if err := s.putNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// ChildrenOf returns the direct children of parentID, sorted by name with
// French collation. A nil parentID returns the roots.
func (s *Store) ChildrenOf(parentID *string) ([]*types.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	var value any
	if parentID != nil {
		value = *parentID
	}
	kids, err := s.queryNodes(types.IndexByParent, value)
	if err != nil {
		return nil, err
	}
	sortBy(kids, func(n *types.Node) string { return n.Name })
	return kids, nil
}

// DeleteNodeCascade removes the node, every descendant, and every
// intervention and node-scoped checklist tied to any of them. Returns the
// number of nodes removed. The whole cascade runs in one transaction, so an
// interrupted delete leaves no dangling references.
func (s *Store) DeleteNodeCascade(nodeID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return 0, types.ErrStoreClosed
	}
	if nodeID == "" {
		return 0, types.ErrInvalidID
	}

	all, err := s.listNodes()
	if err != nil {
		return 0, err
	}

	// One pass builds the adjacency map; a walk from nodeID then collects
	// the descendant set in O(nodes) regardless of depth.
	children := make(map[string][]string, len(all))
	for _, n := range all {
		if n.ParentID != nil {
			children[*n.ParentID] = append(children[*n.ParentID], n.ID)
		}
	}
	doomed := []string{nodeID}
	for cursor := 0; cursor < len(doomed); cursor++ {
		doomed = append(doomed, children[doomed[cursor]]...)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting cascade: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(doomed)), ",")
	args := make([]any, len(doomed))
	for i, id := range doomed {
		args[i] = id
	}

	if _, err := tx.Exec(
		"DELETE FROM interventions WHERE node_id IN ("+placeholders+")", args...); err != nil {
		return 0, fmt.Errorf("deleting cascade interventions: %w", err)
	}
	if _, err := tx.Exec(
		"DELETE FROM checklists WHERE node_id IN ("+placeholders+")", args...); err != nil {
		return 0, fmt.Errorf("deleting cascade checklists: %w", err)
	}
	if _, err := tx.Exec(
		"DELETE FROM nodes WHERE id IN ("+placeholders+")", args...); err != nil {
		return 0, fmt.Errorf("deleting cascade nodes: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing cascade: %w", err)
	}

	s.log.Info().Str("node", nodeID).Int("removed", len(doomed)).Msg("cascade delete")
	return len(doomed), nil
}
