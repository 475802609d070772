// Whole-database export and import. The payload covers settings, nodes,
// interventions and checklists; the bearing and fault reference tables are
// excluded by policy (personal knowledge data survives a restore).
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/electroterrain/fieldlog/pkg/types"
)

// ExportAll snapshots the logbook state into a backup payload.
func (s *Store) ExportAll() (*types.Backup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	settings, err := s.listSettings()
	if err != nil {
		return nil, err
	}
	nodes, err := s.listNodes()
	if err != nil {
		return nil, err
	}
	interventions, err := s.listInterventions()
	if err != nil {
		return nil, err
	}
	checklists, err := s.listChecklists()
	if err != nil {
		return nil, err
	}

	return &types.Backup{
		Version:       types.BackupVersion,
		ExportedAt:    time.Now().UTC(),
		Settings:      settings,
		Nodes:         nodes,
		Interventions: interventions,
		Checklists:    checklists,
	}, nil
}

// ImportAll destructively replaces the logbook state with the payload:
// settings, nodes, interventions and checklists are wiped and reloaded, and
// the seeded flag is set so the next startup does not re-seed over the
// restored data. The whole replace runs in one transaction — an interrupted
// import leaves the previous state intact, never a mix.
func (s *Store) ImportAll(backup *types.Backup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}
	if err := backup.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting import: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"settings", "nodes", "interventions", "checklists"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("wiping %s: %w", table, err)
		}
	}

	for _, st := range backup.Settings {
		if err := txPutSetting(tx, st); err != nil {
			return err
		}
	}
	for _, n := range backup.Nodes {
		if err := txPutNode(tx, n); err != nil {
			return err
		}
	}
	for _, iv := range backup.Interventions {
		if err := txPutIntervention(tx, iv); err != nil {
			return err
		}
	}
	for _, c := range backup.Checklists {
		if err := txPutChecklist(tx, c); err != nil {
			return err
		}
	}
	if err := txPutSetting(tx, &types.Setting{Key: types.SettingSeeded, Value: true}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}

	s.log.Info().
		Int("nodes", len(backup.Nodes)).
		Int("interventions", len(backup.Interventions)).
		Int("checklists", len(backup.Checklists)).
		Msg("import complete")
	return nil
}

// Transaction-scoped insert helpers shared by import and seeding.

func txPutSetting(tx *sql.Tx, st *types.Setting) error {
	valueJSON, err := json.Marshal(st.Value)
	if err != nil {
		return fmt.Errorf("marshaling setting value: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)",
		st.Key, string(valueJSON)); err != nil {
		return fmt.Errorf("inserting setting %s: %w", st.Key, err)
	}
	return nil
}

func txPutNode(tx *sql.Tx, n *types.Node) error {
	meta := n.Meta
	if meta == nil {
		meta = map[string]string{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshaling node meta: %w", err)
	}
	var parentID sql.NullString
	if n.ParentID != nil {
		parentID = sql.NullString{String: *n.ParentID, Valid: true}
	}
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO nodes (id, type, level, parent_id, name, created_at, meta)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Type, n.Level, parentID, n.Name,
		formatTime(n.CreatedAt), string(metaJSON)); err != nil {
		return fmt.Errorf("inserting node %s: %w", n.ID, err)
	}
	return nil
}

func txPutIntervention(tx *sql.Tx, iv *types.Intervention) error {
	tags := iv.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("marshaling intervention tags: %w", err)
	}
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO interventions
		(id, created_at, duration_min, category, symptom, action, cause, parts, status, tags, node_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		iv.ID, formatTime(iv.CreatedAt), iv.DurationMin, iv.Category, iv.Symptom,
		iv.Action, iv.Cause, iv.Parts, iv.Status, string(tagsJSON), iv.NodeID); err != nil {
		return fmt.Errorf("inserting intervention %s: %w", iv.ID, err)
	}
	return nil
}

func txPutChecklist(tx *sql.Tx, c *types.Checklist) error {
	items := c.Items
	if items == nil {
		items = []types.ChecklistItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshaling checklist items: %w", err)
	}
	var nodeID sql.NullString
	if c.NodeID != nil {
		nodeID = sql.NullString{String: *c.NodeID, Valid: true}
	}
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO checklists (id, scope, node_id, title, items, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Scope, nodeID, c.Title, string(itemsJSON), formatTime(c.UpdatedAt)); err != nil {
		return fmt.Errorf("inserting checklist %s: %w", c.ID, err)
	}
	return nil
}
