// Generic engine primitives: get, put, delete, list, query-by-index. Each
// call is one short-lived, implicitly committed transaction scoped to a
// single collection. Storage errors propagate to the caller; no retries
// happen at this layer.
package sqlite

import (
	"fmt"

	"github.com/electroterrain/fieldlog/pkg/types"
)

// keyColumns maps each collection to its primary key column.
var keyColumns = map[string]string{
	types.NodesCollection:         "id",
	types.InterventionsCollection: "id",
	types.ChecklistsCollection:    "id",
	types.SettingsCollection:      "key",
	types.BearingsCollection:      "id",
	types.FaultsCollection:        "id",
}

// Get retrieves the record with the given key.
// Returns types.ErrNotFound if no record exists.
func (s *Store) Get(collection, key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}
	if key == "" {
		return nil, types.ErrInvalidID
	}

	switch collection {
	case types.NodesCollection:
		return s.getNode(key)
	case types.InterventionsCollection:
		return s.getIntervention(key)
	case types.ChecklistsCollection:
		return s.getChecklist(key)
	case types.SettingsCollection:
		return s.getSettingRecord(key)
	case types.BearingsCollection:
		return s.getBearing(key)
	case types.FaultsCollection:
		return s.getFault(key)
	default:
		return nil, types.ErrUnknownCollection
	}
}

// Put inserts or replaces a record keyed by its primary key field. The
// record must be the pointer type matching the collection.
func (s *Store) Put(collection string, record any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}
	return s.put(collection, record)
}

// put is Put without locking, for callers already holding s.mu.
func (s *Store) put(collection string, record any) error {
	switch collection {
	case types.NodesCollection:
		n, ok := record.(*types.Node)
		if !ok {
			return types.ErrInvalidData
		}
		return s.putNode(n)
	case types.InterventionsCollection:
		i, ok := record.(*types.Intervention)
		if !ok {
			return types.ErrInvalidData
		}
		return s.putIntervention(i)
	case types.ChecklistsCollection:
		c, ok := record.(*types.Checklist)
		if !ok {
			return types.ErrInvalidData
		}
		return s.putChecklist(c)
	case types.SettingsCollection:
		st, ok := record.(*types.Setting)
		if !ok {
			return types.ErrInvalidData
		}
		return s.putSetting(st)
	case types.BearingsCollection:
		b, ok := record.(*types.Bearing)
		if !ok {
			return types.ErrInvalidData
		}
		return s.putBearing(b)
	case types.FaultsCollection:
		f, ok := record.(*types.Fault)
		if !ok {
			return types.ErrInvalidData
		}
		return s.putFault(f)
	default:
		return types.ErrUnknownCollection
	}
}

// Delete removes the record with the given key. Deleting a missing key is
// not an error.
func (s *Store) Delete(collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}
	return s.deleteKey(collection, key)
}

// deleteKey is Delete without locking, for callers already holding s.mu.
func (s *Store) deleteKey(collection, key string) error {
	col, ok := keyColumns[collection]
	if !ok {
		return types.ErrUnknownCollection
	}
	if key == "" {
		return types.ErrInvalidID
	}
	if _, err := s.db.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE %s = ?", collection, col), key); err != nil {
		return fmt.Errorf("deleting from %s: %w", collection, err)
	}
	return nil
}

// List returns every record in the collection, in storage order. Callers
// sort as needed.
func (s *Store) List(collection string) ([]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	switch collection {
	case types.NodesCollection:
		nodes, err := s.listNodes()
		return anySlice(nodes), err
	case types.InterventionsCollection:
		ivs, err := s.listInterventions()
		return anySlice(ivs), err
	case types.ChecklistsCollection:
		cls, err := s.listChecklists()
		return anySlice(cls), err
	case types.SettingsCollection:
		sts, err := s.listSettings()
		return anySlice(sts), err
	case types.BearingsCollection:
		bs, err := s.listBearings()
		return anySlice(bs), err
	case types.FaultsCollection:
		fs, err := s.listFaults()
		return anySlice(fs), err
	default:
		return nil, types.ErrUnknownCollection
	}
}

// QueryByIndex returns the records whose indexed field equals value. A nil
// value matches records where the indexed field is null (root nodes,
// template checklists). A value no record has yields an empty slice.
func (s *Store) QueryByIndex(collection, index string, value any) ([]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	switch collection {
	case types.NodesCollection:
		nodes, err := s.queryNodes(index, value)
		return anySlice(nodes), err
	case types.InterventionsCollection:
		ivs, err := s.queryInterventions(index, value)
		return anySlice(ivs), err
	case types.ChecklistsCollection:
		cls, err := s.queryChecklists(index, value)
		return anySlice(cls), err
	case types.SettingsCollection, types.BearingsCollection, types.FaultsCollection:
		return nil, types.ErrUnknownIndex
	default:
		return nil, types.ErrUnknownCollection
	}
}

// indexedWhere builds the WHERE clause and arguments for an equality lookup
// on an indexed column, treating nil as IS NULL.
func indexedWhere(column string, value any) (string, []any) {
	if value == nil {
		return column + " IS NULL", nil
	}
	return column + " = ?", []any{value}
}

// anySlice converts a typed record slice to []any, preserving an empty
// (non-nil) result for empty inputs.
func anySlice[T any](records []T) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}
