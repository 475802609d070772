// Export/import tests: payload shape, the destructive round trip, version
// rejection and the reference-table exclusion.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electroterrain/fieldlog/pkg/types"
)

func TestExportAllSnapshotsLogbookState(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureSeed())

	backup, err := s.ExportAll()
	require.NoError(t, err)
	assert.Equal(t, types.BackupVersion, backup.Version)
	assert.False(t, backup.ExportedAt.IsZero())
	assert.Len(t, backup.Nodes, 5)
	assert.Len(t, backup.Checklists, 3)
	assert.NotEmpty(t, backup.Settings)
	assert.NotNil(t, backup.Interventions)
}

func TestImportRoundTripRestoresState(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureSeed())

	roots, err := s.ChildrenOf(nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	machine, err := s.CreateNode(&roots[0].ID, 3, "Broyeur", nil)
	require.NoError(t, err)
	iv, err := s.AddIntervention(types.Intervention{NodeID: machine.ID, Symptom: "bruit"})
	require.NoError(t, err)

	backup, err := s.ExportAll()
	require.NoError(t, err)

	// Wreck the live state, then restore.
	_, err = s.DeleteNodeCascade(roots[0].ID)
	require.NoError(t, err)
	require.NoError(t, s.SetSetting("theme", "sombre"))

	require.NoError(t, s.ImportAll(backup))

	roots, err = s.ChildrenOf(nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "Usine A", roots[0].Name)

	got, err := s.Get(types.InterventionsCollection, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, "bruit", got.(*types.Intervention).Symptom)

	// The import replaces the settings wholesale; the post-export write is
	// gone and the seeded guard holds.
	theme, err := s.GetSetting("theme", "absent")
	require.NoError(t, err)
	assert.Equal(t, "absent", theme)
	seeded, err := s.GetSetting(types.SettingSeeded, false)
	require.NoError(t, err)
	assert.Equal(t, true, seeded)
}

func TestImportSetsSeededGuardOnEmptyPayload(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.ImportAll(&types.Backup{Version: types.BackupVersion}))
	require.NoError(t, s.EnsureSeed())

	// Import marked the store seeded, so EnsureSeed must not write the
	// starter dataset over the restored (empty) logbook.
	nodes, err := s.List(types.NodesCollection)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestImportLeavesReferenceTablesAlone(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureSeed())

	backup, err := s.ExportAll()
	require.NoError(t, err)

	added, err := s.AddBearing(types.Bearing{Ref: "6010 2RS"})
	require.NoError(t, err)
	require.NoError(t, s.ImportAll(backup))

	_, err = s.Get(types.BearingsCollection, added.ID)
	assert.NoError(t, err, "bearings are not part of the backup payload")

	faults, err := s.Faults()
	require.NoError(t, err)
	assert.Len(t, faults, 4)
}

func TestImportRejectsBadPayload(t *testing.T) {
	s := newTestStore(t)

	err := s.ImportAll(nil)
	assert.ErrorIs(t, err, types.ErrBackupNil)

	err = s.ImportAll(&types.Backup{Version: 99})
	assert.ErrorIs(t, err, types.ErrBackupVersion)
}
