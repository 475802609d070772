// Tree operation tests: node creation with level-derived types, patching,
// locale-aware children listing and the cascade delete.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electroterrain/fieldlog/pkg/types"
)

func TestCreateNodeDerivesTypeFromLevel(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		level    int
		wantType string
	}{
		{-3, types.NodeTypeSite},
		{0, types.NodeTypeSite},
		{1, types.NodeTypeUnit},
		{2, types.NodeTypeLine},
		{3, types.NodeTypeMachine},
		{4, types.NodeTypeEquipment},
		{9, types.NodeTypeEquipment},
	}
	for _, tt := range tests {
		n, err := s.CreateNode(nil, tt.level, "n", nil)
		require.NoError(t, err)
		assert.Equal(t, tt.wantType, n.Type, "level %d", tt.level)
		assert.Equal(t, tt.level, n.Level)
	}
}

func TestCreateNodeStampsIdentityAndTime(t *testing.T) {
	s := newTestStore(t)

	n, err := s.CreateNode(nil, 0, "Usine A", map[string]string{"code": "A"})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.CreatedAt.IsZero())

	got, err := s.Get(types.NodesCollection, n.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"code": "A"}, got.(*types.Node).Meta)
}

func TestUpdateNodePatchesMutableFields(t *testing.T) {
	s := newTestStore(t)

	n, err := s.CreateNode(nil, 0, "old name", map[string]string{"keep": "1"})
	require.NoError(t, err)

	name := "new name"
	updated, err := s.UpdateNode(n.ID, types.NodePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "new name", updated.Name)
	assert.Equal(t, map[string]string{"keep": "1"}, updated.Meta, "nil meta leaves the bag untouched")

	updated, err = s.UpdateNode(n.ID, types.NodePatch{Meta: map[string]string{"code": "B"}})
	require.NoError(t, err)
	assert.Equal(t, "new name", updated.Name)
	assert.Equal(t, map[string]string{"code": "B"}, updated.Meta, "non-nil meta replaces the bag")
}

func TestUpdateNodeMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	name := "x"
	_, err := s.UpdateNode("no-such-id", types.NodePatch{Name: &name})
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestChildrenOfSortsWithFrenchCollation(t *testing.T) {
	s := newTestStore(t)

	parent, err := s.CreateNode(nil, 0, "Usine A", nil)
	require.NoError(t, err)

	// Byte order would put the accented name last; French collation slots
	// it between the other two.
	for _, name := range []string{"Zone froide", "Broyeur", "Échangeur"} {
		_, err := s.CreateNode(&parent.ID, 1, name, nil)
		require.NoError(t, err)
	}

	kids, err := s.ChildrenOf(&parent.ID)
	require.NoError(t, err)
	require.Len(t, kids, 3)
	assert.Equal(t, "Broyeur", kids[0].Name)
	assert.Equal(t, "Échangeur", kids[1].Name)
	assert.Equal(t, "Zone froide", kids[2].Name)
}

func TestChildrenOfNilReturnsRoots(t *testing.T) {
	s := newTestStore(t)

	root, err := s.CreateNode(nil, 0, "Usine A", nil)
	require.NoError(t, err)
	_, err = s.CreateNode(&root.ID, 1, "SFA 35", nil)
	require.NoError(t, err)

	roots, err := s.ChildrenOf(nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, root.ID, roots[0].ID)
}

func TestDeleteNodeCascadeRemovesSubtreeAndAttachments(t *testing.T) {
	s := newTestStore(t)

	site, err := s.CreateNode(nil, 0, "Usine A", nil)
	require.NoError(t, err)
	unit, err := s.CreateNode(&site.ID, 1, "SFA 35", nil)
	require.NoError(t, err)
	machine, err := s.CreateNode(&unit.ID, 3, "Broyeur", nil)
	require.NoError(t, err)
	other, err := s.CreateNode(nil, 0, "Usine B", nil)
	require.NoError(t, err)

	_, err = s.AddIntervention(types.Intervention{NodeID: machine.ID, Symptom: "bruit"})
	require.NoError(t, err)
	keptIv, err := s.AddIntervention(types.Intervention{NodeID: other.ID, Symptom: "fuite"})
	require.NoError(t, err)

	_, err = s.SetChecklistForNode(unit.ID, "Ronde", []string{"niveau huile"})
	require.NoError(t, err)

	removed, err := s.DeleteNodeCascade(unit.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	for _, id := range []string{unit.ID, machine.ID} {
		_, err := s.Get(types.NodesCollection, id)
		assert.ErrorIs(t, err, types.ErrNotFound)
	}
	_, err = s.Get(types.NodesCollection, site.ID)
	assert.NoError(t, err, "ancestors survive")
	_, err = s.Get(types.NodesCollection, other.ID)
	assert.NoError(t, err, "unrelated trees survive")

	ivs, err := s.List(types.InterventionsCollection)
	require.NoError(t, err)
	require.Len(t, ivs, 1)
	assert.Equal(t, keptIv.ID, ivs[0].(*types.Intervention).ID)

	cls, err := s.ChecklistsForNode(unit.ID)
	require.NoError(t, err)
	assert.Empty(t, cls)
}

func TestDeleteNodeCascadeSparesGlobalTemplates(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureSeed())

	roots, err := s.ChildrenOf(nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)

	before, err := s.GlobalTemplates()
	require.NoError(t, err)
	require.NotEmpty(t, before)

	_, err = s.DeleteNodeCascade(roots[0].ID)
	require.NoError(t, err)

	after, err := s.GlobalTemplates()
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestDeleteNodeCascadeDeepChain(t *testing.T) {
	s := newTestStore(t)

	top, err := s.CreateNode(nil, 0, "top", nil)
	require.NoError(t, err)
	parent := top
	for level := 1; level <= 6; level++ {
		child, err := s.CreateNode(&parent.ID, level, "child", nil)
		require.NoError(t, err)
		parent = child
	}

	removed, err := s.DeleteNodeCascade(top.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, removed)

	nodes, err := s.List(types.NodesCollection)
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestDeleteNodeCascadeEmptyIDIsInvalid(t *testing.T) {
	s := newTestStore(t)
	_, err := s.DeleteNodeCascade("")
	require.ErrorIs(t, err, types.ErrInvalidID)
}
