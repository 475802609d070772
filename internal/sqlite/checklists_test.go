// Checklist tests: node instances, template cloning, item toggling and the
// template listing.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electroterrain/fieldlog/pkg/types"
)

func TestSetChecklistForNode(t *testing.T) {
	s := newTestStore(t)

	c, err := s.SetChecklistForNode("n1", "Ronde quotidienne", []string{"niveau huile", "bruit"})
	require.NoError(t, err)
	assert.Equal(t, types.ScopeNode, c.Scope)
	require.NotNil(t, c.NodeID)
	assert.Equal(t, "n1", *c.NodeID)
	require.Len(t, c.Items, 2)
	assert.Equal(t, "0", c.Items[0].ID)
	assert.Equal(t, "niveau huile", c.Items[0].Text)
	assert.False(t, c.Items[0].Checked)

	got, err := s.Get(types.ChecklistsCollection, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Title, got.(*types.Checklist).Title)
}

func TestCloneTemplateResetsChecks(t *testing.T) {
	s := newTestStore(t)

	tpl := &types.Checklist{
		ID:    newID(),
		Scope: types.ScopeGlobal,
		Title: "Contrôle capteur (base)",
		Items: []types.ChecklistItem{
			{ID: "0", Text: "Vérifier alimentation", Checked: true},
			{ID: "1", Text: "Vérifier câblage"},
		},
	}
	require.NoError(t, s.Put(types.ChecklistsCollection, tpl))

	c, err := s.CloneTemplate(tpl.ID, "n1")
	require.NoError(t, err)
	assert.NotEqual(t, tpl.ID, c.ID)
	assert.Equal(t, types.ScopeNode, c.Scope)
	require.NotNil(t, c.NodeID)
	assert.Equal(t, "n1", *c.NodeID)
	assert.Equal(t, tpl.Title, c.Title)
	require.Len(t, c.Items, 2)
	for _, item := range c.Items {
		assert.False(t, item.Checked)
	}
}

func TestCloneTemplateMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CloneTemplate("no-such-id", "n1")
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestToggleChecklistItem(t *testing.T) {
	s := newTestStore(t)

	c, err := s.SetChecklistForNode("n1", "Ronde", []string{"a", "b"})
	require.NoError(t, err)

	toggled, err := s.ToggleChecklistItem(c.ID, "1")
	require.NoError(t, err)
	assert.False(t, toggled.Items[0].Checked)
	assert.True(t, toggled.Items[1].Checked)

	toggled, err = s.ToggleChecklistItem(c.ID, "1")
	require.NoError(t, err)
	assert.False(t, toggled.Items[1].Checked, "second toggle flips back")

	_, err = s.ToggleChecklistItem(c.ID, "9")
	assert.ErrorIs(t, err, types.ErrItemNotFound)
}

func TestResetChecklist(t *testing.T) {
	s := newTestStore(t)

	c, err := s.SetChecklistForNode("n1", "Ronde", []string{"a", "b"})
	require.NoError(t, err)
	_, err = s.ToggleChecklistItem(c.ID, "0")
	require.NoError(t, err)
	_, err = s.ToggleChecklistItem(c.ID, "1")
	require.NoError(t, err)

	reset, err := s.ResetChecklist(c.ID)
	require.NoError(t, err)
	for _, item := range reset.Items {
		assert.False(t, item.Checked)
	}
}

func TestGlobalTemplatesExcludesNodeChecklists(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put(types.ChecklistsCollection, &types.Checklist{
		ID:    newID(),
		Scope: types.ScopeGlobal,
		Title: "Remise en service (base)",
	}))
	require.NoError(t, s.Put(types.ChecklistsCollection, &types.Checklist{
		ID:    newID(),
		Scope: types.ScopeGlobal,
		Title: "Consignation / LOTO (base)",
	}))
	_, err := s.SetChecklistForNode("n1", "Ronde", nil)
	require.NoError(t, err)

	tpls, err := s.GlobalTemplates()
	require.NoError(t, err)
	require.Len(t, tpls, 2)
	assert.Equal(t, "Consignation / LOTO (base)", tpls[0].Title)
	assert.Equal(t, "Remise en service (base)", tpls[1].Title)
}

func TestDeleteChecklist(t *testing.T) {
	s := newTestStore(t)

	c, err := s.SetChecklistForNode("n1", "Ronde", []string{"a"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteChecklist(c.ID))

	_, err = s.Get(types.ChecklistsCollection, c.ID)
	require.ErrorIs(t, err, types.ErrNotFound)
}
