package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemsPositionalIDs(t *testing.T) {
	items := NewItems([]string{"premier", "deuxième"})
	require.Len(t, items, 2)
	assert.Equal(t, ChecklistItem{ID: "0", Text: "premier"}, items[0])
	assert.Equal(t, ChecklistItem{ID: "1", Text: "deuxième"}, items[1])

	assert.Empty(t, NewItems(nil))
}

func TestChecklistToggle(t *testing.T) {
	c := &Checklist{Items: NewItems([]string{"a", "b"})}

	require.NoError(t, c.Toggle("1"))
	assert.False(t, c.Items[0].Checked)
	assert.True(t, c.Items[1].Checked)
	assert.False(t, c.UpdatedAt.IsZero())

	require.NoError(t, c.Toggle("1"))
	assert.False(t, c.Items[1].Checked)

	assert.ErrorIs(t, c.Toggle("missing"), ErrItemNotFound)
}

func TestChecklistReset(t *testing.T) {
	c := &Checklist{Items: NewItems([]string{"a", "b", "c"})}
	require.NoError(t, c.Toggle("0"))
	require.NoError(t, c.Toggle("2"))

	c.Reset()
	for _, item := range c.Items {
		assert.False(t, item.Checked)
	}
}
