// Intervention log tests: input normalization on add, per-node history
// ordering and the recent-across-all-nodes query.
package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electroterrain/fieldlog/pkg/types"
)

func TestAddInterventionNormalizesInput(t *testing.T) {
	s := newTestStore(t)

	iv, err := s.AddIntervention(types.Intervention{
		NodeID:      "n1",
		DurationMin: -10,
		Category:    "bogus",
		Status:      "",
		Symptom:     "  bruit anormal  ",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, iv.ID)
	assert.False(t, iv.CreatedAt.IsZero())
	assert.Equal(t, float64(0), iv.DurationMin)
	assert.Equal(t, types.CategoryFault, iv.Category)
	assert.Equal(t, types.StatusOK, iv.Status)
	assert.Equal(t, "bruit anormal", iv.Symptom)
	assert.NotNil(t, iv.Tags)

	got, err := s.Get(types.InterventionsCollection, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, iv.Symptom, got.(*types.Intervention).Symptom)
}

func TestInterventionsForNodeNewestFirst(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i, symptom := range []string{"premier", "deuxième", "troisième"} {
		iv := &types.Intervention{
			ID:        newID(),
			NodeID:    "n1",
			Symptom:   symptom,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, s.Put(types.InterventionsCollection, iv))
	}
	require.NoError(t, s.Put(types.InterventionsCollection, &types.Intervention{
		ID:        newID(),
		NodeID:    "other",
		Symptom:   "ailleurs",
		CreatedAt: base.Add(10 * time.Hour),
	}))

	ivs, err := s.InterventionsForNode("n1")
	require.NoError(t, err)
	require.Len(t, ivs, 3)
	assert.Equal(t, "troisième", ivs[0].Symptom)
	assert.Equal(t, "deuxième", ivs[1].Symptom)
	assert.Equal(t, "premier", ivs[2].Symptom)
}

func TestRecentInterventionsOrderAndLimit(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for _, offset := range []int{100, 300, 200} {
		iv := &types.Intervention{
			ID:        newID(),
			NodeID:    "n1",
			Symptom:   "t+" + time.Duration(offset).String(),
			CreatedAt: base.Add(time.Duration(offset) * time.Millisecond),
		}
		require.NoError(t, s.Put(types.InterventionsCollection, iv))
	}

	ivs, err := s.RecentInterventions(2)
	require.NoError(t, err)
	require.Len(t, ivs, 2)
	assert.Equal(t, base.Add(300*time.Millisecond), ivs[0].CreatedAt)
	assert.Equal(t, base.Add(200*time.Millisecond), ivs[1].CreatedAt)
}

func TestRecentInterventionsNonPositiveLimit(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddIntervention(types.Intervention{NodeID: "n1"})
	require.NoError(t, err)

	for _, limit := range []int{0, -1} {
		ivs, err := s.RecentInterventions(limit)
		require.NoError(t, err)
		assert.NotNil(t, ivs)
		assert.Empty(t, ivs)
	}
}

func TestRecentInterventionsLimitPastEnd(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddIntervention(types.Intervention{NodeID: "n1"})
	require.NoError(t, err)

	ivs, err := s.RecentInterventions(50)
	require.NoError(t, err)
	assert.Len(t, ivs, 1)
}
