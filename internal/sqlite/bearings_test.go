package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electroterrain/fieldlog/pkg/types"
)

func TestAddBearingStampsAndStores(t *testing.T) {
	s := newTestStore(t)

	d := 20.0
	b, err := s.AddBearing(types.Bearing{Ref: "  6204 2RS ", D: &d, Type: "rigide à billes"})
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, "6204 2RS", b.Ref)

	got, err := s.Get(types.BearingsCollection, b.ID)
	require.NoError(t, err)
	gotBearing := got.(*types.Bearing)
	require.NotNil(t, gotBearing.D)
	assert.Equal(t, 20.0, *gotBearing.D)
	assert.Nil(t, gotBearing.OD)
	assert.Nil(t, gotBearing.B)
}

func TestAddBearingRequiresRef(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddBearing(types.Bearing{Ref: "   "})
	require.ErrorIs(t, err, types.ErrBearingRef)

	bearings, err := s.Bearings()
	require.NoError(t, err)
	assert.Empty(t, bearings, "nothing written on a validation failure")
}

func TestBearingsSortedByRef(t *testing.T) {
	s := newTestStore(t)

	for _, ref := range []string{"NU 206", "6204 2RS", "22210 E"} {
		_, err := s.AddBearing(types.Bearing{Ref: ref})
		require.NoError(t, err)
	}

	bearings, err := s.Bearings()
	require.NoError(t, err)
	require.Len(t, bearings, 3)
	assert.Equal(t, "22210 E", bearings[0].Ref)
	assert.Equal(t, "6204 2RS", bearings[1].Ref)
	assert.Equal(t, "NU 206", bearings[2].Ref)
}

func TestSearchBearings(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureSeed())

	matched, err := s.SearchBearings("6204")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "6204 2RS", matched[0].Ref)

	matched, err = s.SearchBearings("ROULEAUX")
	require.NoError(t, err)
	assert.Len(t, matched, 2, "search is case-insensitive over type and note")

	matched, err = s.SearchBearings("")
	require.NoError(t, err)
	assert.Len(t, matched, 5, "empty query matches all")

	matched, err = s.SearchBearings("zzz-introuvable")
	require.NoError(t, err)
	assert.NotNil(t, matched)
	assert.Empty(t, matched)
}

func TestUpdateBearingPatchesAndRevalidates(t *testing.T) {
	s := newTestStore(t)

	b, err := s.AddBearing(types.Bearing{Ref: "6204 2RS", Type: "rigide à billes"})
	require.NoError(t, err)

	d := 20.0
	note := "très courant moteurs"
	updated, err := s.UpdateBearing(b.ID, types.BearingPatch{D: &d, Note: &note})
	require.NoError(t, err)
	require.NotNil(t, updated.D)
	assert.Equal(t, 20.0, *updated.D)
	assert.Equal(t, "très courant moteurs", updated.Note)
	assert.Equal(t, "6204 2RS", updated.Ref, "unpatched fields survive")
	assert.Equal(t, "rigide à billes", updated.Type)

	empty := "   "
	_, err = s.UpdateBearing(b.ID, types.BearingPatch{Ref: &empty})
	require.ErrorIs(t, err, types.ErrBearingRef)

	got, err := s.Get(types.BearingsCollection, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "6204 2RS", got.(*types.Bearing).Ref, "failed update leaves the record intact")
}

func TestUpdateBearingMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	note := "x"
	_, err := s.UpdateBearing("no-such-id", types.BearingPatch{Note: &note})
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteBearing(t *testing.T) {
	s := newTestStore(t)

	b, err := s.AddBearing(types.Bearing{Ref: "6305 ZZ"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteBearing(b.ID))

	_, err = s.Get(types.BearingsCollection, b.ID)
	require.ErrorIs(t, err, types.ErrNotFound)
	require.NoError(t, s.DeleteBearing(b.ID), "deleting a missing ID is not an error")
}
