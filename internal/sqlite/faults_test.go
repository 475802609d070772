package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electroterrain/fieldlog/pkg/types"
)

func TestAddFaultNormalizesAndStamps(t *testing.T) {
	s := newTestStore(t)

	f, err := s.AddFault(types.Fault{
		Vendor:  " Schneider ",
		Product: "ATV320",
		Code:    " ocf ",
		Title:   "Surintensité",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "Schneider", f.Vendor)
	assert.Equal(t, "OCF", f.Code, "codes are upper-cased on write")
	assert.False(t, f.CreatedAt.IsZero())
	assert.Equal(t, f.CreatedAt, f.UpdatedAt)
}

func TestAddFaultValidatesRequiredFields(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name    string
		fault   types.Fault
		wantErr error
	}{
		{"missing vendor", types.Fault{Product: "p", Code: "c"}, types.ErrFaultVendor},
		{"missing product", types.Fault{Vendor: "v", Code: "c"}, types.ErrFaultProduct},
		{"missing code", types.Fault{Vendor: "v", Product: "p"}, types.ErrFaultCode},
		{"blank code", types.Fault{Vendor: "v", Product: "p", Code: "   "}, types.ErrFaultCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddFault(tt.fault)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	faults, err := s.Faults()
	require.NoError(t, err)
	assert.Empty(t, faults, "nothing written on validation failures")
}

func TestFaultsSortedByVendorProductCode(t *testing.T) {
	s := newTestStore(t)

	rows := []types.Fault{
		{Vendor: "Siemens", Product: "SINAMICS G120", Code: "F30002"},
		{Vendor: "Schneider", Product: "ATV320", Code: "OHF"},
		{Vendor: "Schneider", Product: "ATV320", Code: "OCF"},
	}
	for _, row := range rows {
		_, err := s.AddFault(row)
		require.NoError(t, err)
	}

	faults, err := s.Faults()
	require.NoError(t, err)
	require.Len(t, faults, 3)
	assert.Equal(t, "OCF", faults[0].Code)
	assert.Equal(t, "OHF", faults[1].Code)
	assert.Equal(t, "Siemens", faults[2].Vendor)
}

func TestSearchFaultsFiltersAndMatches(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.EnsureSeed())

	matched, err := s.SearchFaults("surintensité", "", "")
	require.NoError(t, err)
	assert.Len(t, matched, 2, "matches titles case-insensitively")

	matched, err = s.SearchFaults("", "schneider", "")
	require.NoError(t, err)
	assert.Len(t, matched, 2, "vendor filter is exact but case-insensitive")

	matched, err = s.SearchFaults("surintensité", "Schneider", "ATV320")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "OCF", matched[0].Code)

	matched, err = s.SearchFaults("introuvable", "", "")
	require.NoError(t, err)
	assert.NotNil(t, matched)
	assert.Empty(t, matched)
}

func TestUpdateFaultPatchesAndRevalidates(t *testing.T) {
	s := newTestStore(t)

	f, err := s.AddFault(types.Fault{Vendor: "Siemens", Product: "S7-1200", Code: "F0001"})
	require.NoError(t, err)

	title := "Surintensité variateur"
	updated, err := s.UpdateFault(f.ID, types.FaultPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "F0001", updated.Code, "unpatched fields survive")

	empty := ""
	_, err = s.UpdateFault(f.ID, types.FaultPatch{Code: &empty})
	require.ErrorIs(t, err, types.ErrFaultCode)

	got, err := s.Get(types.FaultsCollection, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "F0001", got.(*types.Fault).Code, "failed update leaves the record intact")
}

func TestUpdateFaultMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)
	title := "x"
	_, err := s.UpdateFault("no-such-id", types.FaultPatch{Title: &title})
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestDeleteFault(t *testing.T) {
	s := newTestStore(t)

	f, err := s.AddFault(types.Fault{Vendor: "v", Product: "p", Code: "c"})
	require.NoError(t, err)
	require.NoError(t, s.DeleteFault(f.ID))

	_, err = s.Get(types.FaultsCollection, f.ID)
	require.ErrorIs(t, err, types.ErrNotFound)
	require.NoError(t, s.DeleteFault(f.ID))
}
