package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFaultNormalizeAndValidate(t *testing.T) {
	f := &Fault{Vendor: " Schneider ", Product: " ATV320 ", Code: " ocf "}
	f.Normalize()
	assert.Equal(t, "Schneider", f.Vendor)
	assert.Equal(t, "ATV320", f.Product)
	assert.Equal(t, "OCF", f.Code)
	assert.NoError(t, f.Validate())

	assert.ErrorIs(t, (&Fault{Product: "p", Code: "c"}).Validate(), ErrFaultVendor)
	assert.ErrorIs(t, (&Fault{Vendor: "v", Code: "c"}).Validate(), ErrFaultProduct)
	assert.ErrorIs(t, (&Fault{Vendor: "v", Product: "p"}).Validate(), ErrFaultCode)
}

func TestFaultPatchApply(t *testing.T) {
	f := &Fault{Vendor: "Siemens", Product: "S7-1200", Code: "F0001", Title: "old"}

	FaultPatch{}.Apply(f)
	assert.Equal(t, "old", f.Title)

	title := "new"
	notes := "voir schéma"
	FaultPatch{Title: &title, Notes: &notes}.Apply(f)
	assert.Equal(t, "new", f.Title)
	assert.Equal(t, "voir schéma", f.Notes)
	assert.Equal(t, "Siemens", f.Vendor)
}

func TestFaultSearchText(t *testing.T) {
	f := &Fault{Vendor: "Siemens", Product: "S7-1200", Code: "F0001", Title: "Surintensité"}
	text := f.SearchText()
	assert.Contains(t, text, "siemens")
	assert.Contains(t, text, "f0001")
	assert.Contains(t, text, "surintensité")
}
