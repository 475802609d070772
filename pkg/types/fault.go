package types

import (
	"errors"
	"strings"
	"time"
)

// Fault is a personal reference-table row for a vendor fault code: what it
// means, likely causes and recommended actions. Independent of the
// equipment tree, freely added, edited and deleted.
type Fault struct {
	ID        string    `json:"id"`
	Vendor    string    `json:"vendor"`
	Product   string    `json:"product"`
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Causes    string    `json:"causes"`
	Actions   string    `json:"actions"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Fault validation errors.
var (
	ErrFaultVendor  = errors.New("fault vendor is required")
	ErrFaultProduct = errors.New("fault product is required")
	ErrFaultCode    = errors.New("fault code is required")
)

// Normalize trims the text fields and upper-cases the code.
func (f *Fault) Normalize() {
	f.Vendor = strings.TrimSpace(f.Vendor)
	f.Product = strings.TrimSpace(f.Product)
	f.Code = strings.ToUpper(strings.TrimSpace(f.Code))
	f.Title = strings.TrimSpace(f.Title)
	f.Causes = strings.TrimSpace(f.Causes)
	f.Actions = strings.TrimSpace(f.Actions)
	f.Notes = strings.TrimSpace(f.Notes)
}

// Validate checks required fields after normalization.
func (f *Fault) Validate() error {
	if f.Vendor == "" {
		return ErrFaultVendor
	}
	if f.Product == "" {
		return ErrFaultProduct
	}
	if f.Code == "" {
		return ErrFaultCode
	}
	return nil
}

// FaultPatch names the mutable fields of a Fault. Nil fields are left
// untouched.
type FaultPatch struct {
	Vendor  *string
	Product *string
	Code    *string
	Title   *string
	Causes  *string
	Actions *string
	Notes   *string
}

// Apply overwrites the fault's mutable fields from the patch.
func (p FaultPatch) Apply(f *Fault) {
	if p.Vendor != nil {
		f.Vendor = *p.Vendor
	}
	if p.Product != nil {
		f.Product = *p.Product
	}
	if p.Code != nil {
		f.Code = *p.Code
	}
	if p.Title != nil {
		f.Title = *p.Title
	}
	if p.Causes != nil {
		f.Causes = *p.Causes
	}
	if p.Actions != nil {
		f.Actions = *p.Actions
	}
	if p.Notes != nil {
		f.Notes = *p.Notes
	}
}

// SearchText returns the concatenated text fields used for substring search.
func (f *Fault) SearchText() string {
	return strings.ToLower(strings.Join([]string{
		f.Vendor, f.Product, f.Code, f.Title, f.Causes, f.Actions, f.Notes,
	}, " "))
}
