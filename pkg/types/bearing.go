package types

import (
	"errors"
	"strings"
	"time"
)

// Bearing is a personal reference-table row for a bearing catalog code and
// its dimensions. It has no relation to the equipment tree.
type Bearing struct {
	ID        string    `json:"id"`
	Ref       string    `json:"ref"`
	D         *float64  `json:"d"` // bore diameter, mm
	OD        *float64  `json:"D"` // outer diameter, mm
	B         *float64  `json:"B"` // width, mm
	Type      string    `json:"type"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrBearingRef reports a missing catalog reference on add.
var ErrBearingRef = errors.New("bearing ref is required")

// Normalize trims the text fields.
func (b *Bearing) Normalize() {
	b.Ref = strings.TrimSpace(b.Ref)
	b.Type = strings.TrimSpace(b.Type)
	b.Note = strings.TrimSpace(b.Note)
}

// Validate checks required fields after normalization.
func (b *Bearing) Validate() error {
	if b.Ref == "" {
		return ErrBearingRef
	}
	return nil
}

// BearingPatch names the mutable fields of a Bearing. Nil fields are left
// untouched; a dimension can be set or replaced but not cleared back to
// unknown.
type BearingPatch struct {
	Ref  *string
	D    *float64
	OD   *float64
	B    *float64
	Type *string
	Note *string
}

// Apply overwrites the bearing's mutable fields from the patch.
func (p BearingPatch) Apply(b *Bearing) {
	if p.Ref != nil {
		b.Ref = *p.Ref
	}
	if p.D != nil {
		b.D = p.D
	}
	if p.OD != nil {
		b.OD = p.OD
	}
	if p.B != nil {
		b.B = p.B
	}
	if p.Type != nil {
		b.Type = *p.Type
	}
	if p.Note != nil {
		b.Note = *p.Note
	}
}

// SearchText returns the concatenated text fields used for substring search.
func (b *Bearing) SearchText() string {
	return strings.ToLower(b.Ref + " " + b.Type + " " + b.Note)
}
