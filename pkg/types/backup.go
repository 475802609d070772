package types

import (
	"errors"
	"time"
)

// BackupVersion is the format version written by ExportAll and the only
// version ImportAll accepts.
const BackupVersion = 1

// Backup is the whole-database export payload. Reference tables (bearings,
// faults) are excluded by policy: they are personal knowledge data kept
// across restores, not part of the logbook state. All four arrays are
// optional on import and default to empty.
type Backup struct {
	Version       int             `json:"version"`
	ExportedAt    time.Time       `json:"exportedAt"`
	Settings      []*Setting      `json:"settings"`
	Nodes         []*Node         `json:"nodes"`
	Interventions []*Intervention `json:"interventions"`
	Checklists    []*Checklist    `json:"checklists"`
}

// Backup validation errors.
var (
	ErrBackupNil     = errors.New("backup payload is empty")
	ErrBackupVersion = errors.New("unsupported backup version")
)

// Validate checks that the payload is importable.
func (b *Backup) Validate() error {
	if b == nil {
		return ErrBackupNil
	}
	if b.Version != BackupVersion {
		return ErrBackupVersion
	}
	return nil
}
