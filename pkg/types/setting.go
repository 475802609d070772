package types

// Setting is a singleton-per-key configuration record. Value holds any
// JSON-serializable scalar or composite: the ordered level-name list, the
// seeding-completed flag, and similar configuration.
type Setting struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Well-known setting keys.
const (
	SettingSeeded = "seeded"
	SettingLevels = "levels"
)

// DefaultLevels is the ordered list of hierarchy level display names written
// on first-run seeding.
var DefaultLevels = []string{"Site", "Unité", "Ligne", "Machine", "Équipement"}
