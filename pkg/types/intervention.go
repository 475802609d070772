package types

import (
	"strings"
	"time"
)

// Intervention categories.
const (
	CategoryFault       = "fault"
	CategoryPreventive  = "preventive"
	CategoryImprovement = "improvement"
)

// validCategories is the set of recognized category values.
var validCategories = map[string]bool{
	CategoryFault:       true,
	CategoryPreventive:  true,
	CategoryImprovement: true,
}

// Intervention statuses.
const (
	StatusOK             = "ok"
	StatusWatch          = "watch"
	StatusWaitingForPart = "waiting-for-part"
)

// validStatuses is the set of recognized status values.
var validStatuses = map[string]bool{
	StatusOK:             true,
	StatusWatch:          true,
	StatusWaitingForPart: true,
}

// Intervention is one maintenance log entry, bound to the node it was
// performed on. Records are immutable once written.
type Intervention struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	DurationMin float64   `json:"durationMin"`
	Category    string    `json:"category"`
	Symptom     string    `json:"symptom"`
	Action      string    `json:"action"`
	Cause       string    `json:"cause"`
	Parts       string    `json:"parts"`
	Status      string    `json:"status"`
	Tags        []string  `json:"tags"`
	NodeID      string    `json:"nodeId"`
}

// Normalize brings user input into storable shape: negative durations
// become 0, text fields are trimmed, unknown or empty category and status
// fall back to their defaults, nil tags become an empty set.
func (i *Intervention) Normalize() {
	if i.DurationMin < 0 {
		i.DurationMin = 0
	}
	i.Symptom = strings.TrimSpace(i.Symptom)
	i.Action = strings.TrimSpace(i.Action)
	i.Cause = strings.TrimSpace(i.Cause)
	i.Parts = strings.TrimSpace(i.Parts)
	if !validCategories[i.Category] {
		i.Category = CategoryFault
	}
	if !validStatuses[i.Status] {
		i.Status = StatusOK
	}
	if i.Tags == nil {
		i.Tags = []string{}
	}
}
