package types

import (
	"errors"
	"strconv"
	"time"
)

// Checklist scopes. Global checklists are reusable templates and never bind
// to a node; node checklists are instances purged with their node.
const (
	ScopeGlobal = "global"
	ScopeNode   = "node"
)

// ChecklistItem is one line of a checklist.
type ChecklistItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Checklist is either a global template (ScopeGlobal, NodeID nil) or a
// node-bound instance (ScopeNode, NodeID set).
type Checklist struct {
	ID        string          `json:"id"`
	Scope     string          `json:"scope"`
	NodeID    *string         `json:"nodeId"`
	Title     string          `json:"title"`
	Items     []ChecklistItem `json:"items"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ErrItemNotFound reports a Toggle on an item ID the checklist does not have.
var ErrItemNotFound = errors.New("checklist item not found")

// NewItems builds a fresh item list from texts, each unchecked and keyed by
// its positional index.
func NewItems(texts []string) []ChecklistItem {
	items := make([]ChecklistItem, len(texts))
	for i, text := range texts {
		items[i] = ChecklistItem{ID: strconv.Itoa(i), Text: text}
	}
	return items
}

// Toggle flips the checked flag of the item with the given ID and stamps
// UpdatedAt. The caller persists the whole record afterwards; the last Put
// wins, there is no item-level concurrency control.
func (c *Checklist) Toggle(itemID string) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Checked = !c.Items[i].Checked
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrItemNotFound
}

// Reset unchecks every item and stamps UpdatedAt.
func (c *Checklist) Reset() {
	for i := range c.Items {
		c.Items[i].Checked = false
	}
	c.UpdatedAt = time.Now()
}
