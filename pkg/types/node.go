package types

import "time"

// Node types, one per hierarchy level. The set is closed; levels beyond the
// deepest known one clamp to equipment.
const (
	NodeTypeSite      = "site"
	NodeTypeUnit      = "unite"
	NodeTypeLine      = "ligne"
	NodeTypeMachine   = "machine"
	NodeTypeEquipment = "equipement"
)

// levelTypes maps the 0-based level depth to its node type.
var levelTypes = []string{
	NodeTypeSite,
	NodeTypeUnit,
	NodeTypeLine,
	NodeTypeMachine,
	NodeTypeEquipment,
}

// TypeForLevel returns the node type for a 0-based tree depth. The mapping
// is total: negative levels map to site, levels past the known range clamp
// to equipment.
func TypeForLevel(level int) string {
	if level < 0 {
		return levelTypes[0]
	}
	if level >= len(levelTypes) {
		return levelTypes[len(levelTypes)-1]
	}
	return levelTypes[level]
}

// Node is one entity in the equipment hierarchy: a site, unit, line, machine
// or piece of equipment. The parent links form a forest; every non-root
// node's ParentID references an existing node. Nodes are only ever removed
// through DeleteNodeCascade so the forest invariant holds.
type Node struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Level     int               `json:"level"`
	ParentID  *string           `json:"parentId"`
	Name      string            `json:"name"`
	CreatedAt time.Time         `json:"createdAt"`
	Meta      map[string]string `json:"meta"`
}

// NodePatch names the mutable fields of a Node. Nil fields are left
// untouched. Parent links, level and type are not patchable: moving a node
// is not supported and type is derived from level at creation.
type NodePatch struct {
	Name *string
	Meta map[string]string
}

// Apply overwrites the node's mutable fields from the patch. Meta replaces
// the whole bag when non-nil.
func (p NodePatch) Apply(n *Node) {
	if p.Name != nil {
		n.Name = *p.Name
	}
	if p.Meta != nil {
		n.Meta = p.Meta
	}
}
