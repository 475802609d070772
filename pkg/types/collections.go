package types

import "errors"

// Standard collection names accepted by the engine primitives.
const (
	NodesCollection         = "nodes"
	InterventionsCollection = "interventions"
	ChecklistsCollection    = "checklists"
	SettingsCollection      = "settings"
	BearingsCollection      = "bearings"
	FaultsCollection        = "faults"
)

// StandardCollections lists all collection names for enumeration.
var StandardCollections = []string{
	NodesCollection,
	InterventionsCollection,
	ChecklistsCollection,
	SettingsCollection,
	BearingsCollection,
	FaultsCollection,
}

// Secondary index names accepted by QueryByIndex, per collection.
const (
	IndexByParent = "by_parent" // nodes: parent_id
	IndexByType   = "by_type"   // nodes: type
	IndexByNode   = "by_node"   // interventions, checklists: node_id
	IndexByDate   = "by_date"   // interventions: created_at
	IndexByScope  = "by_scope"  // checklists: scope
)

// Engine primitive errors.
var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrUnknownIndex      = errors.New("unknown index")
)
