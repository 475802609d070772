// Schema DDL and the versioned migration steps.
package sqlite

// Schema version history:
//
//	1 — initial logbook collections: nodes, interventions, checklists,
//	    settings, with their secondary indexes.
//	2 — personal reference tables: bearings, faults.
//
// Every statement is additive and guarded by IF NOT EXISTS so a migration
// step can be re-run against a store that already has it, and a store
// created by an older version upgrades in place without data loss.
const schemaVersion = 2

const (
	createNodes = `CREATE TABLE IF NOT EXISTS nodes (
    id TEXT PRIMARY KEY,
    type TEXT NOT NULL,
    level INTEGER NOT NULL,
    parent_id TEXT,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL,
    meta TEXT NOT NULL
);`

	createInterventions = `CREATE TABLE IF NOT EXISTS interventions (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    duration_min REAL NOT NULL,
    category TEXT NOT NULL,
    symptom TEXT NOT NULL,
    action TEXT NOT NULL,
    cause TEXT NOT NULL,
    parts TEXT NOT NULL,
    status TEXT NOT NULL,
    tags TEXT NOT NULL,
    node_id TEXT NOT NULL
);`

	createChecklists = `CREATE TABLE IF NOT EXISTS checklists (
    id TEXT PRIMARY KEY,
    scope TEXT NOT NULL,
    node_id TEXT,
    title TEXT NOT NULL,
    items TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createSettings = `CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

	createBearings = `CREATE TABLE IF NOT EXISTS bearings (
    id TEXT PRIMARY KEY,
    ref TEXT NOT NULL,
    d REAL,
    od REAL,
    b REAL,
    type TEXT NOT NULL,
    note TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createFaults = `CREATE TABLE IF NOT EXISTS faults (
    id TEXT PRIMARY KEY,
    vendor TEXT NOT NULL,
    product TEXT NOT NULL,
    code TEXT NOT NULL,
    title TEXT NOT NULL,
    causes TEXT NOT NULL,
    actions TEXT NOT NULL,
    notes TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

const (
	idxNodesByParent         = `CREATE INDEX IF NOT EXISTS idx_nodes_by_parent ON nodes(parent_id);`
	idxNodesByType           = `CREATE INDEX IF NOT EXISTS idx_nodes_by_type ON nodes(type);`
	idxInterventionsByNode   = `CREATE INDEX IF NOT EXISTS idx_interventions_by_node ON interventions(node_id);`
	idxInterventionsByDate   = `CREATE INDEX IF NOT EXISTS idx_interventions_by_date ON interventions(created_at);`
	idxChecklistsByScope     = `CREATE INDEX IF NOT EXISTS idx_checklists_by_scope ON checklists(scope);`
	idxChecklistsByNode      = `CREATE INDEX IF NOT EXISTS idx_checklists_by_node ON checklists(node_id);`
	idxBearingsByRef         = `CREATE INDEX IF NOT EXISTS idx_bearings_by_ref ON bearings(ref);`
	idxFaultsByVendorProduct = `CREATE INDEX IF NOT EXISTS idx_faults_by_vendor_product ON faults(vendor, product);`
)

// migration is one additive schema step.
type migration struct {
	version    int
	statements []string
}

// migrations lists every schema step in version order. A store at version N
// applies every step with version > N.
var migrations = []migration{
	{
		version: 1,
		statements: []string{
			createNodes,
			createInterventions,
			createChecklists,
			createSettings,
			idxNodesByParent,
			idxNodesByType,
			idxInterventionsByNode,
			idxInterventionsByDate,
			idxChecklistsByScope,
			idxChecklistsByNode,
		},
	},
	{
		version: 2,
		statements: []string{
			createBearings,
			createFaults,
			idxBearingsByRef,
			idxFaultsByVendorProduct,
		},
	},
}
