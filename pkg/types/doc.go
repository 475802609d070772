// Package types defines the entity types, collection names, configuration,
// and standard errors for the fieldlog storage engine.
//
// The storage engine in internal/sqlite owns every record; callers hold only
// transient copies of the structs defined here. Entity-level behavior that
// does not touch storage (normalization, validation, checklist item
// toggling) lives on the entity types so the engine and the CLI share it.
package types
