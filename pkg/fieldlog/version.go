// Package fieldlog exposes build-level metadata for the fieldlog project.
package fieldlog

// Version is the current release version of fieldlog.
const Version = "0.2.0"
