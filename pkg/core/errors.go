package core

import "fmt"

// ValidationError reports a malformed relationship declaration at catalog
// build time. It is fatal for the run: no partial catalog is returned.
type ValidationError struct {
	Field  string // the offending field
	Reason string // why it was rejected
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid relationship: %s %s", e.Field, e.Reason)
}

// UnknownDatasetError reports an impact query for an identifier outside the
// known dataset universe. This is distinct from a known dataset with no
// edges, which is a valid empty result.
type UnknownDatasetError struct {
	Dataset string
}

// Error implements the error interface.
func (e *UnknownDatasetError) Error() string {
	return fmt.Sprintf("dataset %q not found in lineage graph", e.Dataset)
}
