// Package catalogue provides use cases for aggregating the site owner's
// content. It merges items from the local catalogue and external publishing
// platforms, deduplicates them by title, and applies the filter, search,
// sort, and pagination pipeline served to the UI.
package catalogue

import "errors"

// Sentinel errors for catalogue use case operations.
var (
	// ErrUnknownCollection indicates that the requested collection name is
	// not one the catalogue serves.
	ErrUnknownCollection = errors.New("unknown collection")
)
