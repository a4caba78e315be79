package types

import "errors"

// Dataset-level and query-level failures. Row-level problems are never
// surfaced as errors, only as IngestResult counts.
var (
	// ErrEmptyDataset means zero rows survived normalization and
	// coercion; the previous canonical state is left untouched.
	ErrEmptyDataset = errors.New("no valid rows in dataset")

	// ErrNotAnalyzed means a read operation ran before any successful
	// ingestion.
	ErrNotAnalyzed = errors.New("no dataset analyzed yet")

	// ErrInvalidRequest means a score or match request was structurally
	// invalid and no partial computation was attempted.
	ErrInvalidRequest = errors.New("invalid request")
)
