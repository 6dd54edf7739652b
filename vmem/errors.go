package vmem

import "errors"

// errAllocatorExhausted and errRootReentry identify configuration and
// invariant violations, not caller errors. They are never returned to
// a caller of Read/Write; they are asserted via panic as unrecoverable
// conditions rather than retried.
var (
	errAllocatorExhausted = errors.New("vmem: frame allocator exhausted: no candidate frame (NUM_FRAMES too small for TABLES_DEPTH)")
	errRootReentry        = errors.New("vmem: page-table entry would point at frame 0 (root re-entry)")
)
