// Package vmem implements a hierarchical virtual-memory translation layer:
// an on-demand paging simulation over a small, fixed-size physical RAM
// backed by an unbounded paged store.
package vmem

// Word is the unit physical memory and swap pages are built from. A
// page-table entry is a Word holding a child frame index (0 means no
// child); a data-frame Word is ordinary page content.
type Word uint64

// Frame identifies a PAGE_SIZE-word run in physical memory.
type Frame uint64

// PageIndex identifies a logical page: virtual address >> OFFSET_WIDTH.
type PageIndex uint64

// rootFrame is the permanently reserved root page-table frame.
const rootFrame Frame = 0
