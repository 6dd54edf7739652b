package vmem

import "fmt"

// Params carries the compile-time constants that size a translator
// (OffsetWidth, VirtualAddressWidth, PhysicalAddressWidth,
// TablesDepth) plus their derived values (PageSize, NumFrames,
// NumPages, RootTableOffset). Construct a Params once with NewParams
// and hand it to NewTranslator.
type Params struct {
	OffsetWidth          uint
	VirtualAddressWidth  uint
	PhysicalAddressWidth uint
	TablesDepth          uint
	PageSize             uint64
	NumFrames            uint64
	NumPages             uint64
	RootTableOffset      uint
}

// NewParams validates the four parameters and derives the rest. It
// rejects configurations that can never produce a working tree (a root
// slice that doesn't fit, or too few frames to hold even one full
// root-to-leaf path) rather than letting them surface later as
// undefined behavior in the allocator.
func NewParams(offsetWidth, virtualAddressWidth, physicalAddressWidth, tablesDepth uint) (Params, error) {
	if offsetWidth == 0 {
		return Params{}, fmt.Errorf("vmem: OFFSET_WIDTH must be positive")
	}
	if tablesDepth == 0 {
		return Params{}, fmt.Errorf("vmem: TABLES_DEPTH must be positive")
	}
	if physicalAddressWidth < offsetWidth {
		return Params{}, fmt.Errorf("vmem: PHYSICAL_ADDRESS_WIDTH (%d) must be at least OFFSET_WIDTH (%d)", physicalAddressWidth, offsetWidth)
	}
	if virtualAddressWidth < offsetWidth {
		return Params{}, fmt.Errorf("vmem: VIRTUAL_ADDRESS_WIDTH (%d) must be at least OFFSET_WIDTH (%d)", virtualAddressWidth, offsetWidth)
	}
	if physicalAddressWidth-offsetWidth >= 64 || virtualAddressWidth-offsetWidth >= 64 {
		return Params{}, fmt.Errorf("vmem: address width too large to represent in a 64-bit frame/page index")
	}

	root := int(virtualAddressWidth) - int(tablesDepth)*int(offsetWidth)
	if root <= 0 || root > int(offsetWidth) {
		return Params{}, fmt.Errorf("vmem: ROOT_TABLE_OFFSET (%d) must be in (0, OFFSET_WIDTH=%d]; check VIRTUAL_ADDRESS_WIDTH/TABLES_DEPTH", root, offsetWidth)
	}

	pageSize := uint64(1) << offsetWidth
	numFrames := uint64(1) << (physicalAddressWidth - offsetWidth)
	numPages := uint64(1) << (virtualAddressWidth - offsetWidth)

	if numFrames < uint64(tablesDepth)+1 {
		return Params{}, fmt.Errorf("vmem: NUM_FRAMES (%d) too small for TABLES_DEPTH (%d): need at least %d frames for one root-to-leaf path", numFrames, tablesDepth, tablesDepth+1)
	}

	return Params{
		OffsetWidth:          offsetWidth,
		VirtualAddressWidth:  virtualAddressWidth,
		PhysicalAddressWidth: physicalAddressWidth,
		TablesDepth:          tablesDepth,
		PageSize:             pageSize,
		NumFrames:            numFrames,
		NumPages:             numPages,
		RootTableOffset:      uint(root),
	}, nil
}

// levelWidth returns the bit width of the page-index slice consumed at
// the given tree level (0 is the root). Only the root may be narrower
// than OffsetWidth.
func (p Params) levelWidth(level uint) uint {
	if level == 0 {
		return p.RootTableOffset
	}
	return p.OffsetWidth
}

// levelEntries returns how many distinct entries of a table at the
// given level can ever be populated.
func (p Params) levelEntries(level uint) uint64 {
	return uint64(1) << p.levelWidth(level)
}
