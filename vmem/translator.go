package vmem

// Stats accumulates passive usage counters for a Translator. These are
// plain counters a caller can read back, not log lines.
type Stats struct {
	TableWalks uint64
	PageFaults uint64
	Evictions  uint64
	SwapIns    uint64
	SwapOuts   uint64
	WordReads  uint64
	WordWrites uint64
}

// Translator is a hierarchical virtual-memory translation layer: a
// page-table tree rooted at physical frame 0, backed by a
// PhysicalMemoryDevice and a SwapStore. It is single-threaded and
// non-reentrant; callers must serialise all calls.
type Translator struct {
	params Params
	pm     PhysicalMemoryDevice
	swap   SwapStore
	stats  Stats
}

// NewTranslator builds a Translator over the given physical memory and
// swap collaborators. It does not call Initialize; callers restoring a
// previously-initialized memory image must be able to skip it, so
// Initialize remains a separate, explicit step.
func NewTranslator(params Params, pm PhysicalMemoryDevice, swap SwapStore) *Translator {
	logger.Info("translator constructed",
		"page_size", params.PageSize,
		"num_frames", params.NumFrames,
		"num_pages", params.NumPages,
		"tables_depth", params.TablesDepth,
		"root_table_offset", params.RootTableOffset,
	)
	return &Translator{params: params, pm: pm, swap: swap}
}

// NewInMemoryTranslator wires a Translator to a fresh ArrayPhysicalMemory
// and MemSwapStore and initializes it, for tests and demos that don't
// need a real backing device or swap file.
func NewInMemoryTranslator(params Params) *Translator {
	pm := NewArrayPhysicalMemory(params.NumFrames, params.PageSize)
	t := NewTranslator(params, pm, NewMemSwapStore())
	if err := t.Initialize(); err != nil {
		panic(err)
	}
	return t
}

// Initialize clears frame 0 to zero. Must be called exactly once
// before any Read/Write.
func (t *Translator) Initialize() error {
	return t.clearFrame(rootFrame)
}

// Read decomposes vaddr into (page, offset), walks the table tree, and
// reads one word. It returns false (no state changes) if vaddr is out
// of range; true otherwise, with *dest holding the stored word (zero
// if the address was never written).
func (t *Translator) Read(vaddr uint64, dest *Word) bool {
	if !t.inRange(vaddr) {
		return false
	}
	page, offset := t.split(vaddr)

	frame, err := t.walk(page, false)
	if err != nil {
		panic(err)
	}
	val, err := t.pm.ReadWord(uint64(frame)*t.params.PageSize + offset)
	if err != nil {
		panic(err)
	}
	*dest = val
	t.stats.WordReads++
	return true
}

// Write decomposes vaddr into (page, offset), walks the table tree,
// and writes one word. It returns false (no state changes) if vaddr is
// out of range; true otherwise.
func (t *Translator) Write(vaddr uint64, value Word) bool {
	if !t.inRange(vaddr) {
		return false
	}
	page, offset := t.split(vaddr)

	frame, err := t.walk(page, false)
	if err != nil {
		panic(err)
	}
	if err := t.pm.WriteWord(uint64(frame)*t.params.PageSize+offset, value); err != nil {
		panic(err)
	}
	t.stats.WordWrites++
	return true
}

func (t *Translator) inRange(vaddr uint64) bool {
	return vaddr < uint64(1)<<t.params.VirtualAddressWidth
}

func (t *Translator) split(vaddr uint64) (PageIndex, uint64) {
	offset := vaddr & (t.params.PageSize - 1)
	page := PageIndex(vaddr >> t.params.OffsetWidth)
	return page, offset
}

// Stats returns a snapshot of the translator's usage counters.
func (t *Translator) Stats() Stats {
	return t.stats
}

// Params returns the parameters the translator was built with.
func (t *Translator) Params() Params {
	return t.params
}

// FreeFrames reports how many physical frames are not currently
// reachable from the root.
func (t *Translator) FreeFrames() (uint64, error) {
	reachable, err := t.reachableFrameCount()
	if err != nil {
		return 0, err
	}
	return t.params.NumFrames - reachable, nil
}

// reachableFrameCount counts frames reachable from the root, including
// the root itself.
func (t *Translator) reachableFrameCount() (uint64, error) {
	seen := map[Frame]bool{rootFrame: true}
	var visit func(frame Frame, level uint) error
	visit = func(frame Frame, level uint) error {
		if level >= t.params.TablesDepth {
			return nil
		}
		entries := t.params.levelEntries(level)
		base := uint64(frame) * t.params.PageSize
		for i := uint64(0); i < entries; i++ {
			v, err := t.pm.ReadWord(base + i)
			if err != nil {
				return err
			}
			if v == 0 {
				continue
			}
			child := Frame(v)
			if seen[child] {
				continue
			}
			seen[child] = true
			if err := visit(child, level+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(rootFrame, 0); err != nil {
		return 0, err
	}
	return uint64(len(seen)), nil
}
