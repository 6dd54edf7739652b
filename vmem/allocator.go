package vmem

// allocKind discriminates the three ways a frame allocation can be
// satisfied, so the walker knows whether the returned frame still
// needs clearing or restoring.
type allocKind int

const (
	allocFresh allocKind = iota
	allocEmptySubtable
	allocEvicted
)

// allocState carries the running values a single depth-first traversal
// accumulates: the highest frame index seen so far, the current best
// eviction victim, and the empty subtable if one was found. The partial
// page index accumulated on the way down is passed as a dfsSearch
// argument instead.
type allocState struct {
	ignore Frame
	target PageIndex

	highest Frame

	foundEmpty       bool
	emptyParentFrame Frame
	emptyParentIdx   uint64
	emptyFrame       Frame

	haveVictim bool
	victimDist uint64
	victimPage PageIndex
}

// allocateFrame picks a physical frame for the walker to use on a page
// fault. It performs one depth-first walk of the table tree rooted at
// frame 0, applying the allocation priority in order: reclaim an empty
// subtable, else hand out a never-used frame, else evict a victim
// page. The returned allocKind tells the caller whether the frame still
// needs clearing (a table) or restoring from swap (a leaf).
//
// ignore is the table frame one level above the fault: it must never
// be reclaimed as an empty subtable, because the walker is about to
// install a pointer into it. target is the faulting page index, used
// for the cyclic-distance comparison if eviction is needed.
func (t *Translator) allocateFrame(ignore Frame, target PageIndex) (Frame, allocKind, error) {
	st := &allocState{ignore: ignore, target: target, highest: rootFrame}

	stopped, err := t.dfsSearch(rootFrame, 0, 0, st)
	if err != nil {
		return 0, 0, err
	}

	if stopped {
		// Priority 1: an empty intermediate table. Sever its old
		// parent link before handing it back; the walker is about
		// to install it somewhere else in the tree.
		addr := uint64(st.emptyParentFrame)*t.params.PageSize + st.emptyParentIdx
		if err := t.pm.WriteWord(addr, 0); err != nil {
			return 0, 0, err
		}
		if st.emptyFrame == rootFrame {
			panic(errRootReentry)
		}
		return st.emptyFrame, allocEmptySubtable, nil
	}

	// Priority 2: a frame never yet used.
	if candidate := st.highest + 1; uint64(candidate) < t.params.NumFrames {
		if candidate == rootFrame {
			panic(errRootReentry)
		}
		return candidate, allocFresh, nil
	}

	// Priority 3: evict the cyclic-distance victim.
	if st.haveVictim {
		victimFrame, err := t.walk(st.victimPage, true)
		if err != nil {
			return 0, 0, err
		}
		if err := t.swapOutFrame(victimFrame, st.victimPage); err != nil {
			return 0, 0, err
		}
		t.stats.Evictions++
		if victimFrame == rootFrame {
			panic(errRootReentry)
		}
		return victimFrame, allocEvicted, nil
	}

	// Every frame is in use, no empty subtable exists, and no leaf
	// page was ever visited: impossible unless NUM_FRAMES is too
	// small for TABLES_DEPTH, a configuration error.
	panic(errAllocatorExhausted)
}

// dfsSearch is the single-pass traversal behind allocateFrame: it
// returns true the moment it finds a reclaimable empty subtable,
// otherwise it visits every live entry of the tree, updating
// st.highest and st.victim* along the way, and returns false once it
// has looked at everything.
func (t *Translator) dfsSearch(frame Frame, level uint, partial PageIndex, st *allocState) (bool, error) {
	entries := t.params.levelEntries(level)
	width := t.params.levelWidth(level)
	base := uint64(frame) * t.params.PageSize
	childIsTable := level+1 < t.params.TablesDepth

	for i := uint64(0); i < entries; i++ {
		entry, err := t.pm.ReadWord(base + i)
		if err != nil {
			return false, err
		}
		if entry == 0 {
			continue
		}
		child := Frame(entry)
		childPartial := (partial << width) | PageIndex(i)

		if childIsTable {
			if child != st.ignore {
				empty, err := t.isEmptyTable(child)
				if err != nil {
					return false, err
				}
				if empty {
					st.foundEmpty = true
					st.emptyParentFrame = frame
					st.emptyParentIdx = i
					st.emptyFrame = child
					return true, nil
				}
			}
			if child > st.highest {
				st.highest = child
			}
			stop, err := t.dfsSearch(child, level+1, childPartial, st)
			if err != nil {
				return false, err
			}
			if stop {
				return true, nil
			}
			continue
		}

		// child is a leaf/data frame holding page childPartial.
		if child > st.highest {
			st.highest = child
		}
		dist := cyclicDistance(st.target, childPartial, t.params.NumPages)
		if !st.haveVictim || dist > st.victimDist {
			st.haveVictim = true
			st.victimDist = dist
			st.victimPage = childPartial
		}
	}
	return false, nil
}

// isEmptyTable reports whether every one of frame's PAGE_SIZE entries
// is zero.
func (t *Translator) isEmptyTable(frame Frame) (bool, error) {
	base := uint64(frame) * t.params.PageSize
	for i := uint64(0); i < t.params.PageSize; i++ {
		v, err := t.pm.ReadWord(base + i)
		if err != nil {
			return false, err
		}
		if v != 0 {
			return false, nil
		}
	}
	return true, nil
}
