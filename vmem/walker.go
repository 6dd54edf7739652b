package vmem

// walk descends the page-table tree for page, starting at the root
// frame and slicing the page index most-significant-first (the root
// slice is RootTableOffset bits wide; every level below it is
// OffsetWidth bits wide). It installs table or data frames on a miss
// and returns the physical frame holding page's contents.
//
// unlink is the eviction mode: when true and the walk reaches the leaf
// level, the parent entry that named the data frame is cleared before
// the frame is handed back, severing that page from the tree so it
// can be safely overwritten.
func (t *Translator) walk(page PageIndex, unlink bool) (Frame, error) {
	t.stats.TableWalks++

	current := rootFrame
	remaining := t.params.VirtualAddressWidth - t.params.OffsetWidth

	for level := uint(0); level < t.params.TablesDepth; level++ {
		width := t.params.levelWidth(level)
		remaining -= width
		slice := sliceOf(page, remaining, width)
		addr := uint64(current)*t.params.PageSize + slice

		entry, err := t.pm.ReadWord(addr)
		if err != nil {
			return 0, err
		}
		isLastLevel := level == t.params.TablesDepth-1

		if entry != 0 {
			child := Frame(entry)
			if unlink && isLastLevel {
				if err := t.pm.WriteWord(addr, 0); err != nil {
					return 0, err
				}
			}
			current = child
			continue
		}

		// Page fault at this level.
		t.stats.PageFaults++
		newFrame, kind, err := t.allocateFrame(current, page)
		if err != nil {
			return 0, err
		}

		if isLastLevel {
			if err := t.swapInFrame(newFrame, page); err != nil {
				return 0, err
			}
		} else if kind != allocEmptySubtable {
			if err := t.clearFrame(newFrame); err != nil {
				return 0, err
			}
		}

		if err := t.pm.WriteWord(addr, Word(newFrame)); err != nil {
			return 0, err
		}
		current = newFrame
	}

	return current, nil
}

// clearFrame zeroes every entry of frame, used both to prepare a fresh
// intermediate table and by Initialize for frame 0.
func (t *Translator) clearFrame(frame Frame) error {
	base := uint64(frame) * t.params.PageSize
	for i := uint64(0); i < t.params.PageSize; i++ {
		if err := t.pm.WriteWord(base+i, 0); err != nil {
			return err
		}
	}
	return nil
}

// swapInFrame restores page's content from the swap store into frame.
func (t *Translator) swapInFrame(frame Frame, page PageIndex) error {
	buf := make([]Word, t.params.PageSize)
	if err := t.swap.PageIn(page, buf); err != nil {
		return err
	}
	base := uint64(frame) * t.params.PageSize
	for i, w := range buf {
		if err := t.pm.WriteWord(base+uint64(i), w); err != nil {
			return err
		}
	}
	t.stats.SwapIns++
	return nil
}

// swapOutFrame persists frame's content to the swap store under page.
func (t *Translator) swapOutFrame(frame Frame, page PageIndex) error {
	buf := make([]Word, t.params.PageSize)
	base := uint64(frame) * t.params.PageSize
	for i := range buf {
		v, err := t.pm.ReadWord(base + uint64(i))
		if err != nil {
			return err
		}
		buf[i] = v
	}
	if err := t.swap.PageOut(page, buf); err != nil {
		return err
	}
	t.stats.SwapOuts++
	return nil
}
