// Package bufferpool implements the buffer pool manager: a fixed-size
// array of in-memory page frames backed by disk, fronted by an
// extendible-hash directory (page id -> frame index) and an LRU-K
// eviction policy. Every exported method takes the pool lock first,
// then (as needed) the directory's own lock, then the replacer's own
// lock — Pool -> Hash Table -> Replacer, never any other order.
package bufferpool

import (
	"PageVaultDB/logger"
	"PageVaultDB/storage_engine/frame"
	"PageVaultDB/types"
)

// grabFrame returns a frame to (re)use: the free list first, then an
// eviction victim. The second return is false only when both are
// exhausted, i.e. every frame is pinned. Caller must hold m.mu.
func (m *Manager) grabFrame() (types.FrameID, bool) {
	if n := len(m.freeList); n > 0 {
		fid := m.freeList[n-1]
		m.freeList = m.freeList[:n-1]
		return fid, true
	}
	return m.replacer.Evict()
}

// evictOldMapping flushes and detaches whatever page currently
// occupies fid, if any, so the frame is safe to reuse. Caller must
// hold m.mu.
func (m *Manager) evictOldMapping(fid types.FrameID) {
	f := m.frames[fid]
	f.Lock()
	defer f.Unlock()

	if f.PageID == types.InvalidPageID {
		return
	}
	// The victim's own page id is removed from the directory, not its
	// frame id — the directory is keyed by page id.
	m.table.Remove(f.PageID)
	if f.Dirty {
		if err := m.disk.WritePage(f.PageID, f.Data); err != nil {
			fatal("evictOldMapping", err)
		}
	}
}

// NewPage allocates a fresh page backed by a free or evicted frame,
// pins it once, and marks it non-evictable. It reports false only when
// the pool has no free frame and the replacer has nothing evictable to
// offer — every frame is pinned.
func (m *Manager) NewPage() (types.PageID, *frame.Frame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fid, ok := m.grabFrame()
	if !ok {
		return types.InvalidPageID, nil, false
	}
	m.evictOldMapping(fid)

	pageID := m.nextPageID
	m.nextPageID++

	f := m.frames[fid]
	f.Lock()
	f.Reset()
	f.PageID = pageID
	f.PinCount = 1
	f.Unlock()

	m.table.Insert(pageID, fid)
	if err := m.replacer.RecordAccess(fid); err != nil {
		fatal("NewPage: RecordAccess", err)
	}
	if err := m.replacer.SetEvictable(fid, false); err != nil {
		fatal("NewPage: SetEvictable", err)
	}

	logger.Debugf("bufferpool: allocated page %d in frame %d", pageID, fid)
	return pageID, f, true
}

// FetchPage pins pageID, reading it from disk into a free or evicted
// frame if it is not already resident. It reports false only when the
// page is not resident and the pool cannot find a frame for it.
func (m *Manager) FetchPage(pageID types.PageID) (*frame.Frame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if fid, ok := m.table.Find(pageID); ok {
		f := m.frames[fid]
		f.Lock()
		f.PinCount++
		f.Unlock()

		if err := m.replacer.RecordAccess(fid); err != nil {
			fatal("FetchPage: RecordAccess", err)
		}
		if err := m.replacer.SetEvictable(fid, false); err != nil {
			fatal("FetchPage: SetEvictable", err)
		}
		m.hotPages.RecordAccess(pageID)
		return f, true
	}

	fid, ok := m.grabFrame()
	if !ok {
		return nil, false
	}
	m.evictOldMapping(fid)

	f := m.frames[fid]
	f.Lock()
	f.Reset()
	if err := m.disk.ReadPage(pageID, f.Data); err != nil {
		f.Unlock()
		fatal("FetchPage: ReadPage", err)
	}
	f.PageID = pageID
	f.PinCount = 1
	f.Unlock()

	m.table.Insert(pageID, fid)
	if err := m.replacer.RecordAccess(fid); err != nil {
		fatal("FetchPage: RecordAccess", err)
	}
	if err := m.replacer.SetEvictable(fid, false); err != nil {
		fatal("FetchPage: SetEvictable", err)
	}
	m.hotPages.RecordAccess(pageID)

	logger.Debugf("bufferpool: fetched page %d into frame %d", pageID, fid)
	return f, true
}

// UnpinPage drops one pin on pageID and, if isDirty, marks the frame
// dirty (a page is never un-marked dirty by unpinning it clean — only
// a flush clears the flag). It reports false if the page is not
// resident or already carries zero pins.
func (m *Manager) UnpinPage(pageID types.PageID, isDirty bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	fid, ok := m.table.Find(pageID)
	if !ok {
		return false
	}

	f := m.frames[fid]
	f.Lock()
	if f.PinCount == 0 {
		f.Unlock()
		return false
	}
	if isDirty {
		f.Dirty = true
	}
	f.PinCount--
	reachedZero := f.PinCount == 0
	f.Unlock()

	if reachedZero {
		if err := m.replacer.SetEvictable(fid, true); err != nil {
			fatal("UnpinPage: SetEvictable", err)
		}
	}
	return true
}

// FlushPage writes pageID to disk unconditionally and clears its dirty
// flag, reporting false only if the page is not resident.
func (m *Manager) FlushPage(pageID types.PageID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	fid, ok := m.table.Find(pageID)
	if !ok {
		return false
	}

	f := m.frames[fid]
	f.Lock()
	defer f.Unlock()

	if err := m.disk.WritePage(pageID, f.Data); err != nil {
		fatal("FlushPage", err)
	}
	f.Dirty = false
	return true
}

// FlushAllPages writes every resident, occupied frame to disk and
// clears its dirty flag.
func (m *Manager) FlushAllPages() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range m.frames {
		f.Lock()
		if f.PageID != types.InvalidPageID {
			if err := m.disk.WritePage(f.PageID, f.Data); err != nil {
				f.Unlock()
				fatal("FlushAllPages", err)
			}
			f.Dirty = false
		}
		f.Unlock()
	}
}

// DeletePage removes pageID from the pool and asks the disk
// collaborator to reclaim its storage. A page absent from the pool is
// treated as already deleted and reports true. A pinned resident page
// cannot be deleted and reports false.
func (m *Manager) DeletePage(pageID types.PageID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	fid, ok := m.table.Find(pageID)
	if !ok {
		return true
	}

	f := m.frames[fid]
	f.Lock()
	pinned := f.PinCount > 0
	f.Unlock()
	if pinned {
		return false
	}

	m.table.Remove(pageID)
	if err := m.replacer.Remove(fid); err != nil {
		fatal("DeletePage: Remove", err)
	}

	f.Lock()
	f.Reset()
	f.Unlock()
	m.freeList = append(m.freeList, fid)

	if err := m.disk.DeallocatePage(pageID); err != nil {
		logger.Errorf("bufferpool: deallocate page %d: %v", pageID, err)
	}
	return true
}
