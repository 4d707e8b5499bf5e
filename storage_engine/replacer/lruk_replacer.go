// Package replacer implements the LRU-K eviction policy the buffer
// pool uses to pick a victim frame when none are free.
//
// Every tracked frame lives in exactly one of two lists once it has
// been accessed at least once:
//
//   - the history list holds frames with fewer than K recorded
//     accesses, ordered by the time of their first access (oldest at
//     the tail);
//   - the cache list holds frames with K or more accesses, ordered by
//     last access like classical LRU (most recent at the head).
//
// Eviction always prefers the history list: a frame that has not yet
// proven itself "hot" is victimized before any frame with a full K-
// access history, regardless of how long ago that history frame was
// first touched. This mirrors the corpus's own list+map replacer idiom
// (Adarsh-Kmt-DragonDB's LRUReplacer uses a single container/list.List
// plus a map[FrameID]*list.Element for O(1) removal; this replacer
// runs that same pattern over two lists to get the two-tier policy).
package replacer

import (
	"container/list"
	"sync"

	"PageVaultDB/logger"
	"PageVaultDB/types"
)

type frameRecord struct {
	accessCount int
	evictable   bool
}

// LRUKReplacer tracks per-frame access history for frame indices in
// [0, capacity) and selects eviction victims by the LRU-K policy.
type LRUKReplacer struct {
	mu       sync.Mutex
	k        int
	capacity int

	records map[types.FrameID]*frameRecord

	history      *list.List
	historyElems map[types.FrameID]*list.Element

	cache      *list.List
	cacheElems map[types.FrameID]*list.Element

	size int
}

// New constructs a replacer for capacity frames. A frame graduates
// from the history list to the cache list on its k-th access; frames
// still in the history list are evicted first. k must be at least 1.
func New(capacity int, k int) *LRUKReplacer {
	if k < 1 {
		k = 1
	}
	return &LRUKReplacer{
		k:            k,
		capacity:     capacity,
		records:      make(map[types.FrameID]*frameRecord),
		history:      list.New(),
		historyElems: make(map[types.FrameID]*list.Element),
		cache:        list.New(),
		cacheElems:   make(map[types.FrameID]*list.Element),
	}
}

func (r *LRUKReplacer) inRange(frameID types.FrameID) bool {
	return frameID >= 0 && int(frameID) < r.capacity
}

// RecordAccess registers one access to frameID, advancing its
// position between the history and cache lists as described in the
// package doc.
func (r *LRUKReplacer) RecordAccess(frameID types.FrameID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inRange(frameID) {
		return newOpError("RecordAccess", ErrInvalidFrame)
	}

	rec, ok := r.records[frameID]
	if !ok {
		rec = &frameRecord{}
		r.records[frameID] = rec
	}
	rec.accessCount++

	switch {
	case rec.accessCount < r.k:
		if _, inHistory := r.historyElems[frameID]; !inHistory {
			r.historyElems[frameID] = r.history.PushFront(frameID)
		}
	case rec.accessCount == r.k:
		if elem, inHistory := r.historyElems[frameID]; inHistory {
			r.history.Remove(elem)
			delete(r.historyElems, frameID)
		}
		r.cacheElems[frameID] = r.cache.PushFront(frameID)
	default: // rec.accessCount > r.k
		if elem, inCache := r.cacheElems[frameID]; inCache {
			r.cache.MoveToFront(elem)
		} else {
			r.cacheElems[frameID] = r.cache.PushFront(frameID)
		}
	}

	return nil
}

// SetEvictable marks frameID as eligible (or ineligible) for
// eviction. Size() only moves when the flag actually changes value.
// A frame with no recorded access is left untouched.
func (r *LRUKReplacer) SetEvictable(frameID types.FrameID, evictable bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inRange(frameID) {
		return newOpError("SetEvictable", ErrInvalidFrame)
	}

	rec, ok := r.records[frameID]
	if !ok {
		return nil
	}

	if rec.evictable == evictable {
		return nil
	}
	rec.evictable = evictable
	if evictable {
		r.size++
	} else {
		r.size--
	}
	return nil
}

// Evict selects a victim: the history list is scanned tail-to-head
// for an evictable frame first, falling back to the cache list scanned
// the same way. It reports ok=false when nothing is evictable.
func (r *LRUKReplacer) Evict() (frameID types.FrameID, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fid, found := r.scanTailToHead(r.history); found {
		r.finishEvict(fid)
		logger.Debugf("replacer: evicted frame %d from history list", fid)
		return fid, true
	}
	if fid, found := r.scanTailToHead(r.cache); found {
		r.finishEvict(fid)
		logger.Debugf("replacer: evicted frame %d from cache list", fid)
		return fid, true
	}
	return 0, false
}

func (r *LRUKReplacer) scanTailToHead(l *list.List) (types.FrameID, bool) {
	for e := l.Back(); e != nil; e = e.Prev() {
		fid := e.Value.(types.FrameID)
		if rec, ok := r.records[fid]; ok && rec.evictable {
			return fid, true
		}
	}
	return 0, false
}

// finishEvict removes frameID from whichever list holds it, resets
// its record, and adjusts size. Caller must hold r.mu.
func (r *LRUKReplacer) finishEvict(frameID types.FrameID) {
	if elem, ok := r.historyElems[frameID]; ok {
		r.history.Remove(elem)
		delete(r.historyElems, frameID)
	}
	if elem, ok := r.cacheElems[frameID]; ok {
		r.cache.Remove(elem)
		delete(r.cacheElems, frameID)
	}
	delete(r.records, frameID)
	r.size--
}

// Remove forcibly evicts frameID regardless of its position in either
// list. It is a no-op if frameID has never been accessed, and fails
// with ErrNotEvictable if the frame is currently pinned (not marked
// evictable).
func (r *LRUKReplacer) Remove(frameID types.FrameID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.inRange(frameID) {
		return newOpError("Remove", ErrInvalidFrame)
	}

	rec, ok := r.records[frameID]
	if !ok || rec.accessCount == 0 {
		return nil
	}
	if !rec.evictable {
		return newOpError("Remove", ErrNotEvictable)
	}

	r.finishEvict(frameID)
	return nil
}

// Size returns the number of frames that are both tracked and
// currently evictable.
func (r *LRUKReplacer) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}
