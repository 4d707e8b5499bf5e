package bufferpool

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"PageVaultDB/types"
)

// Stats is a point-in-time snapshot of pool occupancy, safe to hold
// onto after Snapshot returns (it shares no state with the Manager).
type Stats struct {
	PoolSize     int
	FreeFrames   int
	PinnedFrames int
	ReplacerSize int // evictable frames, i.e. eviction candidates
	HitRatio     float64
}

// String renders a human-readable summary, using go-humanize for the
// byte total so log lines don't carry raw frame counts alongside a
// separately-computed byte figure that could drift out of sync.
func (s Stats) String() string {
	bytes := uint64(s.PoolSize) * uint64(types.PageSize)
	return fmt.Sprintf(
		"pool=%s frames=%d free=%d pinned=%d evictable=%d hit_ratio=%.2f",
		humanize.Bytes(bytes), s.PoolSize, s.FreeFrames, s.PinnedFrames, s.ReplacerSize, s.HitRatio,
	)
}

// Snapshot reports the pool's current occupancy.
func (m *Manager) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	pinned := 0
	for _, f := range m.frames {
		f.RLock()
		if f.PageID != types.InvalidPageID && f.PinCount > 0 {
			pinned++
		}
		f.RUnlock()
	}

	return Stats{
		PoolSize:     len(m.frames),
		FreeFrames:   len(m.freeList),
		PinnedFrames: pinned,
		ReplacerSize: m.replacer.Size(),
		HitRatio:     m.hotPages.ApproxHitRatio(),
	}
}
