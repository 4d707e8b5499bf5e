package bufferpool

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"PageVaultDB/types"
)

// hotPageTracker keeps an approximate, best-effort view of page
// access frequency for observability. It is deliberately kept off the
// eviction-critical path: RecordAccess never blocks NewPage/FetchPage
// on anything, and losing an update to ristretto's internal batching
// never affects correctness, only the numbers Snapshot() reports.
type hotPageTracker struct {
	cache *ristretto.Cache[int64, struct{}]
}

func newHotPageTracker() *hotPageTracker {
	cache, err := ristretto.NewCache(&ristretto.Config[int64, struct{}]{
		NumCounters: 1e4,
		MaxCost:     1e4,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		panic(fmt.Sprintf("bufferpool: failed to build hot-page tracker: %v", err))
	}
	return &hotPageTracker{cache: cache}
}

// RecordAccess notes a fetch/pin of id: a Get (counted as a hit or a
// miss in the tracker's metrics) followed by a Set. It is fire-and-forget: a
// dropped Set under load pressure only blurs the telemetry, never the
// pool's actual page residency.
func (h *hotPageTracker) RecordAccess(id types.PageID) {
	h.cache.Get(int64(id))
	h.cache.Set(int64(id), struct{}{}, 1)
}

// ApproxHitRatio reports the tracker's own get/set hit ratio, a proxy
// for how concentrated recent traffic is on a small set of pages: a
// ratio near 1 means the same pages keep getting re-recorded before
// ristretto's admission policy evicts their counters.
func (h *hotPageTracker) ApproxHitRatio() float64 {
	if h.cache.Metrics == nil {
		return 0
	}
	return h.cache.Metrics.Ratio()
}

func (h *hotPageTracker) Close() {
	h.cache.Close()
}
