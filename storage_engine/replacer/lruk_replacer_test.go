package replacer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"PageVaultDB/types"
)

func TestHistoryEvictedBeforeCache(t *testing.T) {
	r := New(7, 2)

	// Frame 0 is accessed first and twice, so it graduates to the cache
	// list (c == K) before any other frame is touched.
	require.NoError(t, r.RecordAccess(0))
	require.NoError(t, r.RecordAccess(0))
	require.NoError(t, r.SetEvictable(0, true))

	for fid := types.FrameID(1); fid <= 6; fid++ {
		require.NoError(t, r.RecordAccess(fid))
		require.NoError(t, r.SetEvictable(fid, true))
	}
	require.Equal(t, 7, r.Size())

	// Frames 1..6 have exactly one access (< K=2), so they sit in the
	// history list; history is evicted before the cache list, so the
	// earliest-accessed history frame (1) goes first, not frame 0.
	fid, ok := r.Evict()
	require.True(t, ok)
	require.Equal(t, types.FrameID(1), fid)
	require.Equal(t, 6, r.Size())
}

func TestGraduationToCacheList(t *testing.T) {
	r := New(3, 2)

	require.NoError(t, r.RecordAccess(0))
	require.NoError(t, r.RecordAccess(1))
	require.NoError(t, r.RecordAccess(1)) // frame 1 graduates to cache (c==K)
	require.NoError(t, r.RecordAccess(2))

	require.NoError(t, r.SetEvictable(0, true))
	require.NoError(t, r.SetEvictable(1, true))
	require.NoError(t, r.SetEvictable(2, true))

	// Frames 0 and 2 are still history-list residents (c=1 < K); frame
	// 1 has graduated to the cache list. History is evicted first, and
	// within history the oldest (frame 0) goes before frame 2.
	fid, ok := r.Evict()
	require.True(t, ok)
	require.Equal(t, types.FrameID(0), fid)

	fid, ok = r.Evict()
	require.True(t, ok)
	require.Equal(t, types.FrameID(2), fid)

	// Only frame 1 (cache list) remains.
	fid, ok = r.Evict()
	require.True(t, ok)
	require.Equal(t, types.FrameID(1), fid)

	_, ok = r.Evict()
	require.False(t, ok)
}

func TestSetEvictableIsIdempotentOnSize(t *testing.T) {
	r := New(2, 2)
	require.NoError(t, r.RecordAccess(0))

	require.NoError(t, r.SetEvictable(0, true))
	require.Equal(t, 1, r.Size())

	// Setting the same flag again must not double-count.
	require.NoError(t, r.SetEvictable(0, true))
	require.Equal(t, 1, r.Size())

	require.NoError(t, r.SetEvictable(0, false))
	require.Equal(t, 0, r.Size())
	require.NoError(t, r.SetEvictable(0, false))
	require.Equal(t, 0, r.Size())
}

func TestRemoveRejectsPinnedFrame(t *testing.T) {
	r := New(2, 2)
	require.NoError(t, r.RecordAccess(0))
	// Not evictable (still "pinned" conceptually).
	err := r.Remove(0)
	require.Error(t, err)
	require.True(t, IsNotEvictable(err))

	require.NoError(t, r.SetEvictable(0, true))
	require.NoError(t, r.Remove(0))
	require.Equal(t, 0, r.Size())
}

func TestRemoveNeverAccessedIsNoop(t *testing.T) {
	r := New(4, 2)
	require.NoError(t, r.Remove(3))
}

func TestOutOfRangeFrameIsRejected(t *testing.T) {
	r := New(2, 2)

	err := r.RecordAccess(2)
	require.Error(t, err)
	require.True(t, IsInvalidFrame(err))

	err = r.SetEvictable(-1, true)
	require.Error(t, err)
	require.True(t, IsInvalidFrame(err))

	err = r.Remove(100)
	require.Error(t, err)
	require.True(t, IsInvalidFrame(err))
}

func TestAllSixAccessedOnceEvictsEarliestFirst(t *testing.T) {
	// Scenario 3 from the spec's testable properties: access frames
	// {1..6} once each, then Evict must return the frame accessed
	// first (1), because every frame is a K=2 history-list resident.
	r := New(7, 2)
	for fid := types.FrameID(1); fid <= 6; fid++ {
		require.NoError(t, r.RecordAccess(fid))
		require.NoError(t, r.SetEvictable(fid, true))
	}

	fid, ok := r.Evict()
	require.True(t, ok)
	require.Equal(t, types.FrameID(1), fid)
}
