package bufferpool

import (
	"sync"

	"PageVaultDB/storage_engine/disk"
	"PageVaultDB/storage_engine/frame"
	"PageVaultDB/storage_engine/hashtable"
	"PageVaultDB/storage_engine/replacer"
	"PageVaultDB/types"
)

// Config parameterizes a Manager's fixed-size resources. There is no
// file/env parsing here — that is startup glue, out of scope per the
// spec's non-goals — callers construct Config values directly.
type Config struct {
	PoolSize   int // N, number of frames
	ReplacerK  int // K, LRU-K history depth
	BucketSize int // B, extendible hash table bucket capacity
}

// Manager is the buffer pool manager: the frame array, free list,
// page-id directory, and eviction policy composed around a disk
// collaborator. Every exported method is serialized by mu; the
// directory and replacer's own locks are always acquired from inside
// a call already holding mu (Pool -> Hash Table -> Replacer, never
// the other way around).
type Manager struct {
	mu sync.Mutex

	frames   []*frame.Frame
	freeList []types.FrameID

	table    *hashtable.Table[types.PageID, types.FrameID]
	replacer *replacer.LRUKReplacer
	disk     disk.Manager

	nextPageID types.PageID
	hotPages   *hotPageTracker
}

// NewManager builds a pool of cfg.PoolSize frames backed by d.
func NewManager(cfg Config, d disk.Manager) *Manager {
	frames := make([]*frame.Frame, cfg.PoolSize)
	freeList := make([]types.FrameID, cfg.PoolSize)
	for i := 0; i < cfg.PoolSize; i++ {
		frames[i] = frame.New()
		freeList[i] = types.FrameID(i)
	}

	return &Manager{
		frames:   frames,
		freeList: freeList,
		table:    hashtable.New[types.PageID, types.FrameID](cfg.BucketSize, hashtable.HashPageID),
		replacer: replacer.New(cfg.PoolSize, cfg.ReplacerK),
		disk:     d,
		hotPages: newHotPageTracker(),
	}
}
