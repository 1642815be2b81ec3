package todo

import "sync/atomic"

// version is a monotonic counter used as the store's cross-thread ordering
// token: any mutation (including undo/redo) bumps it, and readers (the
// search/diff workers) compare their last-observed value to decide whether
// their cached work is stale.
type version struct {
	n atomic.Uint64
}

func (v *version) get() uint64 { return v.n.Load() }

func (v *version) increment() { v.n.Add(1) }

// reset restarts the counter at zero — used by Store.SetLines, which anchors
// a fresh history the same way a freshly loaded sheet does.
func (v *version) reset() { v.n.Store(0) }
