package indexer

import "sync/atomic"

// IndexLock guards a project root against concurrent indexing runs.
// Callers that fail TryAcquire report "already indexing" instead of queueing.
type IndexLock struct {
	state atomic.Int32 // 0 = idle, 1 = indexing
}

// TryAcquire takes the lock without blocking and reports whether it succeeded
func (l *IndexLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release frees the lock. Only the holder may call it.
func (l *IndexLock) Release() {
	l.state.Store(0)
}

// Held reports whether an indexing run currently holds the lock
func (l *IndexLock) Held() bool {
	return l.state.Load() == 1
}
