package sync

import (
	"context"
	"sync"
)

// Notifier facilitates one-to-many broadcast notifications. Every listener
// that polls with AwaitChange is guaranteed to observe that a change
// happened, but a slow listener that misses several notifications in between
// calls is only woken once, with the latest sequence number.
type Notifier struct {
	mu      sync.Mutex
	seq     int64
	changed chan struct{} // closed upon notify
}

func NewNotifier() *Notifier {
	return &Notifier{
		changed: make(chan struct{}),
	}
}

func (n *Notifier) NotifyChange() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.seq++
	close(n.changed)
	n.changed = make(chan struct{})
}

func (n *Notifier) LastSeq() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.seq
}

// AwaitChange blocks until the sequence number advances past seq, and returns
// the new sequence number. Calling it with an out of date seq returns the
// current one immediately. If ctx is canceled, seq is returned unchanged.
func (n *Notifier) AwaitChange(ctx context.Context, seq int64) int64 {
	n.mu.Lock()
	cur, changed := n.seq, n.changed
	n.mu.Unlock()

	if cur != seq {
		return cur
	}

	select {
	case <-ctx.Done():
		return seq
	case <-changed:
		return n.LastSeq()
	}
}
