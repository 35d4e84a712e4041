package brickhole

// DeferredKey identifies a pending deferred action. Scheduling a key that is
// already pending replaces it.
type DeferredKey int

const (
	DeferPenetrateExpiry DeferredKey = iota
	DeferMessageExpiry
)

type deferred struct {
	key    DeferredKey
	due    uint64
	action func()
}

// DeferredQueue holds actions due at a given frame. It is drained once per
// step on the simulation goroutine, so actions never race the step.
type DeferredQueue struct {
	items []deferred
}

// Schedule arms action to run once the frame counter reaches due.
// An existing entry with the same key is dropped (latest deadline wins).
func (q *DeferredQueue) Schedule(key DeferredKey, due uint64, action func()) {
	q.Cancel(key)
	q.items = append(q.items, deferred{key: key, due: due, action: action})
}

// Cancel removes the pending entry for key, if any.
func (q *DeferredQueue) Cancel(key DeferredKey) {
	kept := q.items[:0]
	for _, it := range q.items {
		if it.key != key {
			kept = append(kept, it)
		}
	}
	q.items = kept
}

// Pending reports whether key is scheduled and when it is due.
func (q *DeferredQueue) Pending(key DeferredKey) (uint64, bool) {
	for _, it := range q.items {
		if it.key == key {
			return it.due, true
		}
	}
	return 0, false
}

// Drain runs and removes every action due at or before frame, in schedule order.
// Actions may schedule new entries; those run on a later drain.
func (q *DeferredQueue) Drain(frame uint64) int {
	var due []deferred
	kept := q.items[:0]
	for _, it := range q.items {
		if it.due <= frame {
			due = append(due, it)
		} else {
			kept = append(kept, it)
		}
	}
	q.items = kept
	for _, it := range due {
		it.action()
	}
	return len(due)
}

// Len returns the number of pending actions.
func (q *DeferredQueue) Len() int {
	return len(q.items)
}

// Clear drops all pending actions without running them.
func (q *DeferredQueue) Clear() {
	q.items = q.items[:0]
}
