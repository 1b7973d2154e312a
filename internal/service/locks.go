package service

import "sync"

// interviewLocks serializes mutating operations per interview so two
// concurrent submissions can never both read the same question index, and
// a completion cannot race a cancellation. Entries are never removed; the
// map is bounded by the number of distinct interviews touched by this
// process.
type interviewLocks struct {
	locks sync.Map // interviewID -> *sync.Mutex
}

func (l *interviewLocks) get(interviewID string) *sync.Mutex {
	mu, _ := l.locks.LoadOrStore(interviewID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
