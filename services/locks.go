package services

import "sync"

// propertyLocks serializes booking writes per property id. Availability
// is validated against sibling bookings, so two concurrent creates (or
// a create racing a confirm) on the same property must not interleave
// between validation and write.
type propertyLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newPropertyLocks() *propertyLocks {
	return &propertyLocks{locks: make(map[uint]*sync.Mutex)}
}

// acquire locks the mutex for propertyID and returns the unlock func.
// Lock entries are kept for the life of the process; the set of
// properties is small and bounded.
func (p *propertyLocks) acquire(propertyID uint) func() {
	p.mu.Lock()
	l, ok := p.locks[propertyID]
	if !ok {
		l = &sync.Mutex{}
		p.locks[propertyID] = l
	}
	p.mu.Unlock()

	l.Lock()
	return l.Unlock
}
