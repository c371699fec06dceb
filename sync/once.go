package sync

import (
	"sync"
	"sync/atomic"
)

// Once runs f at most once. Unlike sync.Once a caller racing with the
// running f returns immediately instead of waiting for it.
type Once struct {
	done uint32
	m    sync.Mutex
}

// Do reports whether this call ran f.
func (o *Once) Do(f func()) bool {
	if atomic.LoadUint32(&o.done) == 0 {
		return o.doSlow(f)
	}
	return false
}

func (o *Once) Done() bool {
	return atomic.LoadUint32(&o.done) == 1
}

func (o *Once) doSlow(f func()) bool {
	// Add for waiting lock.
	ok := o.m.TryLock()
	if !ok {
		return false
	}
	defer o.m.Unlock()
	if o.done == 0 {
		defer atomic.StoreUint32(&o.done, 1)
		f()
		return true
	}
	return false
}
