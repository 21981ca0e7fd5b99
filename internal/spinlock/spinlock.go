// Package spinlock provides a busy waiting mutex for short critical sections.
package spinlock

import (
	"runtime"
	"sync"
	"sync/atomic"
)

var _ sync.Locker = (*Mutex)(nil)

// Mutex is a spinlock. The zero value is unlocked.
type Mutex struct {
	locked atomic.Bool
}

// Lock acquires m, yielding the processor while it is held elsewhere.
func (m *Mutex) Lock() {
	for !m.locked.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// Unlock releases m.
func (m *Mutex) Unlock() {
	if !m.locked.Swap(false) {
		panic("spinlock: unlock of unlocked mutex")
	}
}
