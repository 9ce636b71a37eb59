package dinex

import (
	"sync/atomic"

	"github.com/llxisdsh/dinex/internal/opt"
)

// Latch is a one-shot "wait for the door to open" primitive with any
// number of waiters. Once Open is called, all current and future Wait
// calls return immediately. There is no way to close the door again.
//
// Simulations use it to line up philosopher goroutines on a common
// start signal, so no goroutine gets a head start while the others are
// still being spawned.
//
// It is zero-value usable. Size: 8 bytes.
type Latch struct {
	_ noCopy
	// state 32-bit:
	//   bit 0: open flag (1 = open)
	//   bits 1-31: waiter count
	state atomic.Uint32
	sema  opt.Sema
}

const (
	latchOpenFlag  = 1
	latchOneWaiter = 2 // 1 << 1
)

// Open opens the door, waking every currently blocked waiter.
// Any future Wait calls return immediately. Open is idempotent.
func (l *Latch) Open() {
	for {
		s := l.state.Load()
		if s&latchOpenFlag != 0 {
			return
		}
		if l.state.CompareAndSwap(s, s|latchOpenFlag) {
			waiters := s >> 1
			for range waiters {
				l.sema.Release()
			}
			return
		}
	}
}

// Wait blocks until Open is called.
// If Open has already been called, it returns immediately.
func (l *Latch) Wait() {
	for {
		s := l.state.Load()
		if s&latchOpenFlag != 0 {
			return
		}

		if l.state.CompareAndSwap(s, s+latchOneWaiter) {
			l.sema.Acquire()
			return
		}
	}
}

// Opened reports whether Open has been called.
func (l *Latch) Opened() bool {
	return l.state.Load()&latchOpenFlag != 0
}
