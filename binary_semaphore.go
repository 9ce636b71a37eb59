package dinex

import (
	"sync/atomic"

	"github.com/llxisdsh/dinex/internal/opt"
)

// BinarySemaphore is a single-slot blocking signal: the flag it carries is
// 0 or 1 and never accumulates, which is what distinguishes it from a
// counting semaphore.
//
// Behavior:
//   - Signal(): non-blocking. Latches the flag; signaling an
//     already-signaled semaphore has no additional effect. Wakes at most
//     one blocked waiter.
//   - Wait(): blocking. Consumes a pending flag immediately, otherwise
//     parks until Signal, then consumes. No timeout, no cancellation.
//
// The usage contract is one waiter per instance (point-to-point wake-up);
// the type does not enforce it. It is zero-value usable (starts
// unsignaled).
//
// Size: 8 bytes (4 byte state + 4 byte sema).
type BinarySemaphore struct {
	_ noCopy
	// state 32-bit:
	//   bit 0: signaled flag (the single slot)
	//   bit 1: a waiter is parked
	// The combination flag+parked is never stored: Signal clears the
	// parked bit in the same CAS that latches the flag.
	state atomic.Uint32

	sema opt.Sema
}

const (
	binSignaled = 1 << 0
	binParked   = 1 << 1
)

// NewBinarySemaphore returns a semaphore whose initial flag value is
// initial clamped to {0, 1}.
func NewBinarySemaphore(initial int) *BinarySemaphore {
	s := &BinarySemaphore{}
	if initial > 0 {
		s.state.Store(binSignaled)
	}
	return s
}

// Signal latches the flag and wakes the parked waiter, if any.
func (s *BinarySemaphore) Signal() {
	for {
		v := s.state.Load()
		if v&binSignaled != 0 {
			// Already signaled. The slot holds one.
			return
		}
		if s.state.CompareAndSwap(v, binSignaled) {
			if v&binParked != 0 {
				s.sema.Release()
			}
			return
		}
	}
}

// Wait blocks until the flag is latched, consumes it and returns.
func (s *BinarySemaphore) Wait() {
	// Fast path: a signal is already pending.
	if s.state.CompareAndSwap(binSignaled, 0) {
		return
	}
	for {
		v := s.state.Load()
		if v&binSignaled != 0 {
			if s.state.CompareAndSwap(v, v&^binSignaled) {
				return
			}
			continue
		}
		if s.state.CompareAndSwap(v, v|binParked) {
			s.sema.Acquire()
			// Signal latched the flag before waking us; consume it.
			for {
				v = s.state.Load()
				if s.state.CompareAndSwap(v, v&^(binSignaled|binParked)) {
					return
				}
			}
		}
	}
}

// Signaled reports whether a signal is pending. It is an observer for
// monitors and tests, not a synchronization primitive: the value may be
// stale by the time the caller looks at it.
func (s *BinarySemaphore) Signaled() bool {
	return s.state.Load()&binSignaled != 0
}
