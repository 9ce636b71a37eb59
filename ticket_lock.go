package dinex

import (
	"sync/atomic"
)

// TicketLock is a fair, FIFO mutex: goroutines acquire the lock in the
// exact order they called Lock, which rules out barging and keeps grant
// latency bounded under contention.
//
// Both counters of the classic ticket algorithm live in one 64-bit word
// (next ticket in the high half, now-serving in the low half), so the
// whole lock is a single cache line touch. Waiters use a hybrid
// spin-then-sleep strategy rather than pure busy-wait.
//
// It is intended for very small critical sections (a handful of field
// reads and writes) where fairness is strictly required, such as the
// table's state scan.
//
// It is zero-value usable. Size: 8 bytes.
type TicketLock struct {
	_     noCopy
	state atomic.Uint64
}

const ticketServingMask = 0xFFFFFFFF

// Lock acquires the lock, blocking until this caller's ticket is served.
func (l *TicketLock) Lock() {
	my := uint32(l.state.Add(1<<32)>>32) - 1
	var spins int
	for uint32(l.state.Load()&ticketServingMask) != my {
		delay(&spins)
	}
}

// Unlock releases the lock, admitting the next ticket holder.
//
// Serving cannot advance with a plain Add: a wrap-around of the low half
// at 2^32 would carry into the ticket half and desync the two counters.
// The CAS loop only ever contends with Lock calls taking tickets, never
// with another Unlock.
func (l *TicketLock) Unlock() {
	for {
		v := l.state.Load()
		next := (v + 1) & ticketServingMask
		if l.state.CompareAndSwap(v, v&^uint64(ticketServingMask)|next) {
			return
		}
	}
}
