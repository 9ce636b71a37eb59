package opt

import (
	_ "unsafe" // for linkname
)

// Sema is a zero-allocation parking slot backed by the runtime's internal
// semaphore, the same mechanism sync.Mutex sleeps on. Release before
// Acquire is remembered (the runtime semaphore counts), so a wake-up
// issued while the sleeper is still on its way to Acquire is not lost.
//
// Sema carries no state of its own beyond the runtime's counter; callers
// publish their data through atomics before Release.
type Sema uint32

// Acquire blocks the calling goroutine until a Release is available.
func (s *Sema) Acquire() {
	runtime_semacquire((*uint32)(s))
}

// Release wakes one goroutine blocked in Acquire, or banks the wake-up
// for the next Acquire.
func (s *Sema) Release() {
	runtime_semrelease((*uint32)(s), false, 0)
}

//go:linkname runtime_semacquire sync.runtime_Semacquire
func runtime_semacquire(s *uint32)

//go:linkname runtime_semrelease sync.runtime_Semrelease
func runtime_semrelease(s *uint32, handoff bool, skipframes int)
