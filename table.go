package dinex

import (
	"unsafe"

	"github.com/llxisdsh/dinex/internal/opt"
)

// Table arbitrates fork access for n philosophers seated in a ring.
// Philosopher id's left neighbor is (id+n-1)%n and right neighbor is
// (id+1)%n; both forks are claimed and released together, so the forks
// themselves never appear in the API.
//
// A philosopher calls RequestForks before eating and ReleaseForks after.
// RequestForks blocks until neither neighbor is eating; ReleaseForks
// never blocks. The arbiter guarantees that adjacent philosophers are
// never Eating at the same time, and that every hungry philosopher is
// eventually served as long as meals are finite: a philosopher passed
// over at request time is re-examined each time a neighbor puts its
// forks down, and the wait-for chain around the ring cannot cycle.
//
// All state lives behind one fair ticket lock. The decision to admit a
// philosopher is taken under the lock; the admitted philosopher then
// consumes a signal on its own binary semaphore, possibly without
// blocking at all if a neighbor already signaled it.
//
// A Table must not be copied after first use.
type Table struct {
	_      noCopy
	mu     TicketLock
	states []State
	sems   []paddedSem
}

// paddedSem keeps each philosopher's semaphore on its own cache line so
// a waiter spinning down into the runtime does not bounce the line that
// a neighbor's Signal is about to write.
type paddedSem struct {
	s BinarySemaphore
	_ [(opt.CacheLineSize - unsafe.Sizeof(BinarySemaphore{})%opt.CacheLineSize) % opt.CacheLineSize]byte
}

// NewTable returns a Table for n philosophers, all Thinking, all
// semaphores unsignaled. It panics if n < 1.
//
// n == 1 is a ring of one: the philosopher is its own left and right
// neighbor, and since a Hungry philosopher is never Eating, its request
// is always granted immediately.
func NewTable(n int) *Table {
	if n < 1 {
		panic("dinex: NewTable: ring size must be at least 1")
	}
	return &Table{
		states: make([]State, n),
		sems:   make([]paddedSem, n),
	}
}

// N returns the number of philosophers at the table.
func (t *Table) N() int {
	return len(t.states)
}

func (t *Table) left(id int) int {
	return (id + len(t.states) - 1) % len(t.states)
}

func (t *Table) right(id int) int {
	return (id + 1) % len(t.states)
}

// tryServe admits philosopher p if it is Hungry and neither neighbor is
// Eating. Must be called with t.mu held. Signaling under the lock is
// safe: Signal never blocks, and the signal is remembered if p has not
// reached its Wait yet.
func (t *Table) tryServe(p int) {
	if t.states[p] == Hungry &&
		t.states[t.left(p)] != Eating &&
		t.states[t.right(p)] != Eating {
		t.states[p] = Eating
		t.sems[p].s.Signal()
	}
}

// RequestForks claims both forks for philosopher id, blocking until
// neither neighbor is eating. On return the philosopher is Eating.
//
// It panics if id is out of range or if the philosopher is not
// currently Thinking (double request, or request while eating).
func (t *Table) RequestForks(id int) {
	if id < 0 || id >= len(t.states) {
		panic("dinex: RequestForks: philosopher id out of range")
	}
	t.mu.Lock()
	if t.states[id] != Thinking {
		s := t.states[id]
		t.mu.Unlock()
		panic("dinex: RequestForks: philosopher is already " + s.String())
	}
	t.states[id] = Hungry
	t.tryServe(id)
	t.mu.Unlock()

	// Blocks unless tryServe above (or a neighbor's ReleaseForks racing
	// ahead of us) already signaled. Either way exactly one signal is
	// consumed and states[id] == Eating was set before it was issued.
	t.sems[id].s.Wait()
}

// ReleaseForks puts philosopher id's forks down and hands each one to
// its hungry neighbor when the neighbor's other fork is free too. The
// right neighbor is examined first, then the left. It never blocks.
//
// It panics if id is out of range or if the philosopher is not Eating.
func (t *Table) ReleaseForks(id int) {
	if id < 0 || id >= len(t.states) {
		panic("dinex: ReleaseForks: philosopher id out of range")
	}
	t.mu.Lock()
	if t.states[id] != Eating {
		s := t.states[id]
		t.mu.Unlock()
		panic("dinex: ReleaseForks: philosopher is " + s.String() + ", not EATING")
	}
	t.states[id] = Thinking
	t.tryServe(t.right(id))
	t.tryServe(t.left(id))
	t.mu.Unlock()
}

// States returns a snapshot of every philosopher's state, taken
// atomically under the table lock. The returned slice is the caller's
// to keep.
func (t *Table) States() []State {
	t.mu.Lock()
	out := make([]State, len(t.states))
	copy(out, t.states)
	t.mu.Unlock()
	return out
}
