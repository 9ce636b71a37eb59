package trace

import (
	"sync/atomic"
	"time"

	"github.com/benbjohnson/immutable"
	"github.com/llxisdsh/dinex"
)

// Snapshot is one observation of the whole table: every philosopher's
// state at a single instant, stamped with the time since recording
// started.
type Snapshot struct {
	At     time.Duration
	States []dinex.State
}

// Recorder accumulates snapshots without locks. The history is a
// persistent list swapped in behind an atomic pointer, so a reader
// always sees a complete prefix: snapshots appended after the reader
// grabbed its Recording are simply not part of its view.
//
// Record may be called from any number of goroutines.
type Recorder struct {
	start time.Time
	head  atomic.Pointer[immutable.List[Snapshot]]
}

// NewRecorder returns an empty Recorder whose clock starts now.
func NewRecorder() *Recorder {
	r := &Recorder{start: time.Now()}
	r.head.Store(immutable.NewList[Snapshot]())
	return r
}

// Record appends a snapshot of states stamped with the time elapsed
// since the Recorder was created. The slice is copied.
func (r *Recorder) Record(states []dinex.State) {
	r.RecordAt(time.Since(r.start), states)
}

// RecordAt appends a snapshot with an explicit timestamp. The slice is
// copied.
func (r *Recorder) RecordAt(at time.Duration, states []dinex.State) {
	s := Snapshot{At: at, States: append([]dinex.State(nil), states...)}
	for {
		old := r.head.Load()
		if r.head.CompareAndSwap(old, old.Append(s)) {
			return
		}
	}
}

// Len reports how many snapshots have been recorded so far.
func (r *Recorder) Len() int {
	return r.head.Load().Len()
}

// Recording returns a stable view of everything recorded so far.
func (r *Recorder) Recording() Recording {
	return Recording{list: r.head.Load()}
}

// Recording is an immutable sequence of snapshots. The zero value is
// an empty recording.
type Recording struct {
	list *immutable.List[Snapshot]
}

// Len returns the number of snapshots in the recording.
func (rec Recording) Len() int {
	if rec.list == nil {
		return 0
	}
	return rec.list.Len()
}

// Get returns the i-th snapshot. It panics if i is out of range.
func (rec Recording) Get(i int) Snapshot {
	if rec.list == nil {
		panic("trace: Get on empty recording")
	}
	return rec.list.Get(i)
}

// Range calls fn for each snapshot in order, stopping early if fn
// returns false.
func (rec Recording) Range(fn func(Snapshot) bool) {
	if rec.list == nil {
		return
	}
	itr := rec.list.Iterator()
	for !itr.Done() {
		_, s := itr.Next()
		if !fn(s) {
			return
		}
	}
}
