package trace

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/llxisdsh/dinex"
)

func TestRecordingZeroValue(t *testing.T) {
	var rec Recording
	if rec.Len() != 0 {
		t.Fatalf("zero recording Len = %d, want 0", rec.Len())
	}
	rec.Range(func(Snapshot) bool {
		t.Fatal("Range visited a snapshot in an empty recording")
		return false
	})
}

func TestRecorderRecord(t *testing.T) {
	r := NewRecorder()
	if r.Len() != 0 {
		t.Fatalf("fresh recorder Len = %d, want 0", r.Len())
	}

	states := []dinex.State{dinex.Thinking, dinex.Eating, dinex.Thinking}
	r.RecordAt(5*time.Millisecond, states)

	// The recorder must have taken its own copy.
	states[0] = dinex.Eating

	rec := r.Recording()
	if rec.Len() != 1 {
		t.Fatalf("Len = %d, want 1", rec.Len())
	}
	s := rec.Get(0)
	if s.At != 5*time.Millisecond {
		t.Errorf("At = %v, want 5ms", s.At)
	}
	if s.States[0] != dinex.Thinking {
		t.Error("snapshot aliased the caller's slice")
	}
}

func TestRecordingStableView(t *testing.T) {
	r := NewRecorder()
	r.RecordAt(0, []dinex.State{dinex.Eating})
	rec := r.Recording()

	r.RecordAt(time.Millisecond, []dinex.State{dinex.Thinking})
	r.RecordAt(2*time.Millisecond, []dinex.State{dinex.Hungry})

	if rec.Len() != 1 {
		t.Fatalf("view grew after later records: Len = %d, want 1", rec.Len())
	}
	if r.Recording().Len() != 3 {
		t.Fatalf("recorder Len = %d, want 3", r.Recording().Len())
	}
}

func TestRecorderConcurrent(t *testing.T) {
	r := NewRecorder()
	const appenders = 4
	const each = 250

	stop := make(chan struct{})
	var torn atomic.Bool
	var readers sync.WaitGroup
	readers.Add(2)
	for range 2 {
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				rec := r.Recording()
				want := rec.Len()
				got := 0
				rec.Range(func(Snapshot) bool {
					got++
					return true
				})
				if got != want {
					torn.Store(true)
					return
				}
				runtime.Gosched()
			}
		}()
	}

	var wg sync.WaitGroup
	wg.Add(appenders)
	for i := range appenders {
		go func() {
			defer wg.Done()
			states := []dinex.State{dinex.State(i % 3)}
			for j := range each {
				r.RecordAt(time.Duration(j), states)
			}
		}()
	}
	wg.Wait()
	close(stop)
	readers.Wait()

	if torn.Load() {
		t.Fatal("a reader saw its recording change under iteration")
	}
	if got := r.Recording().Len(); got != appenders*each {
		t.Fatalf("recorded %d snapshots, want %d", got, appenders*each)
	}
}
