package dinex

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unsafe"
)

func TestLatchSize(t *testing.T) {
	var l Latch
	if size := unsafe.Sizeof(l); size != 8 {
		t.Errorf("Latch size = %d, want 8", size)
	}
}

func TestLatchStartsClosed(t *testing.T) {
	var l Latch
	if l.Opened() {
		t.Fatal("zero-value Latch reports open")
	}

	passed := make(chan struct{})
	go func() {
		l.Wait()
		close(passed)
	}()

	select {
	case <-passed:
		t.Fatal("Wait returned before Open")
	case <-time.After(10 * time.Millisecond):
		// OK, parked
	}

	l.Open()
	select {
	case <-passed:
	case <-time.After(time.Second):
		t.Fatal("Wait still blocked after Open")
	}
	if !l.Opened() {
		t.Error("Opened reports false after Open")
	}
}

// The start-door role: a full line of goroutines parks on Wait, nobody
// slips through early, and one Open releases the whole line at once.
func TestLatchStartDoor(t *testing.T) {
	var l Latch
	const n = 10

	var through atomic.Int32
	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			l.Wait()
			through.Add(1)
		}()
	}

	// The waiter count lives in the state bits above the open flag, so
	// the test can tell "all parked" apart from "still spawning".
	for l.state.Load()>>1 != n {
		runtime.Gosched()
	}
	if c := through.Load(); c != 0 {
		t.Fatalf("%d waiters passed the closed door", c)
	}

	l.Open()
	wg.Wait()
	if c := through.Load(); c != n {
		t.Fatalf("%d of %d waiters went through", c, n)
	}
}

func TestLatchOpenThenWait(t *testing.T) {
	var l Latch
	l.Open()

	done := make(chan struct{})
	go func() {
		l.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait blocked on an open Latch")
	}
}

func TestLatchOpenIdempotent(t *testing.T) {
	var l Latch
	l.Open()
	l.Open()
	if !l.Opened() {
		t.Fatal("Opened reports false after double Open")
	}
	l.Wait() // a late arrival passes an already-open door
}
