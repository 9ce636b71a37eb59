package dinex

import (
	"runtime"
	"sync"
	"testing"
	"unsafe"
)

func TestTicketLockSize(t *testing.T) {
	var m TicketLock
	if size := unsafe.Sizeof(m); size != 8 {
		t.Errorf("TicketLock size = %d, want 8", size)
	}
}

func TestTicketLock(t *testing.T) {
	var m TicketLock
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	var counter int64
	for range n {
		go func() {
			defer wg.Done()
			m.Lock()
			counter++
			m.Unlock()
		}()
	}
	wg.Wait()
	if counter != n {
		t.Fatalf("counter = %d, want %d", counter, n)
	}
}

func TestTicketLockFIFO(t *testing.T) {
	var m TicketLock

	// Hold the lock while a line of goroutines draws tickets one at a
	// time; the order Lock admits them must match draw order.
	m.Lock()

	const n = 16
	order := make(chan int, n)
	for i := range n {
		go func() {
			m.Lock()
			order <- i
			m.Unlock()
		}()
		// Wait until goroutine i has drawn its ticket (tickets issued:
		// ours plus i+1) before starting the next, so draw order is
		// fixed.
		for uint32(m.state.Load()>>32) != uint32(i)+2 {
			runtime.Gosched()
		}
	}

	m.Unlock()

	for want := range n {
		if got := <-order; got != want {
			t.Fatalf("admitted %d in position %d", got, want)
		}
	}
}
