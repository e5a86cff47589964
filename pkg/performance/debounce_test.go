package performance

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebounceCoalescesCalls(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls int32
	done := make(chan struct{}, 5)

	for i := 0; i < 5; i++ {
		d.Debounce("notes", func() {
			atomic.AddInt32(&calls, 1)
			done <- struct{}{}
		})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}
	time.Sleep(50 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}

func TestDebounceCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls int32

	d.Debounce("trash", func() { atomic.AddInt32(&calls, 1) })
	d.Cancel("trash")
	time.Sleep(50 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("calls = %d, want 0", got)
	}
}

func TestDebounceClear(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls int32

	d.Debounce("a", func() { atomic.AddInt32(&calls, 1) })
	d.Debounce("b", func() { atomic.AddInt32(&calls, 1) })
	d.Clear()
	time.Sleep(50 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("calls = %d, want 0", got)
	}
}
