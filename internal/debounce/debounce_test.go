package debounce

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerSingleCall(t *testing.T) {
	var called int32
	d := New(50 * time.Millisecond)

	d.Do(func() {
		atomic.AddInt32(&called, 1)
	})

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected 1 call, got %d", called)
	}
}

func TestDebouncerCoalescesBurst(t *testing.T) {
	var called int32
	var lastValue int32
	d := New(50 * time.Millisecond)

	// Rapid successive signals, each re-arming with a new value.
	for i := 1; i <= 10; i++ {
		value := int32(i)
		d.Do(func() {
			atomic.StoreInt32(&lastValue, value)
			atomic.AddInt32(&called, 1)
		})
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 1 {
		t.Errorf("Expected 1 call for the burst, got %d", called)
	}
	if atomic.LoadInt32(&lastValue) != 10 {
		t.Errorf("Expected the latest value 10, got %d", lastValue)
	}
}

func TestDebouncerCancel(t *testing.T) {
	var called int32
	d := New(50 * time.Millisecond)

	d.Do(func() {
		atomic.AddInt32(&called, 1)
	})

	time.Sleep(10 * time.Millisecond)
	d.Cancel()

	time.Sleep(100 * time.Millisecond)

	if atomic.LoadInt32(&called) != 0 {
		t.Errorf("Expected 0 calls after cancel, got %d", called)
	}
}

func TestDebouncerFlush(t *testing.T) {
	var called int32
	d := New(50 * time.Millisecond)

	d.Do(func() {
		atomic.AddInt32(&called, 1)
	})

	d.Flush(func() {
		atomic.AddInt32(&called, 10)
	})

	time.Sleep(100 * time.Millisecond)

	// Only the flushed function ran; the pending one was cancelled.
	if atomic.LoadInt32(&called) != 10 {
		t.Errorf("Expected 10 (flush only), got %d", called)
	}
}

func TestDebouncerSeparateBursts(t *testing.T) {
	var called int32
	d := New(30 * time.Millisecond)

	d.Do(func() { atomic.AddInt32(&called, 1) })
	time.Sleep(80 * time.Millisecond)
	d.Do(func() { atomic.AddInt32(&called, 1) })
	time.Sleep(80 * time.Millisecond)

	if atomic.LoadInt32(&called) != 2 {
		t.Errorf("Expected 2 calls for 2 settled bursts, got %d", called)
	}
}
