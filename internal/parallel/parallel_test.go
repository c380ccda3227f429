package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 10000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
}

func TestForChunks(t *testing.T) {
	cfg := DefaultConfig()

	n := 5000
	covered := make([]int32, n)

	ForChunks(n, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&covered[i], 1)
		}
	}, cfg)

	for i, c := range covered {
		if c != 1 {
			t.Fatalf("index %d covered %d times", i, c)
		}
	}
}

func TestForChunks_Small(t *testing.T) {
	cfg := DefaultConfig()

	// Below MinChunkSize the whole range arrives as one chunk.
	var calls int64
	ForChunks(10, func(start, end int) {
		atomic.AddInt64(&calls, 1)
		if start != 0 || end != 10 {
			t.Errorf("chunk = [%d, %d), want [0, 10)", start, end)
		}
	}, cfg)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
