package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestNilAndDisabledMetricsRecordNothing(t *testing.T) {
	var nilMetrics *Metrics
	nilMetrics.Inc(LoginSuccess)
	nilMetrics.Observe(LoginLatency, time.Second)
	if nilMetrics.Value(LoginSuccess) != 0 || nilMetrics.Enabled() {
		t.Fatal("nil metrics must be inert")
	}

	m := New(Config{})
	m.Inc(LoginSuccess)
	if m.Value(LoginSuccess) != 0 {
		t.Fatal("disabled metrics must not count")
	}
	snap := m.Snapshot()
	if len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatalf("disabled snapshot must be empty, got %+v", snap)
	}
}

func TestIncConcurrent(t *testing.T) {
	m := New(Config{Enabled: true})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Inc(LoginFailure)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(LoginFailure); got != 1600 {
		t.Fatalf("LoginFailure = %d, want 1600", got)
	}
	if got := m.Snapshot().Counters[LoginFailure]; got != 1600 {
		t.Fatalf("snapshot LoginFailure = %d, want 1600", got)
	}
}

func TestIncIgnoresOutOfRange(t *testing.T) {
	m := New(Config{Enabled: true})
	m.Inc(idCount + 3)
	if m.Value(idCount+3) != 0 {
		t.Fatal("out of range id must read zero")
	}
}

func TestObserveLatencyBuckets(t *testing.T) {
	m := New(Config{Enabled: true, EnableLatencyHistograms: true})
	m.Observe(LoginLatency, 10*time.Millisecond)
	m.Observe(LoginLatency, 300*time.Millisecond)
	m.Observe(LoginLatency, time.Minute)
	m.Observe(LoginSuccess, time.Millisecond)

	got := m.Snapshot().Histograms[LoginLatency]
	want := []uint64{1, 0, 0, 1, 0, 0, 0, 1}
	if len(got) != len(want) {
		t.Fatalf("buckets = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bucket %d = %d, want %d (%v)", i, got[i], want[i], got)
		}
	}
	if _, ok := m.Snapshot().Histograms[LoginSuccess]; ok {
		t.Fatal("only LoginLatency has a histogram")
	}
}

func TestLatencyRequiresEnabled(t *testing.T) {
	m := New(Config{EnableLatencyHistograms: true})
	if m.LatencyEnabled() {
		t.Fatal("latency must not be enabled while metrics are disabled")
	}
}
