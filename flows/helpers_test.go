package flows

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MrEthical07/authcore/internal/audit"
	"github.com/MrEthical07/authcore/metrics"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

// gate blocks a stubbed remote call until release is closed.
type gate struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGate() *gate {
	return &gate{entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gate) wait(ctx context.Context) {
	g.once.Do(func() { close(g.entered) })
	select {
	case <-g.release:
	case <-ctx.Done():
	}
}

func (g *gate) awaitEntered(t *testing.T) {
	t.Helper()
	select {
	case <-g.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("remote call was never made")
	}
}

func testOptions(sink *audit.ChannelSink, m *metrics.Metrics, onSuccess func()) Options {
	return Options{
		Metrics:   m,
		Audit:     sink,
		Now:       fixedNow,
		OnSuccess: onSuccess,
	}
}

func drain(sink *audit.ChannelSink) []audit.Event {
	var out []audit.Event
	for {
		select {
		case ev := <-sink.Events():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func submitAsync(ctx context.Context, submit func(context.Context) bool) <-chan bool {
	done := make(chan bool, 1)
	go func() { done <- submit(ctx) }()
	return done
}

func requireResult(t *testing.T, done <-chan bool, want bool) {
	t.Helper()
	select {
	case got := <-done:
		require.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("submit did not return")
	}
}
