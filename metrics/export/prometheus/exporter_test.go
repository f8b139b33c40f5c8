package prometheus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrEthical07/authcore"
	"github.com/MrEthical07/authcore/credstore"
	"github.com/MrEthical07/authcore/metrics"
	"github.com/MrEthical07/authcore/remote/remotetest"
)

type fakeSource struct {
	snapshot metrics.Snapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() metrics.Snapshot { return f.snapshot }
func (f fakeSource) AuditDropped() uint64              { return f.dropped }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewFromSource(fakeSource{snapshot: metrics.New(metrics.Config{}).Snapshot()})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderFromLiveMetrics(t *testing.T) {
	m := metrics.New(metrics.Config{Enabled: true, EnableLatencyHistograms: true})
	m.Inc(metrics.LoginSuccess)
	m.Inc(metrics.LoginSuccess)
	m.Inc(metrics.BiometricFailure)

	out := NewFromSource(fakeSource{snapshot: m.Snapshot(), dropped: 4}).Render()
	for _, want := range []string{
		"# TYPE authcore_login_success_total counter",
		"authcore_login_success_total 2",
		"authcore_biometric_failure_total 1",
		"authcore_logout_total 0",
		"authcore_audit_dropped_total 4",
		"# TYPE authcore_login_latency_seconds histogram",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestRenderHistogramIsCumulative(t *testing.T) {
	exp := NewFromSource(fakeSource{
		snapshot: metrics.Snapshot{
			Counters: map[metrics.ID]uint64{metrics.LoginSuccess: 7},
			Histograms: map[metrics.ID][]uint64{
				metrics.LoginLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
	})

	out := exp.Render()
	if !strings.Contains(out, "authcore_login_latency_seconds_bucket{le=\"0.05\"} 1") {
		t.Fatalf("expected first bucket, got:\n%s", out)
	}
	if !strings.Contains(out, "authcore_login_latency_seconds_bucket{le=\"+Inf\"} 36") {
		t.Fatalf("expected cumulative +Inf bucket, got:\n%s", out)
	}
	if !strings.Contains(out, "authcore_login_latency_seconds_count 36") {
		t.Fatalf("expected count, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewFromSource(fakeSource{
		snapshot: metrics.Snapshot{
			Counters:   map[metrics.ID]uint64{metrics.Logout: 1},
			Histograms: map[metrics.ID][]uint64{},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "authcore_logout_total 1") {
		t.Fatalf("unexpected response %d:\n%s", rec.Code, rec.Body.String())
	}
}

func TestRenderNilExporter(t *testing.T) {
	var exp *Exporter
	if exp.Render() != "" {
		t.Fatal("nil exporter renders nothing")
	}
}

func TestNewReadsEngine(t *testing.T) {
	engine, err := authcore.New().
		WithAuthService(&remotetest.Stub{}).
		WithFallbackBackend(credstore.NewMemory()).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	defer engine.Close()

	// The stub has no login configured, so the attempt fails.
	engine.Login(context.Background(), "ana", "secret123", authcore.LoginOptions{})

	out := New(engine).Render()
	if !strings.Contains(out, "authcore_login_failure_total 1") {
		t.Fatalf("expected one failed login in output:\n%s", out)
	}
}
