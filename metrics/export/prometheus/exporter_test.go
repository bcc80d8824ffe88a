package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chalito "github.com/elchalito/chalito-go"
)

type fakeSource struct {
	snapshot chalito.MetricsSnapshot
	dropped  uint64
}

func (f fakeSource) MetricsSnapshot() chalito.MetricsSnapshot { return f.snapshot }
func (f fakeSource) NotificationsDropped() uint64             { return f.dropped }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: chalito.MetricsSnapshot{
			Counters: map[chalito.MetricID]uint64{},
		},
	})

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderIncludesCountersAndDropped(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: chalito.MetricsSnapshot{
			Counters: map[chalito.MetricID]uint64{
				chalito.MetricLoginSuccess:     7,
				chalito.MetricRefreshCoalesced: 12,
			},
		},
		dropped: 2,
	})

	out := exp.Render()
	if !strings.Contains(out, "chalito_login_success_total 7") {
		t.Fatalf("expected login_success counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "chalito_refresh_coalesced_total 12") {
		t.Fatalf("expected refresh_coalesced counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "chalito_notifications_dropped_total 2") {
		t.Fatalf("expected dropped counter in output, got:\n%s", out)
	}
	if !strings.Contains(out, "# TYPE chalito_login_success_total counter") {
		t.Fatalf("expected TYPE line in output, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewPrometheusExporterFromSource(fakeSource{
		snapshot: chalito.MetricsSnapshot{
			Counters: map[chalito.MetricID]uint64{chalito.MetricLoginSuccess: 1},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
