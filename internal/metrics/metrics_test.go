package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// findMetric は指定名・ラベルのメトリクスを探す。
func findMetric(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) *dto.Metric {
	t.Helper()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelsMatch(m, labels) {
				return m
			}
		}
	}
	return nil
}

func labelsMatch(m *dto.Metric, want map[string]string) bool {
	got := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	if c := NewCollector(reg); c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// TestNewCollector_DoubleRegisterPanics は同じレジストリへの二重登録がpanicすることを検証する。
func TestNewCollector_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_ = NewCollector(reg)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	_ = NewCollector(reg)
}

func TestObserveHTTPRequest_CountsByRouteAndStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveHTTPRequest("GET", "/api/v1/users/{uid}", 200, 15*time.Millisecond)
	c.ObserveHTTPRequest("GET", "/api/v1/users/{uid}", 200, 5*time.Millisecond)
	c.ObserveHTTPRequest("GET", "/api/v1/users/{uid}", 400, time.Millisecond)

	ok := findMetric(t, reg, "usersapi_http_requests_total",
		map[string]string{"method": "GET", "route": "/api/v1/users/{uid}", "status": "200"})
	if ok == nil {
		t.Fatal("usersapi_http_requests_total{status=200} not found")
	}
	if got := ok.GetCounter().GetValue(); got != 2 {
		t.Errorf("requests{status=200} = %v, want 2", got)
	}

	hist := findMetric(t, reg, "usersapi_http_request_duration_seconds",
		map[string]string{"method": "GET", "route": "/api/v1/users/{uid}"})
	if hist == nil {
		t.Fatal("usersapi_http_request_duration_seconds not found")
	}
	if got := hist.GetHistogram().GetSampleCount(); got != 3 {
		t.Errorf("duration sample count = %d, want 3", got)
	}
}

func TestRecordUserMutation_IncrementsByOperationAndResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUserMutation("create", "success")
	c.RecordUserMutation("create", "persistence")
	c.RecordUserMutation("create", "success")

	m := findMetric(t, reg, "usersapi_user_mutations_total",
		map[string]string{"operation": "create", "result": "success"})
	if m == nil {
		t.Fatal("usersapi_user_mutations_total not found")
	}
	if got := m.GetCounter().GetValue(); got != 2 {
		t.Errorf("mutations{create,success} = %v, want 2", got)
	}
}
