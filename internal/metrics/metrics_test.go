package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue は指定名のカウンタ値を取得するテストヘルパー。
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range metrics {
		if mf.GetName() == name {
			var total float64
			for _, m := range mf.GetMetric() {
				total += m.GetCounter().GetValue()
			}
			return total
		}
	}
	t.Fatalf("metric %q not found", name)
	return 0
}

// TestNewCollector_ReturnsNonNil はCollectorが正常に生成されることを検証する。
func TestNewCollector_ReturnsNonNil(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil Collector")
	}
}

// TestRecordPlanSuccess_IncrementsCounter はプラン生成成功カウンタが増加することを検証する。
func TestRecordPlanSuccess_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordPlanSuccess()
	c.RecordPlanSuccess()

	if val := counterValue(t, reg, "nutriplan_plan_success_total"); val != 2 {
		t.Errorf("plan_success_total = %v, want 2", val)
	}
}

// TestRecordPlanFailure_IncrementsCounter はプラン生成失敗カウンタが理由別に増加することを検証する。
func TestRecordPlanFailure_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordPlanFailure("upstream")
	c.RecordPlanFailure("misconfigured")

	if val := counterValue(t, reg, "nutriplan_plan_fail_total"); val != 2 {
		t.Errorf("plan_fail_total = %v, want 2", val)
	}
}

// TestRecordUpstreamStatus_LabelsByCode はステータスコード別にカウントされることを検証する。
func TestRecordUpstreamStatus_LabelsByCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordUpstreamStatus(200)
	c.RecordUpstreamStatus(429)
	c.RecordUpstreamStatus(429)

	if val := counterValue(t, reg, "nutriplan_upstream_status_total"); val != 3 {
		t.Errorf("upstream_status_total = %v, want 3", val)
	}
}

// TestRecordHistoryWriteFailure_IncrementsCounter は履歴書き込み失敗カウンタが増加することを検証する。
func TestRecordHistoryWriteFailure_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHistoryWriteFailure()

	if val := counterValue(t, reg, "nutriplan_history_write_fail_total"); val != 1 {
		t.Errorf("history_write_fail_total = %v, want 1", val)
	}
}

// TestHandler_ServesMetrics は/metricsハンドラーが登録済みメトリクスを出力することを検証する。
func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordPlanSuccess()
	c.RecordUpstreamLatency(123 * time.Millisecond)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("failed to scrape metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}

	output := string(body)
	if !strings.Contains(output, "nutriplan_plan_success_total") {
		t.Error("output should contain nutriplan_plan_success_total")
	}
	if !strings.Contains(output, "nutriplan_upstream_latency_seconds") {
		t.Error("output should contain nutriplan_upstream_latency_seconds")
	}
}
