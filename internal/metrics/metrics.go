// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ミールプランパイプラインから利用する。
type MetricsCollector interface {
	RecordPlanSuccess()
	RecordPlanFailure(reason string)
	RecordUpstreamStatus(statusCode int)
	RecordUpstreamLatency(duration time.Duration)
	RecordHistoryWriteFailure()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	planSuccess      prometheus.Counter
	planFail         *prometheus.CounterVec
	upstreamStatus   *prometheus.CounterVec
	upstreamLatency  prometheus.Histogram
	historyWriteFail prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		planSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nutriplan_plan_success_total",
			Help: "ミールプラン生成成功の合計数",
		}),
		planFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nutriplan_plan_fail_total",
			Help: "ミールプラン生成失敗の合計数（理由別）",
		}, []string{"reason"}),
		upstreamStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nutriplan_upstream_status_total",
			Help: "上流Chat Completions APIのHTTPステータスコード別レスポンス数",
		}, []string{"status_code"}),
		upstreamLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "nutriplan_upstream_latency_seconds",
			Help:    "上流Chat Completions API呼び出しのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		historyWriteFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nutriplan_history_write_fail_total",
			Help: "ベストエフォート履歴書き込み失敗の合計数",
		}),
	}

	reg.MustRegister(
		c.planSuccess,
		c.planFail,
		c.upstreamStatus,
		c.upstreamLatency,
		c.historyWriteFail,
	)

	return c
}

// RecordPlanSuccess はプラン生成成功を記録する。
func (c *Collector) RecordPlanSuccess() {
	c.planSuccess.Inc()
}

// RecordPlanFailure はプラン生成失敗を理由付きで記録する。
func (c *Collector) RecordPlanFailure(reason string) {
	c.planFail.WithLabelValues(reason).Inc()
}

// RecordUpstreamStatus は上流APIのHTTPステータスコードを記録する。
func (c *Collector) RecordUpstreamStatus(statusCode int) {
	c.upstreamStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordUpstreamLatency は上流API呼び出しのレイテンシを記録する。
func (c *Collector) RecordUpstreamLatency(duration time.Duration) {
	c.upstreamLatency.Observe(duration.Seconds())
}

// RecordHistoryWriteFailure は履歴書き込み失敗を記録する。
func (c *Collector) RecordHistoryWriteFailure() {
	c.historyWriteFail.Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ MetricsCollector = (*Collector)(nil)
