// Package metrics defines the bot's Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Update processing
	UpdatesTotal            *prometheus.CounterVec
	DispatchDurationSeconds *prometheus.HistogramVec
	ResponsesTotal          *prometheus.CounterVec
	SendErrorsTotal         *prometheus.CounterVec

	// Catalog gauges, refreshed by the catalog_metrics task
	Chats    prometheus.Gauge
	Stickers prometheus.Gauge
	Bindings prometheus.Gauge

	// Scheduled tasks
	TaskRunsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		UpdatesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stickerbot_updates_total",
				Help: "Total number of processed updates by event type and status",
			},
			[]string{"event_type", "status"}, // status: success, error
		),

		DispatchDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stickerbot_dispatch_duration_seconds",
				Help:    "Update processing duration in seconds by event type",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
			[]string{"event_type"},
		),

		ResponsesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stickerbot_responses_total",
				Help: "Total number of outgoing responses by kind",
			},
			[]string{"kind"}, // kind: none, sticker, text, edit
		),

		SendErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stickerbot_send_errors_total",
				Help: "Total number of failed Telegram API calls by method",
			},
			[]string{"method"},
		),

		Chats: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "stickerbot_chats",
			Help: "Number of known chats",
		}),
		Stickers: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "stickerbot_stickers",
			Help: "Number of known stickers",
		}),
		Bindings: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "stickerbot_word_bindings",
			Help: "Number of word bindings across all chats",
		}),

		TaskRunsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "stickerbot_task_runs_total",
				Help: "Total number of scheduled task runs by task and status",
			},
			[]string{"task", "status"},
		),
	}
}

// RecordUpdate records one processed update.
func (m *Metrics) RecordUpdate(eventType, status string, duration float64) {
	m.UpdatesTotal.WithLabelValues(eventType, status).Inc()
	m.DispatchDurationSeconds.WithLabelValues(eventType).Observe(duration)
}

// RecordResponse counts an outgoing response by kind.
func (m *Metrics) RecordResponse(kind string) {
	m.ResponsesTotal.WithLabelValues(kind).Inc()
}

// RecordSendError counts a failed Telegram API call.
func (m *Metrics) RecordSendError(method string) {
	m.SendErrorsTotal.WithLabelValues(method).Inc()
}

// SetCatalog updates the catalog gauges.
func (m *Metrics) SetCatalog(chats, stickers, bindings int64) {
	m.Chats.Set(float64(chats))
	m.Stickers.Set(float64(stickers))
	m.Bindings.Set(float64(bindings))
}

// RecordTaskRun counts one scheduled task execution.
func (m *Metrics) RecordTaskRun(task, status string) {
	m.TaskRunsTotal.WithLabelValues(task, status).Inc()
}
