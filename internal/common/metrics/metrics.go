// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SourceAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_source_attempts_total",
			Help: "Total number of answer attempts per source and outcome",
		},
		[]string{"source", "outcome"},
	)

	ChatResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_resolutions_total",
			Help: "Total number of resolved chats by winning source",
		},
		[]string{"source"},
	)

	PolicyVerdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_policy_verdicts_total",
			Help: "Total number of policy verdicts by category",
		},
		[]string{"category"},
	)

	ChatDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chat_resolution_duration_seconds",
			Help: "Duration of end-to-end chat resolution in seconds",
		},
		[]string{"source"},
	)

	RecordSinkFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_record_sink_failures_total",
			Help: "Total number of swallowed chat persistence failures",
		},
	)

	FormsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forms_generated_total",
			Help: "Total number of generated legal forms by type",
		},
		[]string{"form_type"},
	)
)
