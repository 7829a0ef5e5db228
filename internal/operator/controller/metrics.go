package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	shoebillv1alpha1 "github.com/badhouseplants/shoebill/api/v1alpha1"
)

const (
	actionApply    = "apply"
	actionCleanup  = "cleanup"
	actionFinalize = "finalize"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	// Reconciliation metrics
	reconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shoebill",
			Subsystem: "controller",
			Name:      "reconcile_total",
			Help:      "Total number of reconciliations by action and result",
		},
		[]string{"configset", "action", "result"},
	)

	reconcileDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shoebill",
			Subsystem: "controller",
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of reconciliation in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~2.5s
		},
		[]string{"action"},
	)

	// Target metrics
	targetsWrittenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shoebill",
			Subsystem: "targets",
			Name:      "written_total",
			Help:      "Total number of target write-backs by kind and result",
		},
		[]string{"kind", "result"},
	)

	targetsCreatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shoebill",
			Subsystem: "targets",
			Name:      "created_total",
			Help:      "Total number of target resources created on behalf of a ConfigSet",
		},
		[]string{"configset"},
	)

	// Template metrics
	templatesRenderedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shoebill",
			Subsystem: "templates",
			Name:      "rendered_total",
			Help:      "Total number of rendered templates by result",
		},
		[]string{"result"},
	)
)

func init() {
	// Register metrics with controller-runtime's registry
	metrics.Registry.MustRegister(
		reconcileTotal,
		reconcileDuration,
		targetsWrittenTotal,
		targetsCreatedTotal,
		templatesRenderedTotal,
	)
}

// recordReconcileMetric records a reconciliation result.
func recordReconcileMetric(configSet, action, result string, duration float64) {
	reconcileTotal.WithLabelValues(configSet, action, result).Inc()
	reconcileDuration.WithLabelValues(action).Observe(duration)
}

// recordTargetWrittenMetric records a write-back of one target.
func recordTargetWrittenMetric(kind shoebillv1alpha1.Kind, result string) {
	targetsWrittenTotal.WithLabelValues(string(kind), result).Inc()
}

// recordTargetsCreatedMetric records targets created for a ConfigSet.
func recordTargetsCreatedMetric(configSet string, count int) {
	if count > 0 {
		targetsCreatedTotal.WithLabelValues(configSet).Add(float64(count))
	}
}

// recordTemplatesRenderedMetric records rendered templates.
func recordTemplatesRenderedMetric(result string, count int) {
	if count > 0 {
		templatesRenderedTotal.WithLabelValues(result).Add(float64(count))
	}
}

// Metrics helper methods that check enableMetrics before recording.

func (r *ConfigSetReconciler) recordReconcile(configSet, action, result string, duration float64) {
	if r.enableMetrics {
		recordReconcileMetric(configSet, action, result, duration)
	}
}

func (r *ConfigSetReconciler) recordTargetWritten(kind shoebillv1alpha1.Kind, result string) {
	if r.enableMetrics {
		recordTargetWrittenMetric(kind, result)
	}
}

func (r *ConfigSetReconciler) recordTargetsCreated(configSet string, count int) {
	if r.enableMetrics {
		recordTargetsCreatedMetric(configSet, count)
	}
}

func (r *ConfigSetReconciler) recordTemplatesRendered(result string, count int) {
	if r.enableMetrics {
		recordTemplatesRenderedMetric(result, count)
	}
}
