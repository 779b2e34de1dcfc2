// Package metrics exposes prometheus instrumentation for the assistant core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the collectors used across the core. All fields are
// safe for concurrent use.
type Metrics struct {
	registry *prometheus.Registry

	Classifications  *prometheus.CounterVec
	Dispatches       *prometheus.CounterVec
	RemindersFired   *prometheus.CounterVec
	FocusTransitions prometheus.Counter
	HealthAlerts     prometheus.Counter
	MonitorErrors    *prometheus.CounterVec
	FocusActive      prometheus.Gauge
}

// New creates a Metrics set registered on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		Classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aria",
			Name:      "classifications_total",
			Help:      "Intent classifications by intent and source (fastpath, model, fallback, cache).",
		}, []string{"intent", "source"}),
		Dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aria",
			Name:      "dispatches_total",
			Help:      "Handler dispatches by intent.",
		}, []string{"intent"}),
		RemindersFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aria",
			Name:      "reminders_fired_total",
			Help:      "Proactive reminders fired by threshold.",
		}, []string{"threshold"}),
		FocusTransitions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aria",
			Name:      "focus_transitions_total",
			Help:      "Focus-mode activations and deactivations.",
		}),
		HealthAlerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aria",
			Name:      "health_alerts_total",
			Help:      "Health alerts emitted.",
		}),
		MonitorErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aria",
			Name:      "monitor_errors_total",
			Help:      "Collaborator failures inside monitor loops, by loop.",
		}, []string{"loop"}),
		FocusActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aria",
			Name:      "focus_active",
			Help:      "Whether focus mode is currently active (0 or 1).",
		}),
	}

	registry.MustRegister(
		m.Classifications,
		m.Dispatches,
		m.RemindersFired,
		m.FocusTransitions,
		m.HealthAlerts,
		m.MonitorErrors,
		m.FocusActive,
	)
	return m
}

// Registry returns the underlying registry for HTTP exposition.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
