package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "volunteerhub"

// Metrics is safe to use through a nil pointer; every observation is then
// dropped.
type Metrics struct {
	registrations *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	reconciled    prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Registration attempts by outcome.",
		}, []string{"outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registration_transitions_total",
			Help:      "Registration status updates by requested action and outcome.",
		}, []string{"action", "outcome"}),
		reconciled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconciled_occurrences_total",
			Help:      "Occurrences whose registered count was repaired by the reconciler.",
		}),
	}

	reg.MustRegister(m.registrations, m.transitions, m.reconciled)

	return m
}

func (m *Metrics) ObserveRegistration(outcome string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveTransition(action, outcome string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) ObserveReconciled(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.reconciled.Add(float64(n))
}
