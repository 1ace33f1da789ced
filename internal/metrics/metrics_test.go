package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRegistration("ok")
	m.ObserveRegistration("ok")
	m.ObserveRegistration("capacity_exceeded")
	m.ObserveTransition("cancel", "ok")
	m.ObserveReconciled(3)
	m.ObserveReconciled(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.registrations.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registrations.WithLabelValues("capacity_exceeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("cancel", "ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.reconciled))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRegistration("ok")
		m.ObserveTransition("cancel", "ok")
		m.ObserveReconciled(1)
	})
}
