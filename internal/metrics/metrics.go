package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes counters for the session and appointment flows.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	logins        *prometheus.CounterVec
	booked        *prometheus.CounterVec
	statusChanges *prometheus.CounterVec
	cancelled     prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "session",
			Name:      "logins_total",
			Help:      "Login attempts by result",
		}, []string{"result"}),
		booked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "appointments",
			Name:      "booked_total",
			Help:      "Appointments committed by the scheduling flow",
		}, []string{"service"}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "appointments",
			Name:      "status_changes_total",
			Help:      "Appointment status toggles by resulting status",
		}, []string{"to"}),
		cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scheduler",
			Subsystem: "appointments",
			Name:      "cancelled_total",
			Help:      "Appointments removed",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.logins, m.booked, m.statusChanges, m.cancelled)
	return m
}

func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveBooked(service string) {
	if m == nil {
		return
	}
	m.booked.WithLabelValues(service).Inc()
}

func (m *Metrics) ObserveStatusChange(to string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(to).Inc()
}

func (m *Metrics) ObserveCancelled() {
	if m == nil {
		return
	}
	m.cancelled.Inc()
}
