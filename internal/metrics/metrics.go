// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors groups the counters recorded by the domain packages.
type Collectors struct {
	Transitions   *prometheus.CounterVec
	TraineeWrites *prometheus.CounterVec
	DTRSubmitted  prometheus.Counter
	HoursCredited prometheus.Counter
	Logins        *prometheus.CounterVec
}

// New creates collectors and registers them with reg. A nil reg skips
// registration, which keeps tests independent of the global registry.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ojt_status_transitions_total",
			Help: "Review status transitions applied, by workflow and target state.",
		}, []string{"workflow", "from", "to"}),
		TraineeWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ojt_trainee_writes_total",
			Help: "Trainee override writes by operation.",
		}, []string{"op"}),
		DTRSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ojt_dtr_submitted_total",
			Help: "Daily time records submitted.",
		}),
		HoursCredited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ojt_hours_credited_total",
			Help: "Rendered hours credited to trainees from submitted DTRs.",
		}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ojt_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(c.Transitions, c.TraineeWrites, c.DTRSubmitted, c.HoursCredited, c.Logins)
	}
	return c
}

// Nop returns unregistered collectors.
func Nop() *Collectors { return New(nil) }
