package listeners

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/cadence/pkg/domain"
)

// Prometheus exposes loop activity as Prometheus metrics: loops opened,
// iterations by outcome, and the number of iterations currently running.
// One listener can be shared by many loops; metrics are process-wide.
type Prometheus struct {
	loops      prometheus.Counter
	iterations *prometheus.CounterVec
	inFlight   prometheus.Gauge
}

// NewPrometheus creates a metrics listener and registers its collectors
// with reg. Use prometheus.DefaultRegisterer for the process default.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	l := &Prometheus{
		loops: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cadence_loops_total",
			Help: "Total number of loop invocations opened",
		}),
		iterations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cadence_iterations_total",
				Help: "Total number of iterations by outcome",
			},
			[]string{"outcome"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cadence_iterations_in_flight",
			Help: "Number of iterations currently executing",
		}),
	}

	for _, c := range []prometheus.Collector{l.loops, l.iterations, l.inFlight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Prometheus) Open(_ *domain.Scope) {
	l.loops.Inc()
}

func (l *Prometheus) Before(_ *domain.Scope) {
	l.inFlight.Inc()
}

func (l *Prometheus) After(_ *domain.Scope, status domain.Status) {
	l.inFlight.Dec()
	l.iterations.WithLabelValues(status.String()).Inc()
}

func (l *Prometheus) OnError(_ *domain.Scope, _ error) {
	l.inFlight.Dec()
	l.iterations.WithLabelValues("error").Inc()
}

func (l *Prometheus) Close(_ *domain.Scope) {}
