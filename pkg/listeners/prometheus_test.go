package listeners_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/listeners"
)

// gatherValues flattens the registry into metric-name (plus label values)
// to sample value.
func gatherValues(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, fam := range families {
		for _, m := range fam.GetMetric() {
			name := fam.GetName()
			for _, lp := range m.GetLabel() {
				name += ":" + lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				values[name] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[name] = m.GetGauge().GetValue()
			}
		}
	}
	return values
}

func TestPrometheus_RecordsLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	l, err := listeners.NewPrometheus(reg)
	require.NoError(t, err)

	scope := domain.NewScope()
	l.Open(scope)

	l.Before(scope)
	l.After(scope, domain.Continue)

	l.Before(scope)
	l.OnError(scope, errors.New("boom"))

	l.Before(scope)
	l.After(scope, domain.Finished)

	l.Close(scope)

	values := gatherValues(t, reg)
	assert.Equal(t, 1.0, values["cadence_loops_total"])
	assert.Equal(t, 1.0, values["cadence_iterations_total:continue"])
	assert.Equal(t, 1.0, values["cadence_iterations_total:finished"])
	assert.Equal(t, 1.0, values["cadence_iterations_total:error"])
	assert.Equal(t, 0.0, values["cadence_iterations_in_flight"])
}

func TestPrometheus_InFlightTracksOpenIterations(t *testing.T) {
	reg := prometheus.NewRegistry()
	l, err := listeners.NewPrometheus(reg)
	require.NoError(t, err)

	scope := domain.NewScope()
	l.Before(scope)
	l.Before(scope)
	assert.Equal(t, 2.0, gatherValues(t, reg)["cadence_iterations_in_flight"])

	l.After(scope, domain.Continue)
	assert.Equal(t, 1.0, gatherValues(t, reg)["cadence_iterations_in_flight"])
}

func TestPrometheus_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := listeners.NewPrometheus(reg)
	require.NoError(t, err)

	_, err = listeners.NewPrometheus(reg)
	assert.Error(t, err)
}
