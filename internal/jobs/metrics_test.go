package jobmetrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample returns the value of the series in family whose labels include want.
func sample(t *testing.T, reg *prometheus.Registry, family string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != family {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue next
				}
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			}
		}
	}
	t.Fatalf("series %s%v not found", family, want)
	return 0
}

func TestTrackerRecordsStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	assert.NoError(t, m.Track("stock:critical-scan").End(nil))
	boom := errors.New("boom")
	assert.Equal(t, boom, m.Track("stock:critical-scan").End(boom))

	assert.Equal(t, 1.0, sample(t, reg, "erp_job_runs_total", map[string]string{"job": "stock:critical-scan", "status": "success"}))
	assert.Equal(t, 1.0, sample(t, reg, "erp_job_runs_total", map[string]string{"job": "stock:critical-scan", "status": "failure"}))
}

func TestSetFlagged(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.SetFlagged("stock:critical-scan", 3)
	m.SetFlagged("stock:critical-scan", -1)

	assert.Equal(t, 3.0, sample(t, reg, "erp_job_flagged_records", map[string]string{"job": "stock:critical-scan"}))
}

func TestNilMetricsTrack(t *testing.T) {
	var m *Metrics
	err := errors.New("x")
	assert.Equal(t, err, m.Track("job").End(err))
	m.SetFlagged("job", 1)
}
