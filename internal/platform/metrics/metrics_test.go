package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.FormIssued("subscription")
	m.FormIssued("subscription")
	m.FormIssued("transaction")
	m.Error("configuration")
	m.Verification(true)
	m.Verification(false)
	m.Verification(false)
	m.ObserveSign(250 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.formsIssued.WithLabelValues("subscription")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.formsIssued.WithLabelValues("transaction")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("configuration")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.verifications.WithLabelValues("invalid")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.signDuration))

	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range families {
		if mf.GetName() == "transparent_sign_duration_seconds" {
			found = true
			h := mf.GetMetric()[0].GetHistogram()
			assert.Equal(t, uint64(1), h.GetSampleCount())
			assert.InDelta(t, 0.25, h.GetSampleSum(), 1e-9)
		}
	}
	assert.True(t, found)
}

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
