package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_RecordBuild_CountsByOutcome(t *testing.T) {
	reg := prom.NewRegistry()
	rec := NewPrometheusRecorder(reg)

	rec.RecordBuild("success", 120*time.Millisecond)
	rec.RecordBuild("success", 80*time.Millisecond)
	rec.RecordBuild("failure", 5*time.Millisecond)

	require.Equal(t, float64(2), testutil.ToFloat64(rec.builds.WithLabelValues("success")))
	require.Equal(t, float64(1), testutil.ToFloat64(rec.builds.WithLabelValues("failure")))
}

func TestPrometheusRecorder_RecordPublished_GaugeTracksLatest(t *testing.T) {
	rec := NewPrometheusRecorder(prom.NewRegistry())

	rec.RecordPublished(8)
	require.Equal(t, float64(8), testutil.ToFloat64(rec.published))

	rec.RecordPublished(5)
	require.Equal(t, float64(5), testutil.ToFloat64(rec.published))
}

func TestPrometheusRecorder_RecordWarnings_Accumulates(t *testing.T) {
	rec := NewPrometheusRecorder(prom.NewRegistry())

	rec.RecordWarnings(3)
	rec.RecordWarnings(2)
	require.Equal(t, float64(5), testutil.ToFloat64(rec.warnings))
}

func TestNoopRecorder_ImplementsRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.RecordBuild("success", time.Second)
	r.RecordPublished(1)
	r.RecordWarnings(1)
}
