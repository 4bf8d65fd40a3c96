package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
)

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	assert.Same(t, reg, pr.Registry())

	pr.ObserveStageDuration(StagePlan, 150*time.Millisecond)
	pr.ObserveRunDuration(500 * time.Millisecond)
	pr.SetFilesDiscovered(12)
	pr.SetNamespaces(3)
	pr.AddPagesRendered(5)
	pr.AddPagesWritten(5)
	pr.IncRunOutcome(OutcomeSuccess)
	pr.IncRunOutcome(OutcomeSuccess)
	pr.IncCloneResult(false)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range mfs {
		m := mf.GetMetric()[0]
		switch {
		case m.GetGauge() != nil:
			values[mf.GetName()] = m.GetGauge().GetValue()
		case m.GetCounter() != nil:
			values[mf.GetName()] = m.GetCounter().GetValue()
		case m.GetHistogram() != nil:
			values[mf.GetName()] = float64(m.GetHistogram().GetSampleCount())
		}
	}

	assert.Equal(t, map[string]float64{
		"mapidoc_stage_duration_seconds": 1,
		"mapidoc_run_duration_seconds":   1,
		"mapidoc_files_discovered":       12,
		"mapidoc_namespaces":             3,
		"mapidoc_pages_rendered_total":   5,
		"mapidoc_pages_written_total":    5,
		"mapidoc_run_outcomes_total":     2,
		"mapidoc_clone_results_total":    1,
	}, values)
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncRunOutcome(OutcomeDryRun)

	path := filepath.Join(t.TempDir(), "mapidoc.prom")
	require.NoError(t, pr.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `mapidoc_run_outcomes_total{outcome="dry_run"} 1`)

	err = pr.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.ObserveStageDuration(StageWrite, time.Second)
		r.ObserveRunDuration(time.Second)
		r.SetFilesDiscovered(1)
		r.SetNamespaces(1)
		r.AddPagesRendered(1)
		r.AddPagesWritten(1)
		r.IncRunOutcome(OutcomeFailed)
		r.IncCloneResult(true)
	})
}
