package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
)

const namespace = "mapidoc"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg             *prom.Registry
	stageDuration   *prom.HistogramVec
	runDuration     prom.Histogram
	filesDiscovered prom.Gauge
	namespaces      prom.Gauge
	pagesRendered   prom.Counter
	pagesWritten    prom.Counter
	runOutcomes     *prom.CounterVec
	cloneResults    *prom.CounterVec
}

// NewPrometheusRecorder registers the mapidoc metrics on reg, or on a fresh
// registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of generation stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Total generation run duration",
			Buckets:   prom.DefBuckets,
		}),
		filesDiscovered: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "files_discovered",
			Help:      "Source files found by the last run",
		}),
		namespaces: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "namespaces",
			Help:      "Namespaces found by the last run",
		}),
		pagesRendered: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_rendered_total",
			Help:      "Documents rendered, index included",
		}),
		pagesWritten: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_written_total",
			Help:      "Documents written to disk",
		}),
		runOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Generation runs by outcome",
		}, []string{"outcome"}),
		cloneResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "clone_results_total",
			Help:      "Remote clone results by success/failure",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.stageDuration, pr.runDuration, pr.filesDiscovered, pr.namespaces,
		pr.pagesRendered, pr.pagesWritten, pr.runOutcomes, pr.cloneResults)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

// WriteTextfile writes every metric to path in the text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return ferrors.FileSystemError("failed to write metrics textfile").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetFilesDiscovered(n int) { p.filesDiscovered.Set(float64(n)) }
func (p *PrometheusRecorder) SetNamespaces(n int)      { p.namespaces.Set(float64(n)) }
func (p *PrometheusRecorder) AddPagesRendered(n int)   { p.pagesRendered.Add(float64(n)) }
func (p *PrometheusRecorder) AddPagesWritten(n int)    { p.pagesWritten.Add(float64(n)) }

func (p *PrometheusRecorder) IncRunOutcome(outcome Outcome) {
	p.runOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncCloneResult(success bool) {
	res := "failed"
	if success {
		res = "success"
	}
	p.cloneResults.WithLabelValues(res).Inc()
}
