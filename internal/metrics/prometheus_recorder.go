package metrics

import (
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdlinkcheck/internal/linkcheck"
)

const namespace = "mdlinkcheck"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	runs         *prom.CounterVec
	filesScanned prom.Counter
	unreadable   prom.Counter
	linksSeen    prom.Counter
	linksChecked prom.Counter
	linksSkipped *prom.CounterVec
	brokenLinks  prom.Gauge
	runDuration  prom.Histogram
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		runs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Link check runs by outcome",
		}, []string{"outcome"}),
		filesScanned: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_scanned_total",
			Help:      "Documentation files read and scanned for links",
		}),
		unreadable: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_unreadable_total",
			Help:      "Tracked documentation files that could not be read",
		}),
		linksSeen: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_seen_total",
			Help:      "Raw link targets extracted from documentation files",
		}),
		linksChecked: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_checked_total",
			Help:      "Local link targets checked for existence",
		}),
		linksSkipped: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_skipped_total",
			Help:      "Link targets not checked, by reason",
		}, []string{"reason"}),
		brokenLinks: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "broken_links",
			Help:      "Broken links found by the most recent run",
		}),
		runDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete link check run",
			Buckets:   prom.ExponentialBuckets(0.005, 2, 12),
		}),
	}
	reg.MustRegister(pr.runs, pr.filesScanned, pr.unreadable, pr.linksSeen, pr.linksChecked,
		pr.linksSkipped, pr.brokenLinks, pr.runDuration)
	return pr
}

func (p *PrometheusRecorder) ObserveRun(report *linkcheck.Report) {
	if p == nil || report == nil {
		return
	}
	outcome := OutcomeValid
	if report.HasBroken() {
		outcome = OutcomeBroken
	}
	p.runs.WithLabelValues(string(outcome)).Inc()
	p.filesScanned.Add(float64(report.Stats.Files))
	p.unreadable.Add(float64(report.Stats.Unreadable))
	p.linksSeen.Add(float64(report.Stats.Links))
	p.linksChecked.Add(float64(report.Stats.Checked))
	for reason, n := range report.Stats.Skipped {
		p.linksSkipped.WithLabelValues(string(reason)).Add(float64(n))
	}
	p.brokenLinks.Set(float64(len(report.Broken)))
	p.runDuration.Observe(report.Duration.Seconds())
}

func (p *PrometheusRecorder) IncRunFailure() {
	if p == nil {
		return
	}
	p.runs.WithLabelValues(string(OutcomeFailed)).Inc()
}
