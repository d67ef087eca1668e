// Package report records the outcome of lexicon induction runs: a one-line
// summary appended to a stats file and a Prometheus textfile of gauges for
// node_exporter style collection.
package report

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ieee0824/bli-go/align"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the gauges of one run.
type Metrics struct {
	reg       *prometheus.Registry
	precision *prometheus.GaugeVec
	recall    *prometheus.GaugeVec
	matches   *prometheus.GaugeVec
	seeds     *prometheus.GaugeVec
	mean      prometheus.Gauge
	stddev    prometheus.Gauge
}

// NewMetrics returns gauges registered on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		precision: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bli_trial_precision",
			Help: "dev precision of a trial in percent",
		}, []string{"trial"}),
		recall: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bli_trial_recall",
			Help: "dev recall of a trial in percent",
		}, []string{"trial"}),
		matches: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bli_trial_matches",
			Help: "correct dev hypotheses of a trial",
		}, []string{"trial"}),
		seeds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bli_seed_pairs",
			Help: "seed pairs by split",
		}, []string{"split"}),
		mean: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bli_precision_mean",
			Help: "mean dev precision over trials",
		}),
		stddev: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bli_precision_stddev",
			Help: "standard deviation of dev precision over trials",
		}),
	}
	m.reg.MustRegister(m.precision, m.recall, m.matches, m.seeds, m.mean, m.stddev)
	return m
}

// ObserveTrial records the dev score of a trial.
func (m *Metrics) ObserveTrial(trial int, s align.Score) {
	label := strconv.Itoa(trial)
	m.precision.WithLabelValues(label).Set(s.Precision)
	m.recall.WithLabelValues(label).Set(s.Recall)
	m.matches.WithLabelValues(label).Set(float64(s.Matches))
}

// ObserveSeeds records the sizes of the train and dev splits.
func (m *Metrics) ObserveSeeds(train, dev int) {
	m.seeds.WithLabelValues("train").Set(float64(train))
	m.seeds.WithLabelValues("dev").Set(float64(dev))
}

// ObserveSummary records the aggregate over all trials.
func (m *Metrics) ObserveSummary(mean, stddev float64) {
	m.mean.Set(mean)
	m.stddev.Set(stddev)
}

// WriteTextfile writes the gauges in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.reg); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}

// StatsLine formats the summary of a run the way stats files accumulate it.
func StatsLine(numSeeds, vocab int, endWithProcrustes bool, mean, stddev float64) string {
	end := "False"
	if endWithProcrustes {
		end = "True"
	}
	return fmt.Sprintf("%d-%d-%s-average score: %v, std-dev: %v\n", numSeeds, vocab, end, mean, stddev)
}

// AppendStats appends line to the stats file at path, creating it if needed.
func AppendStats(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open stats: %w", err)
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("write stats: %w", err)
	}
	return f.Close()
}
