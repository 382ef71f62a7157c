package prometheus

import (
	"strings"

	"github.com/bricks-cloud/partyrock/internal/telemetry/metricname"
	"github.com/prometheus/client_golang/prometheus"
)

// toPrometheusName turns a dotted statsd style name into a valid metric name.
func toPrometheusName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(name)
}

func (c *Client) initMetrics() {
	for _, name := range metricname.Counters {
		c.CounterMetrics[name] = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: toPrometheusName(name) + "_total",
			},
			metricname.Labels[name],
		)
		c.registry.MustRegister(c.CounterMetrics[name])
	}

	for _, name := range metricname.Histograms {
		c.HistogramMetrics[name] = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    toPrometheusName(name) + "_seconds",
				Buckets: prometheus.DefBuckets,
			},
			metricname.Labels[name],
		)
		c.registry.MustRegister(c.HistogramMetrics[name])
	}
}

// labelsFromTags picks the registered label values out of "key:value" tags. Labels
// without a matching tag are exported as empty strings.
func labelsFromTags(name string, tags []string) prometheus.Labels {
	names := metricname.Labels[name]
	labels := make(prometheus.Labels, len(names))
	for _, n := range names {
		labels[n] = ""
	}

	for _, tag := range tags {
		key, value, found := strings.Cut(tag, ":")
		if !found {
			continue
		}

		if _, ok := labels[key]; ok {
			labels[key] = value
		}
	}

	return labels
}
