package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	Enabled bool
}

type Client struct {
	Config           Config
	CounterMetrics   map[string]*prometheus.CounterVec
	HistogramMetrics map[string]*prometheus.HistogramVec

	registry *prometheus.Registry
}

func Init(cfg Config) (*Client, error) {
	c := &Client{
		Config:           cfg,
		CounterMetrics:   make(map[string]*prometheus.CounterVec),
		HistogramMetrics: make(map[string]*prometheus.HistogramVec),
		registry:         prometheus.NewRegistry(),
	}

	c.initMetrics()

	return c, nil
}

// Handler serves the registered metrics in the Prometheus exposition format.
func (c *Client) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Only tags registered in metricname.Labels become labels; the rest are dropped.
func (c *Client) Incr(name string, tags []string, rate float64) {
	if c == nil || !c.Config.Enabled {
		return
	}

	counterMetric, exists := c.CounterMetrics[name]
	if !exists {
		return
	}

	counterMetric.With(labelsFromTags(name, tags)).Inc()
}

func (c *Client) Timing(name string, value time.Duration, tags []string, rate float64) {
	if c == nil || !c.Config.Enabled {
		return
	}

	histogramMetric, exists := c.HistogramMetrics[name]
	if !exists {
		return
	}

	histogramMetric.With(labelsFromTags(name, tags)).Observe(value.Seconds())
}
