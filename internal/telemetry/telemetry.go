package telemetry

import (
	"errors"
	"io"
	"net/http"
	"time"

	configPkg "github.com/bricks-cloud/partyrock/internal/config"
	"github.com/bricks-cloud/partyrock/internal/telemetry/prometheus"
	"github.com/bricks-cloud/partyrock/internal/telemetry/stats"
	"go.uber.org/zap"
)

type ProviderType string

const (
	PROVIDER_NONE       ProviderType = ""
	PROVIDER_DATADOG    ProviderType = "statsd"
	PROVIDER_PROMETHEUS ProviderType = "prometheus"
)

type Provider interface {
	Incr(name string, tags []string, rate float64)
	Timing(name string, value time.Duration, tags []string, rate float64)
}

type Client struct {
	Provider Provider
}

// Singleton is set once by Init before the server starts serving.
var Singleton *Client

// Init selects the metrics provider named by cfg. Selecting a provider whose
// enabled flag is off is allowed but logged, since nothing will be recorded.
func Init(cfg *configPkg.Config, log *zap.Logger) error {
	if cfg == nil {
		return errors.New("config is empty")
	}

	if log == nil {
		log = zap.NewNop()
	}

	switch ProviderType(cfg.TelemetryProvider) {
	case PROVIDER_NONE:
		Singleton = nil
		return nil
	case PROVIDER_DATADOG:
		if !cfg.StatsEnabled {
			log.Warn("statsd telemetry provider selected but STATS_ENABLED is false, no metrics will be sent")
		}

		c, err := stats.InitializeClient(stats.Config{
			Enabled: cfg.StatsEnabled,
			Address: cfg.StatsAddress,
			Tags:    []string{"service:" + ServiceName},
		})

		if err != nil {
			return err
		}

		Singleton = &Client{
			Provider: c,
		}

		return nil
	case PROVIDER_PROMETHEUS:
		if !cfg.PrometheusEnabled {
			log.Warn("prometheus telemetry provider selected but PROMETHEUS_ENABLED is false, /metrics is not served")
		}

		p, err := prometheus.Init(prometheus.Config{
			Enabled: cfg.PrometheusEnabled,
		})

		if err != nil {
			return err
		}

		Singleton = &Client{
			Provider: p,
		}

		return nil
	}

	return errors.New("unsupported telemetry provider")
}

// MetricsHandler returns the Prometheus scrape handler, or nil when metrics are
// pushed instead of scraped.
func MetricsHandler() http.Handler {
	if Singleton == nil {
		return nil
	}

	p, ok := Singleton.Provider.(*prometheus.Client)
	if !ok || !p.Config.Enabled {
		return nil
	}

	return p.Handler()
}

func Incr(name string, tags []string, rate float64) {
	if Singleton != nil {
		Singleton.Provider.Incr(name, tags, rate)
	}
}

func Timing(name string, value time.Duration, tags []string, rate float64) {
	if Singleton != nil {
		Singleton.Provider.Timing(name, value, tags, rate)
	}
}

// Close releases the provider's resources, if it holds any.
func Close() error {
	if Singleton == nil {
		return nil
	}

	if c, ok := Singleton.Provider.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
