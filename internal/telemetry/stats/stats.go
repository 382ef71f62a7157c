package stats

import (
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
)

type Config struct {
	Enabled bool
	Address string
	// Tags are attached to every metric sent by the client.
	Tags []string
}

// Client pushes counters and timings to a DogStatsD agent. A disabled client is
// backed by a no-op statsd client.
type Client struct {
	statsdc statsd.ClientInterface
}

func InitializeClient(cfg Config) (*Client, error) {
	if !cfg.Enabled {
		return &Client{statsdc: &statsd.NoOpClient{}}, nil
	}

	sc, err := statsd.New(cfg.Address, statsd.WithTags(cfg.Tags))
	if err != nil {
		return nil, err
	}

	return &Client{statsdc: sc}, nil
}

func (c *Client) Incr(name string, tags []string, rate float64) {
	if c == nil {
		return
	}

	c.statsdc.Incr(name, tags, rate)
}

func (c *Client) Timing(name string, value time.Duration, tags []string, rate float64) {
	if c == nil {
		return
	}

	c.statsdc.Timing(name, value, tags, rate)
}

// Close flushes buffered metrics and releases the agent connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}

	return c.statsdc.Close()
}
