package config

import (
	"time"

	"github.com/caarlos0/env"
)

type Config struct {
	Port                    int           `env:"PORT" envDefault:"8803"`
	ProxyTimeout            time.Duration `env:"PROXY_TIMEOUT" envDefault:"10m"`
	PartyRockUrl            string        `env:"PARTYROCK_URL" envDefault:"https://partyrock.aws/stream/getCompletion"`
	PartyRockOrigin         string        `env:"PARTYROCK_ORIGIN" envDefault:"https://partyrock.aws"`
	PartyRockRefererPrefix  string        `env:"PARTYROCK_REFERER_PREFIX" envDefault:"https://partyrock.aws/u/chatyt/"`
	PartyRockUserAgent      string        `env:"PARTYROCK_USER_AGENT" envDefault:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`
	PartyRockAcceptLanguage string        `env:"PARTYROCK_ACCEPT_LANGUAGE" envDefault:"zh-CN,zh;q=0.9,en;q=0.8"`
	PartyRockSystemAsUser   bool          `env:"PARTYROCK_SYSTEM_AS_USER" envDefault:"false"`
	TelemetryProvider       string        `env:"TELEMETRY_PROVIDER"`
	StatsEnabled            bool          `env:"STATS_ENABLED" envDefault:"false"`
	StatsAddress            string        `env:"STATS_ADDRESS" envDefault:"127.0.0.1:8125"`
	PrometheusEnabled       bool          `env:"PROMETHEUS_ENABLED" envDefault:"false"`
	OpenTelemetryEnabled    bool          `env:"OTEL_ENABLED" envDefault:"false"`
	OpenTelemetryEndpoint   string        `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
}

func ParseEnvVariables() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
