package proxy

import (
	"net/http"

	"github.com/bricks-cloud/partyrock/internal/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func getOtelMiddlware() gin.HandlerFunc {
	spanName := func(r *http.Request) string {
		return "HTTP " + r.Method + " " + r.URL.Path
	}

	md := otelgin.Middleware(
		telemetry.ServiceName,
		otelgin.WithSpanNameFormatter(spanName),
		otelgin.WithPropagators(otel.GetTextMapPropagator()),
		otelgin.WithTracerProvider(otel.GetTracerProvider()),
	)
	return md
}

// getOtelTransport records client spans for backend calls. No trace headers are
// injected into the outbound request.
func getOtelTransport() *otelhttp.Transport {
	spanName := func(_ string, r *http.Request) string {
		return "HTTP " + r.Method + " " + r.URL.Path
	}
	rt := otelhttp.NewTransport(
		http.DefaultTransport,
		otelhttp.WithPropagators(propagation.NewCompositeTextMapPropagator()),
		otelhttp.WithTracerProvider(otel.GetTracerProvider()),
		otelhttp.WithSpanNameFormatter(spanName),
		otelhttp.WithServerName(telemetry.ServiceName),
	)
	return rt
}
