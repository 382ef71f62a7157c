package proxy

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bricks-cloud/partyrock/internal/config"
	"github.com/bricks-cloud/partyrock/internal/provider/openai"
	"github.com/bricks-cloud/partyrock/internal/telemetry"
	"github.com/gin-gonic/gin"
	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	correlationId string = "correlationId"
)

type usageEstimator interface {
	EstimateUsage(messages []goopenai.ChatCompletionMessage, completion string) *openai.Usage
}

type ProxyServer struct {
	server *http.Server
	log    *zap.Logger
	port   int
}

// NewProxyServer wires the OpenAI compatible routes. A nil client falls back to
// one built from the telemetry settings in cfg. A nil estimator leaves usage out
// of buffered responses.
func NewProxyServer(log *zap.Logger, mode string, cfg *config.Config, client *http.Client, ue usageEstimator) (*ProxyServer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("proxy server requires a config")
	}

	router := gin.New()
	prod := mode == "production"

	if client == nil {
		client = newBackendClient(cfg.OpenTelemetryEnabled)
	}

	router.Use(getRecoveryMiddleware(log, prod))
	router.Use(getCorsMiddleware())
	router.Use(getMiddleware(log, prod, "proxy"))
	if cfg.OpenTelemetryEnabled {
		router.Use(getOtelMiddlware())
	}
	router.Use(getTimeoutMiddleware(cfg.ProxyTimeout))

	router.GET("/", getStatusHandler(cfg.Port))
	router.GET("/v1/models", getModelsHandler())
	router.POST("/v1/chat/completions", getChatCompletionHandler(prod, newBackend(cfg), client, ue, log))

	if h := telemetry.MetricsHandler(); h != nil {
		router.GET("/metrics", gin.WrapH(h))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	return &ProxyServer{
		log:    log,
		server: srv,
		port:   cfg.Port,
	}, nil
}

func newBackendClient(traced bool) *http.Client {
	if traced {
		return &http.Client{Transport: getOtelTransport()}
	}

	return &http.Client{}
}

func getStatusHandler(port int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "PartyRock API Service Running",
			"port":   port,
		})
	}
}

func (ps *ProxyServer) Run() {
	go func() {
		ps.log.Sugar().Infof("proxy server listening at %d", ps.port)
		ps.log.Sugar().Infof("PORT %d | GET   | / is ready for status checks", ps.port)
		ps.log.Sugar().Infof("PORT %d | GET   | /v1/models is ready for listing partyrock models", ps.port)
		ps.log.Sugar().Infof("PORT %d | POST  | /v1/chat/completions is ready for forwarding chat completion requests to partyrock", ps.port)

		if err := ps.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ps.log.Sugar().Fatalf("error proxy server listening: %v", err)
			return
		}
	}()
}

func logError(log *zap.Logger, msg string, prod bool, id string, err error) {
	if prod {
		log.Debug(msg, zap.String(correlationId, id), zap.Error(err))
		return
	}

	log.Sugar().Debugf("correlationId:%s | %s | %v", id, msg, err)
}

func (ps *ProxyServer) Shutdown(ctx context.Context) error {
	if err := ps.server.Shutdown(ctx); err != nil {
		ps.log.Sugar().Infof("error shutting down proxy server: %v", err)

		return err
	}

	return nil
}
