package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bricks-cloud/partyrock/internal/config"
	"github.com/bricks-cloud/partyrock/internal/credential"
	internal_errors "github.com/bricks-cloud/partyrock/internal/errors"
	"github.com/bricks-cloud/partyrock/internal/provider/openai"
	"github.com/bricks-cloud/partyrock/internal/provider/partyrock"
	"github.com/bricks-cloud/partyrock/internal/telemetry"
	"github.com/bricks-cloud/partyrock/internal/telemetry/metricname"
	"github.com/bricks-cloud/partyrock/internal/util"
	"github.com/gin-gonic/gin"
	goopenai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	invalidCredentialMessage = `Invalid Base64 or key format. Expecting "appId|||csrfToken|||cookie".`
	missingBodyMessage       = "No response body from PartyRock API."
)

type notAuthorizedError interface {
	Authenticated()
}

type unknownModelError interface {
	UnknownModel()
	Model() string
}

type backendError interface {
	Backend()
	StatusCode() int
	Body() string
}

// chatCompletionRequest holds the only fields forwarded to PartyRock. Other OpenAI
// parameters are accepted and ignored whatever their shape.
type chatCompletionRequest struct {
	Model    string                           `json:"model"`
	Messages []goopenai.ChatCompletionMessage `json:"messages"`
	Stream   bool                             `json:"stream"`
}

func (r *chatCompletionRequest) openAiRequest() *goopenai.ChatCompletionRequest {
	return &goopenai.ChatCompletionRequest{
		Model:    r.Model,
		Messages: r.Messages,
		Stream:   r.Stream,
	}
}

// backend holds everything needed to build a PartyRock completion request.
type backend struct {
	url            string
	origin         string
	refererPrefix  string
	userAgent      string
	acceptLanguage string
	translator     partyrock.Translator
}

func newBackend(cfg *config.Config) *backend {
	return &backend{
		url:            cfg.PartyRockUrl,
		origin:         cfg.PartyRockOrigin,
		refererPrefix:  cfg.PartyRockRefererPrefix,
		userAgent:      cfg.PartyRockUserAgent,
		acceptLanguage: cfg.PartyRockAcceptLanguage,
		translator:     partyrock.Translator{SystemAsUser: cfg.PartyRockSystemAsUser},
	}
}

func (b *backend) newRequest(ctx context.Context, cred *credential.Credential, data []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	req.Header.Set("accept", "text/event-stream")
	req.Header.Set("accept-language", b.acceptLanguage)
	req.Header.Set("anti-csrftoken-a2z", cred.CsrfToken)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("origin", b.origin)
	req.Header.Set("referer", b.refererPrefix+cred.AppId)
	req.Header.Set("cookie", cred.SessionCookie)
	req.Header.Set("user-agent", b.userAgent)

	return req, nil
}

func writeError(c *gin.Context, err error) {
	if _, ok := err.(notAuthorizedError); ok {
		c.String(http.StatusUnauthorized, invalidCredentialMessage)
		return
	}

	if me, ok := err.(unknownModelError); ok {
		c.String(http.StatusBadRequest, "Invalid model: %s. Supported models: %s", me.Model(), strings.Join(partyrock.Models(), ", "))
		return
	}

	if be, ok := err.(backendError); ok {
		c.String(be.StatusCode(), "PartyRock API error: %s", be.Body())
		return
	}

	c.String(http.StatusInternalServerError, "Internal server error: %v", err)
}

func getChatCompletionHandler(prod bool, b *backend, client *http.Client, ue usageEstimator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_REQUESTS, nil, 1)
		cid := c.GetString(correlationId)

		cred, err := credential.FromAuthorizationHeader(c.GetHeader("Authorization"))
		if err != nil {
			telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_INVALID_CREDENTIAL, nil, 1)
			logError(log, "error when decoding partyrock credential", prod, cid, err)
			writeError(c, err)
			return
		}

		logCredential(log, prod, cid, cred)

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_INVALID_REQUEST, nil, 1)
			logError(log, "error when reading chat completion request body", prod, cid, err)
			writeError(c, err)
			return
		}

		ccr := &chatCompletionRequest{}
		if err := json.Unmarshal(body, ccr); err != nil {
			telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_INVALID_REQUEST, nil, 1)
			logError(log, "error when unmarshalling chat completion request", prod, cid, err)
			writeError(c, err)
			return
		}

		model := ccr.Model
		if len(model) == 0 {
			model = partyrock.DefaultModel
		}
		c.Set("model", model)

		prr, err := b.translator.Translate(ccr.openAiRequest(), cred.AppId)
		if err != nil {
			telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_UNKNOWN_MODEL, nil, 1)
			logError(log, "error when translating chat completion request", prod, cid, err)
			writeError(c, err)
			return
		}

		data, err := json.Marshal(prr)
		if err != nil {
			logError(log, "error when marshalling partyrock request", prod, cid, err)
			writeError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		trace.SpanFromContext(c.Request.Context()).SetAttributes(
			attribute.String("partyrock.model", prr.ModelName),
			attribute.String("partyrock.app_id", cred.AppId),
			attribute.Bool("partyrock.stream", ccr.Stream),
			attribute.Int("partyrock.messages", len(prr.Messages)),
		)

		req, err := b.newRequest(ctx, cred, data)
		if err != nil {
			logError(log, "error when creating partyrock http request", prod, cid, err)
			writeError(c, err)
			return
		}

		start := time.Now()
		res, err := client.Do(req)
		if err != nil {
			telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_HTTP_CLIENT_ERROR, nil, 1)
			logError(log, "error when sending chat completion request to partyrock", prod, cid, err)
			writeError(c, err)
			return
		}
		if res.Body != nil {
			defer res.Body.Close()
		}

		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_ERROR_RESPONSE, []string{
				fmt.Sprintf("status:%d", res.StatusCode),
			}, 1)

			var bs []byte
			if res.Body != nil {
				bs, err = io.ReadAll(res.Body)
				if err != nil {
					logError(log, "error when reading partyrock error response body", prod, cid, err)
				}
			}

			logPartyRockError(log, prod, cid, res.StatusCode, bs)
			writeError(c, internal_errors.NewBackendError(res.StatusCode, string(bs)))
			return
		}

		hasBody := res.Body != nil && res.Body != http.NoBody

		if !ccr.Stream {
			if !hasBody {
				telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_MISSING_BODY, nil, 1)
				c.String(http.StatusInternalServerError, missingBodyMessage)
				return
			}

			er := partyrock.NewEventReader(res.Body)
			sb := strings.Builder{}
			for er.Next() {
				sb.WriteString(er.Text())
			}

			if err := er.Err(); err != nil {
				telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_READ_BYTES_ERROR, nil, 1)
				logError(log, "error when reading partyrock response body", prod, cid, err)
			}

			content := sb.String()
			resp := openai.NewChatCompletionResponse(util.NewUuid(), model, content, time.Now().Unix())
			if ue != nil {
				resp.Usage = ue.EstimateUsage(ccr.Messages, content)
			}

			telemetry.Timing(metricname.HISTOGRAM_CHAT_COMPLETION_LATENCY, time.Since(start), nil, 1)
			telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_SUCCESS, nil, 1)
			logChatCompletionResponse(log, prod, cid, resp)

			c.JSON(http.StatusOK, resp)
			return
		}

		telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_STREAMING_REQUESTS, nil, 1)

		c.Writer.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Status(http.StatusOK)

		if !hasBody {
			telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_MISSING_BODY, nil, 1)
			if _, err := c.Writer.Write(frameData([]byte(missingBodyMessage))); err != nil {
				logError(log, "error when writing missing body notice", prod, cid, err)
			}
			c.Writer.Flush()
			return
		}

		cs := newChunkStream(partyrock.NewEventReader(res.Body), model, func(err error) {
			telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_READ_BYTES_ERROR, nil, 1)
			logError(log, "error when streaming partyrock response body", prod, cid, err)
		})

		defer func() {
			telemetry.Timing(metricname.HISTOGRAM_CHAT_COMPLETION_STREAMING_LATENCY, time.Since(start), nil, 1)
			if prod {
				log.Info("partyrock chat completion stream finished", zap.String(correlationId, cid), zap.Int("deltas", cs.Deltas()))
			}
		}()

		c.Stream(func(w io.Writer) bool {
			frame, ok := cs.Next()
			if !ok {
				telemetry.Incr(metricname.COUNTER_CHAT_COMPLETION_SUCCESS, nil, 1)
				return false
			}

			if _, err := w.Write(frame); err != nil {
				logError(log, "error when writing chat completion chunk", prod, cid, err)
				return false
			}

			return true
		})
	}
}

// requestContext bounds the backend call by the timeout set by the timeout
// middleware. A client disconnect cancels it as well.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := c.GetDuration(requestTimeout)
	if timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}

	return context.WithTimeout(c.Request.Context(), timeout)
}

func logCredential(log *zap.Logger, prod bool, cid string, cred *credential.Credential) {
	if prod {
		log.Info("partyrock credential",
			zap.String(correlationId, cid),
			zap.String("appId", cred.AppId),
			zap.Int("cookieLength", len(cred.SessionCookie)),
			zap.Int("csrfTokenLength", len(cred.CsrfToken)),
		)
		return
	}

	log.Sugar().Debugf("correlationId:%s | appId:%s | cookie length:%d | csrf token length:%d", cid, cred.AppId, len(cred.SessionCookie), len(cred.CsrfToken))
}

func logPartyRockError(log *zap.Logger, prod bool, cid string, status int, body []byte) {
	if prod {
		log.Info("partyrock error response",
			zap.String(correlationId, cid),
			zap.Int("status", status),
			zap.ByteString("body", body),
		)
		return
	}

	log.Sugar().Infof("correlationId:%s | partyrock error response | status:%d | body:%s", cid, status, string(body))
}

func logChatCompletionResponse(log *zap.Logger, prod bool, cid string, r *openai.ChatCompletionResponse) {
	if !prod {
		return
	}

	fields := []zap.Field{
		zap.String(correlationId, cid),
		zap.String("id", r.Id),
		zap.String("model", r.Model),
		zap.Int64("created", r.Created),
	}

	if r.Usage != nil {
		fields = append(fields,
			zap.Int("promptTokens", r.Usage.PromptTokens),
			zap.Int("completionTokens", r.Usage.CompletionTokens),
		)
	}

	log.Info("partyrock chat completion response", fields...)
}
