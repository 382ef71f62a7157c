package prometheus

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bricks-cloud/partyrock/internal/telemetry/metricname"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	c, err := Init(Config{Enabled: true})
	require.Nil(t, err)

	c.Incr(metricname.COUNTER_CHAT_COMPLETION_REQUESTS, nil, 1)
	c.Incr(metricname.COUNTER_CHAT_COMPLETION_REQUESTS, nil, 1)
	c.Incr("not.registered", nil, 1)
	c.Timing(metricname.HISTOGRAM_CHAT_COMPLETION_LATENCY, 250*time.Millisecond, nil, 1)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	res, err := srv.Client().Get(srv.URL)
	require.Nil(t, err)
	defer res.Body.Close()

	bs, err := io.ReadAll(res.Body)
	require.Nil(t, err)

	assert.Contains(t, string(bs), "partyrock_proxy_chat_completion_requests_total 2")
	assert.Contains(t, string(bs), "partyrock_proxy_chat_completion_latency_seconds_count 1")
}

func TestClient_StatusLabel(t *testing.T) {
	c, err := Init(Config{Enabled: true})
	require.Nil(t, err)

	c.Incr(metricname.COUNTER_CHAT_COMPLETION_ERROR_RESPONSE, []string{"status:403"}, 1)
	c.Incr(metricname.COUNTER_CHAT_COMPLETION_ERROR_RESPONSE, []string{"status:403"}, 1)
	c.Incr(metricname.COUNTER_CHAT_COMPLETION_ERROR_RESPONSE, []string{"status:502", "region:us"}, 1)
	c.Incr(metricname.COUNTER_MIDDLEWARE_RESPONSES, []string{"status:200"}, 1)
	c.Incr(metricname.COUNTER_MIDDLEWARE_RESPONSES, nil, 1)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	res, err := srv.Client().Get(srv.URL)
	require.Nil(t, err)
	defer res.Body.Close()

	bs, err := io.ReadAll(res.Body)
	require.Nil(t, err)

	body := string(bs)
	assert.Contains(t, body, `partyrock_proxy_chat_completion_error_response_total{status="403"} 2`)
	assert.Contains(t, body, `partyrock_proxy_chat_completion_error_response_total{status="502"} 1`)
	assert.Contains(t, body, `partyrock_proxy_middleware_responses_total{status="200"} 1`)
	assert.Contains(t, body, `partyrock_proxy_middleware_responses_total{status=""} 1`)
	assert.NotContains(t, body, "region")
}

func TestClient_Disabled(t *testing.T) {
	c, err := Init(Config{Enabled: false})
	require.Nil(t, err)

	assert.NotPanics(t, func() {
		c.Incr(metricname.COUNTER_CHAT_COMPLETION_REQUESTS, nil, 1)
	})

	var nilClient *Client
	assert.NotPanics(t, func() {
		nilClient.Incr(metricname.COUNTER_CHAT_COMPLETION_REQUESTS, nil, 1)
		nilClient.Timing(metricname.HISTOGRAM_CHAT_COMPLETION_LATENCY, time.Second, nil, 1)
	})
}
