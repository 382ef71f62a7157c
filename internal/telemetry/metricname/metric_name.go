package metricname

const (
	COUNTER_CHAT_COMPLETION_REQUESTS           = "partyrock.proxy.chat_completion.requests"
	COUNTER_CHAT_COMPLETION_INVALID_CREDENTIAL = "partyrock.proxy.chat_completion.invalid_credential"
	COUNTER_CHAT_COMPLETION_INVALID_REQUEST    = "partyrock.proxy.chat_completion.invalid_request"
	COUNTER_CHAT_COMPLETION_UNKNOWN_MODEL      = "partyrock.proxy.chat_completion.unknown_model"
	COUNTER_CHAT_COMPLETION_HTTP_CLIENT_ERROR  = "partyrock.proxy.chat_completion.http_client_error"
	COUNTER_CHAT_COMPLETION_ERROR_RESPONSE     = "partyrock.proxy.chat_completion.error_response"
	COUNTER_CHAT_COMPLETION_MISSING_BODY       = "partyrock.proxy.chat_completion.missing_body"
	COUNTER_CHAT_COMPLETION_SUCCESS            = "partyrock.proxy.chat_completion.success"
	COUNTER_CHAT_COMPLETION_STREAMING_REQUESTS = "partyrock.proxy.chat_completion.streaming_requests"
	COUNTER_CHAT_COMPLETION_READ_BYTES_ERROR   = "partyrock.proxy.chat_completion.read_bytes_error"
	COUNTER_CHAT_COMPLETION_DELTAS             = "partyrock.proxy.chat_completion.deltas"
	COUNTER_MIDDLEWARE_RESPONSES               = "partyrock.proxy.middleware.responses"
	COUNTER_MIDDLEWARE_PANICS                  = "partyrock.proxy.middleware.panics"

	HISTOGRAM_CHAT_COMPLETION_LATENCY           = "partyrock.proxy.chat_completion.latency"
	HISTOGRAM_CHAT_COMPLETION_STREAMING_LATENCY = "partyrock.proxy.chat_completion.streaming_latency"
	HISTOGRAM_MIDDLEWARE_PROXY_LATENCY          = "partyrock.proxy.middleware.proxy_latency"
)

var Counters = []string{
	COUNTER_CHAT_COMPLETION_REQUESTS,
	COUNTER_CHAT_COMPLETION_INVALID_CREDENTIAL,
	COUNTER_CHAT_COMPLETION_INVALID_REQUEST,
	COUNTER_CHAT_COMPLETION_UNKNOWN_MODEL,
	COUNTER_CHAT_COMPLETION_HTTP_CLIENT_ERROR,
	COUNTER_CHAT_COMPLETION_ERROR_RESPONSE,
	COUNTER_CHAT_COMPLETION_MISSING_BODY,
	COUNTER_CHAT_COMPLETION_SUCCESS,
	COUNTER_CHAT_COMPLETION_STREAMING_REQUESTS,
	COUNTER_CHAT_COMPLETION_READ_BYTES_ERROR,
	COUNTER_CHAT_COMPLETION_DELTAS,
	COUNTER_MIDDLEWARE_RESPONSES,
	COUNTER_MIDDLEWARE_PANICS,
}

var Histograms = []string{
	HISTOGRAM_CHAT_COMPLETION_LATENCY,
	HISTOGRAM_CHAT_COMPLETION_STREAMING_LATENCY,
	HISTOGRAM_MIDDLEWARE_PROXY_LATENCY,
}

// Labels lists, per metric, the tag keys exported as labels by scrape based
// providers. Tags are "key:value" strings.
var Labels = map[string][]string{
	COUNTER_CHAT_COMPLETION_ERROR_RESPONSE: {"status"},
	COUNTER_MIDDLEWARE_RESPONSES:           {"status"},
}
