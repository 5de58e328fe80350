package netclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/vayudoot-cloud/vayudoot-netclient/pkg/audit"
	"github.com/vayudoot-cloud/vayudoot-netclient/pkg/tracing"
)

const (
	// HeaderRequestID propagates the caller-generated correlation id
	// (conventionally "req-<uuid>") so server-side logs can be joined with
	// client-side call context.
	HeaderRequestID = "X-OpenStack-Request-ID"

	headerAccept      = "Accept"
	headerContentType = "Content-Type"
	headerAuthToken   = "X-Auth-Token"

	mimeJSON = "application/json"

	defaultTimeout = 30 * time.Second
)

// Config holds the immutable settings of an HTTPClient. It is read once at
// construction and never mutated afterwards, which is what makes the client
// safe for concurrent use.
type Config struct {
	// Token is the pre-acquired auth token sent on classified calls.
	// Acquiring it is the caller's problem, not this client's.
	Token string
	// EndpointURL is the base URL DoRequest resolves paths against by plain
	// string concatenation. No normalization is applied.
	EndpointURL string
	// GlobalRequestID, when set, is attached to every request as
	// X-OpenStack-Request-ID.
	GlobalRequestID string
	// Timeout bounds a single round trip. Zero means defaultTimeout.
	Timeout time.Duration
}

// RequestOptions carries the per-call knobs of Request and DoRequest.
type RequestOptions struct {
	// Body is passed through to the transport as-is (string or []byte);
	// no serialization happens at this layer.
	Body interface{}
	// Headers augment the default header set and win on key collision.
	Headers map[string]string
	// ContentType sets the Content-Type header unless Headers already
	// supplied one.
	ContentType string
}

// ResponseCache caches successful GET response bodies keyed by full URL.
type ResponseCache interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, body []byte) error
}

// HTTPClient is a thin request wrapper around the networking control-plane
// v2.0 API: it builds headers deterministically, sends one request per call,
// and classifies the response. It never retries.
type HTTPClient struct {
	cfg      Config
	rest     *resty.Client
	trace    tracing.HeaderProvider
	cache    ResponseCache
	recorder audit.Recorder
	log      Logger
}

// New builds a client for the given config using a fresh resty transport.
func New(cfg Config) *HTTPClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	rest := resty.New()
	rest.SetTimeout(timeout)

	return &HTTPClient{
		cfg:  cfg,
		rest: rest,
		log:  noopLogger{},
	}
}

// SetTraceProvider injects the provider whose headers are merged into every
// outgoing request. Pass nil to disable tracing.
func (c *HTTPClient) SetTraceProvider(p tracing.HeaderProvider) *HTTPClient {
	c.trace = p
	return c
}

// SetRecorder injects the audit recorder notified after every classified call.
func (c *HTTPClient) SetRecorder(r audit.Recorder) *HTTPClient {
	c.recorder = r
	return c
}

// SetCache injects the read-through cache used by the resource helpers.
func (c *HTTPClient) SetCache(cache ResponseCache) *HTTPClient {
	c.cache = cache
	return c
}

// SetLogger injects the logger used for per-call debug logging.
func (c *HTTPClient) SetLogger(log Logger) *HTTPClient {
	c.log = ensureLogger(log)
	return c
}

// buildHeaders produces the outgoing header set. Order matters:
// defaults, then the configured request id, then trace headers (which never
// displace an already-set key), then caller headers (which do), then the
// ContentType option when the caller headers left Content-Type unset.
func (c *HTTPClient) buildHeaders(opts RequestOptions) map[string]string {
	headers := map[string]string{headerAccept: mimeJSON}

	if c.cfg.GlobalRequestID != "" {
		headers[HeaderRequestID] = c.cfg.GlobalRequestID
	}

	if c.trace != nil {
		for k, v := range c.trace.TraceHeaders() {
			if _, exists := headers[k]; !exists {
				headers[k] = v
			}
		}
	}

	for k, v := range opts.Headers {
		headers[k] = v
	}

	if opts.ContentType != "" && !hasHeader(opts.Headers, headerContentType) {
		headers[headerContentType] = opts.ContentType
	}

	// JSON API default for payloads; the transport would otherwise guess.
	if opts.Body != nil && !hasHeader(headers, headerContentType) {
		headers[headerContentType] = mimeJSON
	}

	return headers
}

// Request performs a single HTTP call with the merged header set and the body
// unchanged. It never inspects the status code; any received response is a
// success at this layer.
func (c *HTTPClient) Request(ctx context.Context, url, method string, opts RequestOptions) (*resty.Response, error) {
	req := c.rest.R().
		SetContext(ctx).
		SetHeaders(c.buildHeaders(opts))

	if opts.Body != nil {
		req.SetBody(opts.Body)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	return resp, nil
}

// DoRequest resolves path against the configured endpoint URL, performs the
// call and classifies the outcome. 403 is deliberately not part of the error
// taxonomy: callers have the context to tell "forbidden" from a hidden
// "not found", this layer does not.
func (c *HTTPClient) DoRequest(ctx context.Context, path, method string, opts RequestOptions) (*resty.Response, string, error) {
	return c.callAndClassify(ctx, c.cfg.EndpointURL+path, method, opts)
}

// callAndClassify performs the request and applies the status-code policy:
// transport failure -> ConnectionFailed, 401 -> Unauthorized, everything
// else (403, 404, 5xx included) is returned to the caller as-is.
func (c *HTTPClient) callAndClassify(ctx context.Context, url, method string, opts RequestOptions) (*resty.Response, string, error) {
	if c.cfg.Token != "" {
		opts.Headers = withHeader(opts.Headers, headerAuthToken, c.cfg.Token)
	}

	start := time.Now()

	resp, err := c.Request(ctx, url, method, opts)
	if err != nil {
		c.record(ctx, method, url, 0, audit.OutcomeConnectionFailed, start)
		return nil, "", &ConnectionFailed{Message: err.Error(), Err: err}
	}

	text := resp.String()

	c.log.DebugObj("control plane call", "api_call", map[string]any{
		"method":      method,
		"url":         url,
		"status":      resp.StatusCode(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode() == http.StatusUnauthorized {
		c.record(ctx, method, url, resp.StatusCode(), audit.OutcomeUnauthorized, start)
		return nil, "", &Unauthorized{Message: messageFromBody(resp.Header().Get(headerContentType), text)}
	}

	c.record(ctx, method, url, resp.StatusCode(), audit.OutcomeOK, start)
	return resp, text, nil
}

// record forwards the call outcome to the audit recorder, if any. Audit is
// best effort and never fails the call.
func (c *HTTPClient) record(ctx context.Context, method, url string, status int, outcome string, start time.Time) {
	if c.recorder == nil {
		return
	}
	c.recorder.Record(ctx, audit.NewEntry(method, url, status, outcome, c.cfg.GlobalRequestID, time.Since(start)))
}

// withHeader returns a copy of headers with key set unless the caller already
// supplied it (under any casing). The input map is never mutated.
func withHeader(headers map[string]string, key, value string) map[string]string {
	out := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		out[k] = v
	}
	if !hasHeader(out, key) {
		out[key] = value
	}
	return out
}

// hasHeader reports whether headers contains key, compared case-insensitively
// per HTTP header semantics.
func hasHeader(headers map[string]string, key string) bool {
	for k := range headers {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}
