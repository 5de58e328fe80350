package tracing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// HeaderTraceParent carries the W3C trace context for a single request.
	HeaderTraceParent = "Traceparent"
	// HeaderTraceState carries vendor-specific trace annotations.
	HeaderTraceState = "Tracestate"
)

// HeaderProvider supplies trace headers to merge into every outgoing request.
// Implementations must be safe for concurrent use.
type HeaderProvider interface {
	TraceHeaders() map[string]string
}

// W3CProvider emits a fresh W3C traceparent per request so individual calls
// can be located in server-side logs.
type W3CProvider struct {
	// State, when non-empty, is sent verbatim as the tracestate header.
	State string
}

// NewW3CProvider builds a provider with the given tracestate annotation.
func NewW3CProvider(state string) *W3CProvider {
	return &W3CProvider{State: strings.TrimSpace(state)}
}

// TraceHeaders returns a new traceparent (and optional tracestate) header set.
func (p *W3CProvider) TraceHeaders() map[string]string {
	headers := map[string]string{
		HeaderTraceParent: NewTraceParent(),
	}
	if p.State != "" {
		headers[HeaderTraceState] = p.State
	}
	return headers
}

// StaticHeaders is a fixed header set, useful for pre-computed trace contexts
// and as a test double.
type StaticHeaders map[string]string

// TraceHeaders returns a copy so callers cannot mutate the provider.
func (s StaticHeaders) TraceHeaders() map[string]string {
	if len(s) == 0 {
		return nil
	}
	out := make(map[string]string, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// NewTraceParent creates a sampled W3C traceparent header value.
func NewTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", randomHex(16), randomHex(8))
}

// TraceIDFrom extracts the trace ID portion of a traceparent value.
// It returns the input unchanged when the value is not well formed.
func TraceIDFrom(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}
	return traceParent
}

func randomHex(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
