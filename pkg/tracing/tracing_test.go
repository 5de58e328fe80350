package tracing

import (
	"regexp"
	"testing"
)

var traceParentRe = regexp.MustCompile(`^00-[0-9a-f]{32}-[0-9a-f]{16}-01$`)

func TestNewTraceParentFormat(t *testing.T) {
	tp := NewTraceParent()
	if !traceParentRe.MatchString(tp) {
		t.Fatalf("malformed traceparent: %s", tp)
	}
	if other := NewTraceParent(); other == tp {
		t.Fatalf("expected unique traceparent per call, got %s twice", tp)
	}
}

func TestW3CProviderHeaders(t *testing.T) {
	p := NewW3CProvider("netcheck=smoke")

	headers := p.TraceHeaders()
	if !traceParentRe.MatchString(headers[HeaderTraceParent]) {
		t.Fatalf("malformed traceparent: %s", headers[HeaderTraceParent])
	}
	if headers[HeaderTraceState] != "netcheck=smoke" {
		t.Fatalf("tracestate = %q", headers[HeaderTraceState])
	}

	p = NewW3CProvider("")
	if _, ok := p.TraceHeaders()[HeaderTraceState]; ok {
		t.Fatalf("tracestate should be omitted when state is empty")
	}
}

func TestTraceIDFrom(t *testing.T) {
	id := "0af7651916cd43dd8448eb211c80319c"
	if got := TraceIDFrom("00-" + id + "-b7ad6b7169203331-01"); got != id {
		t.Fatalf("TraceIDFrom = %s", got)
	}
	if got := TraceIDFrom("garbage"); got != "garbage" {
		t.Fatalf("expected passthrough for malformed input, got %s", got)
	}
}

func TestStaticHeadersReturnsCopy(t *testing.T) {
	s := StaticHeaders{"Traceparent": "00-abc-def-01"}

	headers := s.TraceHeaders()
	headers["Traceparent"] = "mutated"

	if s["Traceparent"] != "00-abc-def-01" {
		t.Fatalf("provider state mutated through returned map")
	}
}
