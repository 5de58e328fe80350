package audit

import (
	"context"
	"errors"
	"fmt"
)

// Fanout dispatches audit entries to all configured sinks.
type Fanout struct {
	sinks []Sink
	log   Logger
}

// NewFanout builds a dispatcher that fans entries out across sinks.
func NewFanout(sinks []Sink, log Logger) *Fanout {
	cp := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s == nil {
			continue
		}
		cp = append(cp, s)
	}
	return &Fanout{sinks: cp, log: ensureLogger(log)}
}

// Publish forwards the entry to every registered sink.
// It returns the number of sinks that successfully handled the entry.
func (f *Fanout) Publish(ctx context.Context, e Entry) (int, error) {
	if f == nil || len(f.sinks) == 0 {
		return 0, nil
	}

	var errs []error
	successful := 0
	for _, s := range f.sinks {
		if err := s.Send(ctx, e); err != nil {
			errs = append(errs, fmt.Errorf("%s sink[%s]: %w", s.Type(), s.ID(), err))
		} else {
			successful++
		}
	}
	return successful, errors.Join(errs...)
}

// Record implements Recorder: delivery failures are logged and swallowed so
// auditing never fails the call being audited.
func (f *Fanout) Record(ctx context.Context, e Entry) {
	if f == nil {
		return
	}
	if _, err := f.Publish(ctx, e); err != nil {
		f.log.WarnObj("audit delivery failed", "audit_error", map[string]any{
			"method": e.Method,
			"url":    e.URL,
			"error":  err.Error(),
		})
	}
}

// Size returns the number of active sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.sinks)
}
