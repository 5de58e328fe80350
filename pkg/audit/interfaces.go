package audit

import "context"

// Sink delivers audit entries to a downstream destination (HTTP, SQS, SNS,
// Pub/Sub).
type Sink interface {
	ID() string
	Type() string
	Send(ctx context.Context, e Entry) error
}

// Recorder is the surface API clients record through. Implementations must
// treat delivery as best effort: a failing recorder must not fail the call
// being audited.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}
