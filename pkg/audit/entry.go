package audit

import "time"

// Call outcomes as recorded in an Entry.
const (
	OutcomeOK               = "ok"
	OutcomeUnauthorized     = "unauthorized"
	OutcomeConnectionFailed = "connection_failed"
)

// Entry is one recorded control-plane call.
type Entry struct {
	Method     string    `json:"method"`
	URL        string    `json:"url"`
	StatusCode int       `json:"status_code"`
	Outcome    string    `json:"outcome"`
	RequestID  string    `json:"request_id,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEntry constructs an Entry for a finished call.
func NewEntry(method, url string, statusCode int, outcome, requestID string, duration time.Duration) Entry {
	return Entry{
		Method:     method,
		URL:        url,
		StatusCode: statusCode,
		Outcome:    outcome,
		RequestID:  requestID,
		DurationMS: duration.Milliseconds(),
		OccurredAt: time.Now().UTC(),
	}
}
