// internal/chat/models.go
package chat

import (
	"context"
	"time"

	"nyaysetu/internal/chat/sources"
	"nyaysetu/internal/policy"
)

// Record is one durable chat turn: the question, the final sanitized
// answer, the language, and when it was resolved. Records are append-only;
// the gateway never mutates or deletes them.
type Record struct {
	ID        int64     `json:"id,omitempty"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Language  string    `json:"language"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordSink receives resolved chat turns for durable logging. A sink
// failure must never withhold the answer from the caller.
type RecordSink interface {
	Append(ctx context.Context, rec Record) (int64, error)
}

// Result is what the caller of ResolveChat receives.
type Result struct {
	Answer    string          `json:"answer"`
	Question  string          `json:"question"`
	Language  string          `json:"language"`
	Source    sources.Name    `json:"source"`
	Category  policy.Category `json:"-"`
	Timestamp time.Time       `json:"timestamp"`
}
