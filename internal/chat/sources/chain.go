// internal/chat/sources/chain.go
package sources

import (
	"context"
	"errors"

	"nyaysetu/internal/common/logger"
	"nyaysetu/internal/common/metrics"
)

// ErrNoAnswer is returned when every source in the chain failed or came
// back empty. Callers surface it as a service-unavailable condition.
var ErrNoAnswer = errors.New("NO_ANSWER_AVAILABLE")

// Chain orchestrates sources in fixed priority order. Calls are sequential
// and short-circuit on the first non-empty success; a failure in one source
// never prevents the next from being tried, and no source is retried within
// a single request.
type Chain struct {
	sources []Source
	logger  logger.Logger
}

func NewChain(log logger.Logger, srcs ...Source) *Chain {
	return &Chain{
		sources: srcs,
		logger:  log.With(map[string]interface{}{"component": "source_chain"}),
	}
}

// Resolve tries each source in order and returns the first successful
// answer tagged with its provenance, or ErrNoAnswer on total exhaustion.
func (c *Chain) Resolve(ctx context.Context, question, language string) (*Resolved, error) {
	for _, src := range c.sources {
		attempt := c.attempt(ctx, src, question, language)

		switch {
		case attempt.Succeeded && attempt.Text != "":
			metrics.SourceAttempts.WithLabelValues(string(attempt.Source), "success").Inc()
			c.logger.Info("source produced answer", map[string]interface{}{
				"source": string(attempt.Source),
			})
			return &Resolved{Text: attempt.Text, Source: attempt.Source}, nil

		case attempt.Skipped:
			metrics.SourceAttempts.WithLabelValues(string(attempt.Source), "skipped").Inc()
			c.logger.Debug("source skipped", map[string]interface{}{
				"source": string(attempt.Source),
			})

		default:
			metrics.SourceAttempts.WithLabelValues(string(attempt.Source), "failed").Inc()
			fields := map[string]interface{}{"source": string(attempt.Source)}
			if attempt.Err != nil {
				fields["error"] = attempt.Err.Error()
			}
			c.logger.Warn("source attempt failed", fields)
		}
	}

	return nil, ErrNoAnswer
}

// attempt isolates a single source call so a panicking source is recorded
// as a failed attempt instead of taking down the request.
func (c *Chain) attempt(ctx context.Context, src Source, question, language string) (attempt Attempt) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("source panicked", map[string]interface{}{
				"source": string(src.Name()),
				"panic":  r,
			})
			attempt = Attempt{Source: src.Name()}
		}
	}()
	return src.Attempt(ctx, question, language)
}
