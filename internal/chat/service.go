// internal/chat/service.go
package chat

import (
	"context"
	"strings"
	"time"

	"nyaysetu/internal/chat/sources"
	"nyaysetu/internal/common/errors"
	"nyaysetu/internal/common/logger"
	"nyaysetu/internal/common/metrics"
	"nyaysetu/internal/policy"
)

const DefaultLanguage = "en"

// Resolver is the answer-resolution half of the pipeline; *sources.Chain
// satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, question, language string) (*sources.Resolved, error)
}

// Service runs the full chat pipeline: chain resolution, policy
// enforcement, and durable logging. All state is request-local; the
// service itself is safe for concurrent use.
type Service struct {
	resolver Resolver
	engine   *policy.Engine
	sink     RecordSink
	logger   logger.Logger
	now      func() time.Time
}

func NewService(resolver Resolver, engine *policy.Engine, sink RecordSink, log logger.Logger) *Service {
	return &Service{
		resolver: resolver,
		engine:   engine,
		sink:     sink,
		logger:   log.With(map[string]interface{}{"component": "chat_service"}),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ResolveChat answers one question. The caller must have authenticated the
// user already; the pipeline performs no authentication of its own. The
// only failure mode is total source exhaustion; policy refusals are
// successful resolutions whose text is a fixed string.
func (s *Service) ResolveChat(ctx context.Context, question, language string) (*Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, errors.NewValidationError("question is required")
	}
	if language == "" {
		language = DefaultLanguage
	}

	start := s.now()

	resolved, err := s.resolver.Resolve(ctx, question, language)
	if err != nil {
		return nil, errors.NewNoAnswerError(err.Error())
	}

	verdict := s.engine.Apply(resolved.Text, question, language)
	metrics.PolicyVerdicts.WithLabelValues(string(verdict.Category)).Inc()
	metrics.ChatResolutions.WithLabelValues(string(resolved.Source)).Inc()
	metrics.ChatDuration.WithLabelValues(string(resolved.Source)).Observe(time.Since(start).Seconds())

	timestamp := s.now()
	s.persist(ctx, Record{
		Question:  question,
		Answer:    verdict.FinalText,
		Language:  language,
		Timestamp: timestamp,
	})

	s.logger.Info("chat resolved", map[string]interface{}{
		"source":   string(resolved.Source),
		"category": string(verdict.Category),
		"language": language,
	})

	return &Result{
		Answer:    verdict.FinalText,
		Question:  question,
		Language:  language,
		Source:    resolved.Source,
		Category:  verdict.Category,
		Timestamp: timestamp,
	}, nil
}

// persist appends the record, swallowing sink failures: durable logging
// must never withhold a resolved answer from the caller.
func (s *Service) persist(ctx context.Context, rec Record) {
	if s.sink == nil {
		return
	}
	if _, err := s.sink.Append(ctx, rec); err != nil {
		metrics.RecordSinkFailures.Inc()
		s.logger.Error("failed to persist chat record", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
