// internal/forms/service.go
package forms

import (
	"context"
	"io"
	"strings"
	"time"

	commonerrors "nyaysetu/internal/common/errors"
	"nyaysetu/internal/common/metrics"
	"nyaysetu/internal/store"
)

// Logger is the minimal logging surface the forms service needs.
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// FormSink persists generated forms. Sink failures never fail generation.
type FormSink interface {
	Append(ctx context.Context, rec store.FormRecord) (int64, error)
}

// Result is a generated form document.
type Result struct {
	Form      string    `json:"form"`
	FormType  string    `json:"form_type"`
	Timestamp time.Time `json:"timestamp"`
}

// Service generates, validates and persists legal form documents.
type Service struct {
	generator *Generator
	validator *Validator
	sink      FormSink
	logger    Logger
	now       func() time.Time
}

func NewService(generator *Generator, validator *Validator, sink FormSink, logger Logger) *Service {
	return &Service{
		generator: generator,
		validator: validator,
		sink:      sink,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate validates the responses, renders the form and records it. A
// persistence failure is logged but does not fail the request.
func (s *Service) Generate(ctx context.Context, formType string, responses map[string]interface{}) (*Result, error) {
	formType = strings.ToUpper(strings.TrimSpace(formType))
	if formType == "" {
		formType = defaultForm
	}
	if !Known(formType) {
		return nil, commonerrors.NewFormTypeError(formType)
	}

	if err := s.validator.Validate(formType, responses); err != nil {
		return nil, err
	}

	formText, err := s.generator.Generate(formType, Coerce(responses))
	if err != nil {
		return nil, err
	}

	timestamp := s.now().UTC()
	rec := store.FormRecord{
		FormType:  formType,
		FormText:  formText,
		Responses: Coerce(responses),
		Timestamp: timestamp,
	}
	if _, err := s.sink.Append(ctx, rec); err != nil {
		metrics.RecordSinkFailures.Inc()
		s.logger.Error("failed to persist form", map[string]interface{}{
			"form_type": formType,
			"error":     err.Error(),
		})
	}

	metrics.FormsGenerated.WithLabelValues(formType).Inc()
	s.logger.Info("form generated", map[string]interface{}{"form_type": formType})

	return &Result{Form: formText, FormType: formType, Timestamp: timestamp}, nil
}

// GeneratePDF renders the form and streams it as a PDF document.
func (s *Service) GeneratePDF(ctx context.Context, w io.Writer, formType string, responses map[string]interface{}) (*Result, error) {
	result, err := s.Generate(ctx, formType, responses)
	if err != nil {
		return nil, err
	}
	if err := RenderPDF(w, result.FormType, result.Form); err != nil {
		return nil, err
	}
	return result, nil
}

// Fields exposes the response keys of a form type for clients building input
// screens.
func (s *Service) Fields(formType string) (map[string][]string, error) {
	return s.generator.Fields(strings.ToUpper(strings.TrimSpace(formType)))
}
