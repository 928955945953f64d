// internal/chat/sources/gemini.go
package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nyaysetu/internal/common/httpclient"
	"nyaysetu/internal/common/logger"
)

var (
	ErrGeminiKeyMissing = errors.New("GEMINI_KEY_MISSING")
	ErrGeminiCallFailed = errors.New("GEMINI_CALL_FAILED")
	ErrGeminiNoText     = errors.New("GEMINI_NO_TEXT")
)

// GeminiConfig configures the generative backend.
type GeminiConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GeminiSource calls the Google generative-language API with the raw
// question as prompt. A missing API key is a configuration error that fails
// the attempt immediately; it never crashes the chain.
type GeminiSource struct {
	config GeminiConfig
	client *httpclient.Client
	logger logger.Logger
}

func NewGeminiSource(config GeminiConfig, log logger.Logger) *GeminiSource {
	if config.Timeout == 0 {
		config.Timeout = 20 * time.Second
	}
	return &GeminiSource{
		config: config,
		// No client-level timeout; the per-attempt context bounds the call.
		client: httpclient.NewClient(0),
		logger: log.With(map[string]interface{}{"source": string(NameGemini)}),
	}
}

func (s *GeminiSource) Name() Name { return NameGemini }

func (s *GeminiSource) Attempt(ctx context.Context, question, language string) Attempt {
	if s.config.APIKey == "" {
		s.logger.Warn("api key not configured", nil)
		return failed(NameGemini, ErrGeminiKeyMissing)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": question}}},
		},
	}
	body, _ := json.Marshal(requestBody)

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimSuffix(s.config.BaseURL, "/"), s.config.Model, s.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return failed(NameGemini, fmt.Errorf("%w: %v", ErrGeminiCallFailed, err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.DoWithContext(ctx, req)
	if err != nil {
		s.logger.Error("call failed", map[string]interface{}{"error": err.Error()})
		return failed(NameGemini, fmt.Errorf("%w: %v", ErrGeminiCallFailed, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("unexpected status", map[string]interface{}{"status": resp.StatusCode})
		return failed(NameGemini, fmt.Errorf("%w: status %d", ErrGeminiCallFailed, resp.StatusCode))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failed(NameGemini, fmt.Errorf("%w: %v", ErrGeminiCallFailed, err))
	}

	text, err := extractGeminiText(raw)
	if err != nil {
		s.logger.Warn("response parse failed", map[string]interface{}{"error": err.Error()})
		return failed(NameGemini, err)
	}

	s.logger.Info("answer produced", map[string]interface{}{"chars": len(text)})
	return succeeded(NameGemini, text)
}

// geminiResponse models the loosely-typed API shape. Every field is
// optional; extraction treats any deviation as absence of text.
type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
	Outputs    []geminiCandidate `json:"outputs"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// extractGeminiText walks candidates[0].content.parts[0].text, accepting
// "outputs" as an alternate candidate list. Parse failures are failures of
// the attempt, never a crash.
func extractGeminiText(raw []byte) (string, error) {
	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeminiNoText, err)
	}

	list := parsed.Candidates
	if len(list) == 0 {
		list = parsed.Outputs
	}
	if len(list) == 0 || list[0].Content == nil || len(list[0].Content.Parts) == 0 {
		return "", ErrGeminiNoText
	}

	text := strings.TrimSpace(list[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrGeminiNoText
	}
	return text, nil
}
