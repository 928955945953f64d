// internal/chat/sources/remotelegal.go
package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nyaysetu/internal/common/httpclient"
	"nyaysetu/internal/common/logger"
)

var ErrRemoteLegalFailed = errors.New("REMOTE_LEGAL_FAILED")

// RemoteLegalConfig configures the translation/legal-advice microservice.
type RemoteLegalConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RemoteLegalSource posts {message, lang} to the remote advice service.
// An unset base URL means the source is skipped, not an error.
type RemoteLegalSource struct {
	config RemoteLegalConfig
	client *httpclient.Client
	logger logger.Logger
}

func NewRemoteLegalSource(config RemoteLegalConfig, log logger.Logger) *RemoteLegalSource {
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	return &RemoteLegalSource{
		config: config,
		client: httpclient.NewClient(0),
		logger: log.With(map[string]interface{}{"source": string(NameRemoteLegal)}),
	}
}

func (s *RemoteLegalSource) Name() Name { return NameRemoteLegal }

func (s *RemoteLegalSource) Attempt(ctx context.Context, question, language string) Attempt {
	if s.config.BaseURL == "" {
		s.logger.Debug("base url not configured, skipping", nil)
		return skipped(NameRemoteLegal)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	payload := map[string]string{"message": question, "lang": language}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL, bytes.NewBuffer(body))
	if err != nil {
		return failed(NameRemoteLegal, fmt.Errorf("%w: %v", ErrRemoteLegalFailed, err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.DoWithContext(ctx, req)
	if err != nil {
		s.logger.Error("call failed", map[string]interface{}{"error": err.Error()})
		return failed(NameRemoteLegal, fmt.Errorf("%w: %v", ErrRemoteLegalFailed, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("unexpected status", map[string]interface{}{"status": resp.StatusCode})
		return failed(NameRemoteLegal, fmt.Errorf("%w: status %d", ErrRemoteLegalFailed, resp.StatusCode))
	}

	var data map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		s.logger.Warn("response decode failed", map[string]interface{}{"error": err.Error()})
		return failed(NameRemoteLegal, fmt.Errorf("%w: %v", ErrRemoteLegalFailed, err))
	}

	text := extractRemoteAnswer(data)
	if text == "" {
		return failed(NameRemoteLegal, fmt.Errorf("%w: empty response", ErrRemoteLegalFailed))
	}

	s.logger.Info("answer produced", map[string]interface{}{"chars": len(text)})
	return succeeded(NameRemoteLegal, text)
}

// remoteAnswerKeys is the fixed extraction priority for the response body.
var remoteAnswerKeys = []string{"reply", "answer", "response"}

// extractRemoteAnswer checks the known keys in priority order and falls
// back to serializing the whole object when none match and the body is
// non-empty.
func extractRemoteAnswer(data map[string]interface{}) string {
	for _, key := range remoteAnswerKeys {
		if v, ok := data[key]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
			if v != nil {
				if b, err := json.Marshal(v); err == nil && string(b) != "null" && string(b) != `""` {
					return string(b)
				}
			}
		}
	}

	if len(data) == 0 {
		return ""
	}
	b, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	return string(b)
}
