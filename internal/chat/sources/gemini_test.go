package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nyaysetu/internal/common/logger"
)

func newGeminiTestSource(t *testing.T, serverURL string) *GeminiSource {
	return NewGeminiSource(GeminiConfig{
		BaseURL: serverURL,
		APIKey:  "test-key",
		Model:   "gemini-1.5-flash",
		Timeout: 2 * time.Second,
	}, logger.NewTestLogger(t))
}

func TestGeminiSource_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Contains(t, r.URL.RawQuery, "key=test-key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [
				{"content": {"parts": [{"text": "Under the law, you may file an appeal."}]}}
			]
		}`))
	}))
	defer server.Close()

	src := newGeminiTestSource(t, server.URL)
	attempt := src.Attempt(context.Background(), "Can I appeal?", "en")

	assert.True(t, attempt.Succeeded)
	assert.Equal(t, NameGemini, attempt.Source)
	assert.Equal(t, "Under the law, you may file an appeal.", attempt.Text)
}

func TestGeminiSource_OutputsListAccepted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"outputs": [{"content": {"parts": [{"text": "legal text"}]}}]}`))
	}))
	defer server.Close()

	src := newGeminiTestSource(t, server.URL)
	attempt := src.Attempt(context.Background(), "q", "en")
	assert.True(t, attempt.Succeeded)
	assert.Equal(t, "legal text", attempt.Text)
}

func TestGeminiSource_MissingKeyFailsImmediately(t *testing.T) {
	src := NewGeminiSource(GeminiConfig{BaseURL: "http://unused"}, logger.NewNoOpLogger())

	attempt := src.Attempt(context.Background(), "q", "en")
	assert.False(t, attempt.Succeeded)
	assert.ErrorIs(t, attempt.Err, ErrGeminiKeyMissing)
}

func TestGeminiSource_MalformedShapesFailAttempt(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>error</html>"},
		{"empty object", "{}"},
		{"empty candidates", `{"candidates": []}`},
		{"candidate without content", `{"candidates": [{}]}`},
		{"content without parts", `{"candidates": [{"content": {"parts": []}}]}`},
		{"blank text", `{"candidates": [{"content": {"parts": [{"text": "   "}]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			src := newGeminiTestSource(t, server.URL)
			attempt := src.Attempt(context.Background(), "q", "en")
			assert.False(t, attempt.Succeeded)
			assert.Error(t, attempt.Err)
		})
	}
}

func TestGeminiSource_HTTPErrorFailsAttempt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	src := newGeminiTestSource(t, server.URL)
	attempt := src.Attempt(context.Background(), "q", "en")
	assert.False(t, attempt.Succeeded)
	assert.ErrorIs(t, attempt.Err, ErrGeminiCallFailed)
}

func TestGeminiSource_TimeoutFailsAttempt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "too late"}]}}]}`))
	}))
	defer server.Close()

	src := NewGeminiSource(GeminiConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gemini-1.5-flash",
		Timeout: 50 * time.Millisecond,
	}, logger.NewNoOpLogger())

	attempt := src.Attempt(context.Background(), "q", "en")
	assert.False(t, attempt.Succeeded)
	assert.ErrorIs(t, attempt.Err, ErrGeminiCallFailed)
}
