package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nyaysetu/internal/common/logger"
)

func newRemoteLegalTestSource(t *testing.T, serverURL string) *RemoteLegalSource {
	return NewRemoteLegalSource(RemoteLegalConfig{
		BaseURL: serverURL,
		Timeout: 2 * time.Second,
	}, logger.NewTestLogger(t))
}

func TestRemoteLegalSource_UnconfiguredURLSkips(t *testing.T) {
	src := NewRemoteLegalSource(RemoteLegalConfig{}, logger.NewNoOpLogger())

	attempt := src.Attempt(context.Background(), "q", "en")
	assert.True(t, attempt.Skipped)
	assert.False(t, attempt.Succeeded)
	assert.NoError(t, attempt.Err)
}

func TestRemoteLegalSource_SendsMessageAndLang(t *testing.T) {
	var received map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.Write([]byte(`{"reply": "File an FIR under the law."}`))
	}))
	defer server.Close()

	src := newRemoteLegalTestSource(t, server.URL)
	attempt := src.Attempt(context.Background(), "How do I file an FIR?", "hi")

	assert.True(t, attempt.Succeeded)
	assert.Equal(t, "How do I file an FIR?", received["message"])
	assert.Equal(t, "hi", received["lang"])
}

func TestRemoteLegalSource_AnswerKeyPriority(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"reply wins", `{"reply": "from reply", "answer": "from answer", "response": "from response"}`, "from reply"},
		{"answer next", `{"answer": "from answer", "response": "from response"}`, "from answer"},
		{"response last", `{"response": "from response"}`, "from response"},
		{"whole object fallback", `{"data": {"note": "x"}}`, `{"data":{"note":"x"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			src := newRemoteLegalTestSource(t, server.URL)
			attempt := src.Attempt(context.Background(), "q", "en")
			assert.True(t, attempt.Succeeded)
			assert.Equal(t, tt.expected, attempt.Text)
		})
	}
}

func TestRemoteLegalSource_EmptyObjectFailsAttempt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	src := newRemoteLegalTestSource(t, server.URL)
	attempt := src.Attempt(context.Background(), "q", "en")
	assert.False(t, attempt.Succeeded)
	assert.ErrorIs(t, attempt.Err, ErrRemoteLegalFailed)
}

func TestRemoteLegalSource_HTTPErrorFailsAttempt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	src := newRemoteLegalTestSource(t, server.URL)
	attempt := src.Attempt(context.Background(), "q", "en")
	assert.False(t, attempt.Succeeded)
	assert.ErrorIs(t, attempt.Err, ErrRemoteLegalFailed)
}
