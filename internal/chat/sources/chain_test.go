package sources

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"nyaysetu/internal/common/logger"
)

// stubSource scripts one attempt outcome.
type stubSource struct {
	name    Name
	attempt Attempt
	panics  bool
	called  *bool
}

func (s *stubSource) Name() Name { return s.name }

func (s *stubSource) Attempt(ctx context.Context, question, language string) Attempt {
	if s.called != nil {
		*s.called = true
	}
	if s.panics {
		panic("boom")
	}
	return s.attempt
}

func TestChain_FirstSuccessWins(t *testing.T) {
	secondCalled := false
	chain := NewChain(logger.NewNoOpLogger(),
		&stubSource{name: NameGemini, attempt: succeeded(NameGemini, "from gemini")},
		&stubSource{name: NameRemoteLegal, called: &secondCalled},
	)

	resolved, err := chain.Resolve(context.Background(), "How do I appeal?", "en")
	assert.NoError(t, err)
	assert.Equal(t, "from gemini", resolved.Text)
	assert.Equal(t, NameGemini, resolved.Source)
	assert.False(t, secondCalled, "later sources must not run after a success")
}

func TestChain_FallsThroughFailureAndEmpty(t *testing.T) {
	chain := NewChain(logger.NewNoOpLogger(),
		&stubSource{name: NameGemini, attempt: failed(NameGemini, errors.New("network down"))},
		&stubSource{name: NameRemoteLegal, attempt: Attempt{Source: NameRemoteLegal, Succeeded: true, Text: ""}},
		&stubSource{name: NameFallback, attempt: succeeded(NameFallback, "canned advisory about the law")},
	)

	resolved, err := chain.Resolve(context.Background(), "eviction help", "en")
	assert.NoError(t, err)
	assert.Equal(t, NameFallback, resolved.Source)
	assert.Equal(t, "canned advisory about the law", resolved.Text)
}

func TestChain_AllExhaustedReturnsNoAnswer(t *testing.T) {
	chain := NewChain(logger.NewNoOpLogger(),
		&stubSource{name: NameGemini, attempt: failed(NameGemini, errors.New("boom"))},
		&stubSource{name: NameRemoteLegal, attempt: skipped(NameRemoteLegal)},
		&stubSource{name: NameFallback, attempt: skipped(NameFallback)},
	)

	resolved, err := chain.Resolve(context.Background(), "", "en")
	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, ErrNoAnswer)
}

func TestChain_PanickingSourceIsIsolated(t *testing.T) {
	chain := NewChain(logger.NewNoOpLogger(),
		&stubSource{name: NameGemini, panics: true},
		&stubSource{name: NameFallback, attempt: succeeded(NameFallback, "still answered under the law")},
	)

	resolved, err := chain.Resolve(context.Background(), "contract breach", "en")
	assert.NoError(t, err)
	assert.Equal(t, NameFallback, resolved.Source)
}
