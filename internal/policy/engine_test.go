package policy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	identityEN   = "I am an AI assistant specializing in legal information."
	refusalEN    = "I can only provide legal knowledge. Please ask a legal question."
	frameLegalEN = "My function is to provide information on legal topics. Please frame your question accordingly."
)

func newTestEngine() *Engine {
	return NewEngine(NewClassifier(), NewLocalizer())
}

func TestEngine_IdentityQuestionDiscardsRawAnswer(t *testing.T) {
	e := newTestEngine()

	rawAnswers := []string{
		"",
		"some model text",
		"To file an FIR, visit the police station under the law.", // legal keywords do not matter
	}

	for _, raw := range rawAnswers {
		v := e.Apply(raw, "Who are you?", "en")
		assert.Equal(t, CategoryIdentity, v.Category)
		assert.Equal(t, identityEN, v.FinalText)
	}
}

func TestEngine_NonLegalQuestionRefused(t *testing.T) {
	e := newTestEngine()

	v := e.Apply("It will be sunny tomorrow.", "What's the weather?", "en")
	assert.Equal(t, CategoryNonLegal, v.Category)
	assert.Equal(t, refusalEN, v.FinalText)
}

func TestEngine_FalseIdentityClaimOverridesLegalAnswer(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name string
		raw  string
	}{
		{"chatgpt claim", "I am ChatGPT, here's how to file an FIR at the police station."},
		{"openai mention", "According to OpenAI training data, the law says you may appeal."},
		{"language model claim", "As I am a language model, the court procedure is as follows."},
		{"gemini claim", "This is Gemini. File a complaint under the relevant law."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := e.Apply(tt.raw, "How do I file an FIR?", "en")
			assert.Equal(t, CategoryLegal, v.Category)
			assert.Equal(t, identityEN, v.FinalText)
		})
	}
}

func TestEngine_OffTopicAnswerRedirected(t *testing.T) {
	e := newTestEngine()

	v := e.Apply("Drink plenty of water and rest well.", "How do I file an FIR?", "en")
	assert.Equal(t, CategoryLegal, v.Category)
	assert.Equal(t, frameLegalEN, v.FinalText)
}

func TestEngine_CleanLegalAnswerPassesUnchanged(t *testing.T) {
	e := newTestEngine()

	raw := "To file an FIR, visit your local police station and submit a written complaint under the relevant law."
	v := e.Apply("  "+raw+"  ", "How do I file an FIR?", "en")
	assert.Equal(t, CategoryLegal, v.Category)
	assert.Equal(t, raw, v.FinalText)
}

func TestEngine_EmptyRawAnswerNeverPanics(t *testing.T) {
	e := newTestEngine()

	v := e.Apply("", "How do I file an FIR?", "en")
	assert.Equal(t, frameLegalEN, v.FinalText)

	v = e.Apply("", "", "")
	assert.Equal(t, refusalEN, v.FinalText)
}

func TestEngine_HindiLocalization(t *testing.T) {
	e := newTestEngine()
	loc := NewLocalizer()

	v := e.Apply("anything", "Who are you?", "hi")
	assert.Equal(t, loc.IdentityStatement("hi"), v.FinalText)

	// Prefix match: region subtags select the same strings.
	v2 := e.Apply("anything", "Who are you?", "hi-IN")
	assert.Equal(t, v.FinalText, v2.FinalText)

	// Unknown codes default to English.
	v3 := e.Apply("It will rain.", "What's the weather?", "xx")
	assert.Equal(t, refusalEN, v3.FinalText)
}

// Re-applying the policy to its own output is stable. Pass-through answers
// already satisfy the checks; the English fixed strings happen to contain
// the word "legal" so they pass the indicator check, and the identity
// statement trips the identity-claim override back to itself. Application
// is still intentionally one-shot: the Hindi fixed strings share no English
// indicator keyword and would be redirected if fed back in.
func TestEngine_ReapplicationIsStable(t *testing.T) {
	e := newTestEngine()
	question := "How do I file an FIR?"

	clean := "Submit a written complaint at the police station under the law."
	first := e.Apply(clean, question, "en")
	second := e.Apply(first.FinalText, question, "en")
	assert.Equal(t, first.FinalText, second.FinalText)

	for _, fixed := range []string{identityEN, refusalEN, frameLegalEN} {
		assert.Equal(t, fixed, e.Apply(fixed, question, "en").FinalText)
	}

	// Hindi fixed strings lack the English indicator keywords.
	loc := NewLocalizer()
	assert.False(t, e.containsLegalIndicator(strings.ToLower(loc.Refusal("hi"))))
	redirected := e.Apply(loc.Refusal("hi"), question, "en")
	assert.Equal(t, frameLegalEN, redirected.FinalText)
}
