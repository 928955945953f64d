// internal/policy/engine.go
package policy

import "strings"

// Category classifies the policy outcome for a chat turn.
type Category string

const (
	CategoryIdentity Category = "identity"
	CategoryNonLegal Category = "non_legal"
	CategoryLegal    Category = "legal"
)

// Verdict is the result of applying the policy to a raw answer.
type Verdict struct {
	Category  Category
	FinalText string
}

// identityClaimPatterns are false-identity claims a backend model must not
// surface, matched case-insensitively against the raw answer.
var identityClaimPatterns = []string{
	"i am chatgpt", "i am gpt", "i am a language model", "i am an ai",
	"i am ai", "i am a chatbot", "this is chatgpt", "chatgpt", "openai",
	"this is gemini", "this is gemma", "i am an llm",
}

// legalIndicatorKeywords must appear at least once in a legal answer;
// their absence means the backend produced an off-topic reply despite a
// legal question.
var legalIndicatorKeywords = []string{
	"law", "legal", "court", "police", "rights", "complaint", "fir",
	"appeal", "contract",
}

// Engine enforces identity consistency and topical restriction on answers.
// It never fails: every input, including an empty raw answer, produces a
// verdict. Application is one-shot; refusal strings deliberately contain no
// legal keywords and would refuse themselves if fed back in.
type Engine struct {
	classifier *Classifier
	localizer  *Localizer

	identityPatterns []string
	legalIndicators  []string
}

func NewEngine(classifier *Classifier, localizer *Localizer) *Engine {
	return &Engine{
		classifier:       classifier,
		localizer:        localizer,
		identityPatterns: identityClaimPatterns,
		legalIndicators:  legalIndicatorKeywords,
	}
}

// Apply runs the precedence chain over (rawAnswer, question, language).
// First match wins:
//  1. identity question        -> fixed identity statement
//  2. non-legal question       -> fixed refusal
//  3. false-identity claim     -> fixed identity statement
//  4. no legal indicator word  -> "frame your question" redirect
//  5. otherwise                -> trimmed raw answer, unchanged
func (e *Engine) Apply(rawAnswer, question, language string) Verdict {
	if e.classifier.IsIdentityQuestion(question) {
		return Verdict{
			Category:  CategoryIdentity,
			FinalText: e.localizer.IdentityStatement(language),
		}
	}

	if !e.classifier.IsLegalQuestion(question) {
		return Verdict{
			Category:  CategoryNonLegal,
			FinalText: e.localizer.Refusal(language),
		}
	}

	ans := strings.TrimSpace(rawAnswer)
	lower := strings.ToLower(ans)

	for _, pat := range e.identityPatterns {
		if strings.Contains(lower, pat) {
			return Verdict{
				Category:  CategoryLegal,
				FinalText: e.localizer.IdentityStatement(language),
			}
		}
	}

	if !e.containsLegalIndicator(lower) {
		return Verdict{
			Category:  CategoryLegal,
			FinalText: e.localizer.FrameLegalRefusal(language),
		}
	}

	return Verdict{Category: CategoryLegal, FinalText: ans}
}

func (e *Engine) containsLegalIndicator(lowerAnswer string) bool {
	for _, k := range e.legalIndicators {
		if strings.Contains(lowerAnswer, k) {
			return true
		}
	}
	return false
}
