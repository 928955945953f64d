// internal/policy/classifier.go
package policy

import "strings"

// Classifier decides whether a question probes the assistant's identity or
// seeks legal content. The keyword tables are injectable so jurisdictions
// and languages can extend them without touching control flow; all methods
// are pure and total over arbitrary strings, including empty and non-ASCII
// input.
type Classifier struct {
	identityTriggers []string
	legalKeywords    []string
}

// DefaultIdentityTriggers are matched as case-insensitive substrings.
var DefaultIdentityTriggers = []string{
	"who are you",
	"what are you",
	"who is this",
	"identify yourself",
	"what is your name",
	"are you a bot",
}

// DefaultLegalKeywords cover the legal domains the gateway serves.
var DefaultLegalKeywords = []string{
	"law", "legal", "rights", "police", "court", "complaint", "fir", "appeal",
	"rti", "eviction", "divorce", "custody", "contract", "agreement", "charge",
	"arrest", "evidence", "bail", "sue", "lawsuit",
}

func NewClassifier() *Classifier {
	return NewClassifierWithTables(DefaultIdentityTriggers, DefaultLegalKeywords)
}

func NewClassifierWithTables(identityTriggers, legalKeywords []string) *Classifier {
	return &Classifier{
		identityTriggers: identityTriggers,
		legalKeywords:    legalKeywords,
	}
}

// IsIdentityQuestion reports whether text probes the assistant's nature or
// identity rather than seeking legal content.
func (c *Classifier) IsIdentityQuestion(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, trigger := range c.identityTriggers {
		if strings.Contains(t, trigger) {
			return true
		}
	}
	return false
}

// IsLegalQuestion reports whether text contains a legal-domain keyword.
// Short identity-like questions (five tokens or fewer) are never legal,
// so an identity probe cannot leak into model-sanitization treatment.
func (c *Classifier) IsLegalQuestion(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if len(strings.Fields(t)) <= 5 && c.IsIdentityQuestion(t) {
		return false
	}
	for _, k := range c.legalKeywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}
