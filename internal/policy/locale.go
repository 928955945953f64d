// internal/policy/locale.go
package policy

import "strings"

// Fixed policy strings, localized. This is a closed lookup keyed by
// language-code prefix, not a translation call; unrecognized codes fall
// back to English.
type localizedStrings struct {
	Identity   string
	Refusal    string
	FrameLegal string
}

var fixedStrings = map[string]localizedStrings{
	"en": {
		Identity:   "I am an AI assistant specializing in legal information.",
		Refusal:    "I can only provide legal knowledge. Please ask a legal question.",
		FrameLegal: "My function is to provide information on legal topics. Please frame your question accordingly.",
	},
	"hi": {
		Identity:   "मैं कानूनी जानकारी में विशेषज्ञता वाला एक एआई सहायक हूं।",
		Refusal:    "मैं केवल कानूनी जानकारी प्रदान कर सकता/सकती हूँ। कृपया एक कानूनी प्रश्न पूछें।",
		FrameLegal: "मेरा कार्य कानूनी विषयों पर जानकारी प्रदान करना है। कृपया अपना प्रश्न उसी अनुसार पूछें।",
	},
}

// Localizer resolves fixed policy strings for a language code.
type Localizer struct {
	strings map[string]localizedStrings
}

func NewLocalizer() *Localizer {
	return &Localizer{strings: fixedStrings}
}

// resolve picks the string set whose key prefixes the language code, so
// "hi", "hi-IN" and "hin" all select Hindi. Everything else is English.
func (l *Localizer) resolve(language string) localizedStrings {
	lang := strings.ToLower(strings.TrimSpace(language))
	for prefix, set := range l.strings {
		if prefix == "en" {
			continue
		}
		if strings.HasPrefix(lang, prefix) {
			return set
		}
	}
	return l.strings["en"]
}

// IdentityStatement returns the fixed identity reply for language.
func (l *Localizer) IdentityStatement(language string) string {
	return l.resolve(language).Identity
}

// Refusal returns the fixed non-legal-question refusal for language.
func (l *Localizer) Refusal(language string) string {
	return l.resolve(language).Refusal
}

// FrameLegalRefusal returns the "frame your question in legal terms"
// redirect for language.
func (l *Localizer) FrameLegalRefusal(language string) string {
	return l.resolve(language).FrameLegal
}
