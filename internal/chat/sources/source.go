// internal/chat/sources/source.go
package sources

import "context"

// Name identifies one answer backend.
type Name string

const (
	NameGemini      Name = "gemini"
	NameRemoteLegal Name = "remote_legal"
	NameFallback    Name = "local_fallback"
)

// Attempt is the explicit result of one source invocation. Failure is
// carried here, never as a magic string prefix in the answer text.
type Attempt struct {
	Source    Name
	Text      string
	Succeeded bool
	Skipped   bool
	Err       error
}

// Resolved is the first successful answer with its provenance tag.
type Resolved struct {
	Text   string
	Source Name
}

// Source is one backend capable of attempting to answer a question.
// Implementations must never panic and must never let a transport or parse
// error escape Attempt; such conditions become failed attempts instead.
type Source interface {
	Name() Name
	Attempt(ctx context.Context, question, language string) Attempt
}

func failed(name Name, err error) Attempt {
	return Attempt{Source: name, Err: err}
}

func skipped(name Name) Attempt {
	return Attempt{Source: name, Skipped: true}
}

func succeeded(name Name, text string) Attempt {
	return Attempt{Source: name, Text: text, Succeeded: true}
}
