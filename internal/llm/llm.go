// Package llm defines the messages clai sends to a backend, the assembly of
// those messages under a token budget, and the Provider contract every backend
// implements.
package llm

import (
	"context"
	"io"
	"iter"

	"github.com/smetj/clai/internal/prompts"
)

// Role tags the author of a message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one role-tagged entry of a request. Content is always trimmed.
type Message struct {
	Role    Role
	Content string
}

// LineSeq yields standard input lines. It is finite and single-pass.
type LineSeq = iter.Seq2[string, error]

// Provider abstracts one backend instance behind a single synchronous call.
type Provider interface {
	// Name returns the backend identifier, e.g. "openai".
	Name() string

	// Prompt assembles the request messages, submits them and returns the
	// text payload of the first completion. In boolean mode the text is the
	// unvalidated JSON answer.
	Prompt(ctx context.Context, req Request) (string, error)
}

// Request describes a single invocation.
type Request struct {
	// Mode selects the system instruction and the structured-output toggle.
	Mode prompts.Mode

	// Prompts are sent as user messages in order.
	Prompts []string

	// Stdin is drained once and sent as a single joined user message. It may
	// be nil.
	Stdin LineSeq

	// Debug receives the assembled messages before submission when non-nil.
	Debug io.Writer
}
