// Package ai builds prompts from editor state, calls the external text
// generation service under a single-flight guard, and applies results
// back into the session through its insertion primitive.
package ai

import (
	"context"
	"errors"
	"fmt"
)

// ErrBusy rejects a request issued while another one is in flight for
// the same session.
var ErrBusy = errors.New("a generation is already running")

// ServiceError wraps any failure from the external service. It is
// always non-fatal: the document keeps its prior content and the user
// gets a notice.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Service is the external text generation backend. Every call is pure
// request/response; the service holds no session state.
type Service interface {
	GenerateTitle(ctx context.Context, text string) (string, error)
	Summarize(ctx context.Context, text string) (string, error)
	ContinueWriting(ctx context.Context, text string) (string, error)
	FixGrammar(ctx context.Context, text string) (string, error)
	CustomGenerate(ctx context.Context, prompt, contextText string, att *Attachment) (string, error)
}
