package ai

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/marcus/inkwell/internal/editor"
)

// maxContextChars caps how much note content rides along with a custom
// prompt.
const maxContextChars = 5000

// Op identifies one of the assisted-writing operations.
type Op int

const (
	OpTitle Op = iota
	OpSummarize
	OpContinue
	OpGrammar
	OpCustom
)

func (op Op) String() string {
	switch op {
	case OpTitle:
		return "generate title"
	case OpSummarize:
		return "summarize"
	case OpContinue:
		return "continue writing"
	case OpGrammar:
		return "fix grammar"
	default:
		return "generate"
	}
}

// Result is the completion of one service call. Epoch ties it to the
// session that issued it; a result from a closed or replaced session
// arrives with a stale epoch and is discarded.
type Result struct {
	Op    Op
	Epoch int
	Text  string
	Err   error
}

// Outcome reports what Apply did with a result. Notice carries
// out-of-band text: a failure message, or a summary that cannot be
// spliced into a code buffer.
type Outcome struct {
	Applied bool
	Notice  string
	IsError bool
}

// Orchestrator guards the assisted-writing operations with a
// single-flight flag and routes completions back into the editor
// session.
type Orchestrator struct {
	svc     Service
	logger  *slog.Logger
	timeout time.Duration

	busy  bool
	epoch int
}

func New(svc Service, timeout time.Duration, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{svc: svc, logger: logger, timeout: timeout}
}

// Busy reports whether a request is in flight.
func (o *Orchestrator) Busy() bool { return o.busy }

// Reset discards any in-flight request. Called when the session closes
// or switches notes so a late completion cannot write into the wrong
// buffer.
func (o *Orchestrator) Reset() {
	o.epoch++
	o.busy = false
}

// Start begins one operation against the session's current content.
// It returns a closure that performs the blocking service call and
// yields the Result to hand back to Apply. While a request is in
// flight every further Start is rejected with ErrBusy.
func (o *Orchestrator) Start(op Op, prompt string, sess *editor.Session, att *Attachment) (func() Result, error) {
	if o.busy {
		return nil, ErrBusy
	}
	if att != nil && len(att.Data) > MaxAttachmentSize {
		return nil, ErrAttachmentTooLarge
	}
	contextText := sess.PlainText()
	if op == OpCustom {
		if runes := []rune(contextText); len(runes) > maxContextChars {
			contextText = string(runes[:maxContextChars])
		}
	}
	o.busy = true
	o.epoch++
	epoch := o.epoch
	o.logger.Debug("generation started", "op", op.String(), "epoch", epoch)

	return func() Result {
		ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
		defer cancel()
		var text string
		var err error
		switch op {
		case OpTitle:
			text, err = o.svc.GenerateTitle(ctx, contextText)
		case OpSummarize:
			text, err = o.svc.Summarize(ctx, contextText)
		case OpContinue:
			text, err = o.svc.ContinueWriting(ctx, contextText)
		case OpGrammar:
			text, err = o.svc.FixGrammar(ctx, contextText)
		case OpCustom:
			text, err = o.svc.CustomGenerate(ctx, prompt, contextText, att)
		}
		if err != nil {
			err = &ServiceError{Op: op.String(), Err: err}
		}
		return Result{Op: op, Epoch: epoch, Text: text, Err: err}
	}, nil
}

// Apply routes a completed result into the session. Stale results are
// dropped without touching anything. Failures clear the single-flight
// flag and leave the document exactly as it was. The flag is cleared
// on every current-epoch completion, so a failed call never locks out
// further requests.
func (o *Orchestrator) Apply(res Result, sess *editor.Session) Outcome {
	if res.Epoch != o.epoch {
		o.logger.Debug("stale generation discarded", "op", res.Op.String(), "epoch", res.Epoch)
		return Outcome{}
	}
	o.busy = false
	if sess == nil || sess.Closed() {
		return Outcome{}
	}
	if res.Err != nil {
		return Outcome{Notice: res.Err.Error(), IsError: true}
	}
	code := sess.Mode() == editor.ModeCode
	switch res.Op {
	case OpTitle:
		sess.SetTitle(strings.Trim(res.Text, `"' `))
	case OpSummarize:
		if code {
			// Never splice prose into a code buffer.
			return Outcome{Notice: res.Text}
		}
		sess.InsertAtCursor("\n\n> **Summary:** " + res.Text + "\n\n")
	case OpContinue:
		if code {
			sess.Append("\n" + res.Text)
		} else if sess.Content() == "" {
			sess.InsertAtCursor(res.Text)
		} else {
			sess.InsertAtCursor(" " + res.Text)
		}
	case OpGrammar:
		sess.ReplaceAll(res.Text)
	case OpCustom:
		if code {
			sess.Append("\n" + res.Text)
		} else {
			sess.InsertAtCursor("\n\n" + res.Text)
		}
	}
	return Outcome{Applied: true}
}
