// ABOUTME: Boost workflow: builds one enhancement request and drains the streamed reply
// ABOUTME: Every outcome is a tagged Result; the original prompt survives all failures

package boost

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/promptboost/promptboost/internal/log"
	"github.com/promptboost/promptboost/pkg/ai"
)

// Status tags the outcome of one enhancement attempt.
type Status string

const (
	// StatusSuccess means the enhanced text was produced.
	StatusSuccess Status = "success"
	// StatusFailed means submission, streaming, or validation failed; the
	// original text is preserved.
	StatusFailed Status = "failed"
	// StatusTerminated means no endpoint was resolved and the workflow was
	// never entered.
	StatusTerminated Status = "terminated"
	// StatusCancelled means the caller's context was cancelled mid-run.
	StatusCancelled Status = "cancelled"
)

// Result is the outcome of one enhancement attempt. Text always holds
// usable prompt text: the enhancement on success, the caller's original
// input otherwise.
type Result struct {
	Text   string
	Status Status
	Err    error // diagnostic only; nil on success
}

// Options tune a single run.
type Options struct {
	// MaxOutputChars caps the accumulated response size. Zero disables the cap.
	MaxOutputChars int
	// OnDelta observes each text fragment as it arrives. It runs on the
	// draining goroutine and must be cheap.
	OnDelta func(text string)
}

var errEmptyResponse = errors.New("model returned an empty response")

// Terminated is the result for an invocation that never entered the
// workflow because endpoint resolution yielded nothing.
func Terminated(promptText string) Result {
	return Result{Text: promptText, Status: StatusTerminated}
}

// BuildMessage assembles the single outbound message: the instruction
// document followed by the original prompt in its wrapper.
func BuildMessage(instructionText, promptText string) string {
	return instructionText + "\n<original_prompt>\n" + promptText + "\n</original_prompt>"
}

// Run sends one enhancement request to the resolved model and drains the
// streamed reply in arrival order. ctx is the caller's context: cancelling
// it aborts the in-flight request. Run never panics and never returns a Go
// error; every outcome is a tagged Result carrying usable text.
func Run(ctx context.Context, provider ai.ApiProvider, model *ai.Model, instructionText, promptText string, opts Options) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("boost recovered from panic: %v", r)
			result = Result{Text: promptText, Status: StatusFailed, Err: fmt.Errorf("boost: %v", r)}
		}
	}()

	// Derived so the size cap can abort the transfer without touching the
	// caller's context.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	message := BuildMessage(instructionText, promptText)
	llmCtx := &ai.Context{
		Messages: []ai.Message{ai.NewTextMessage(ai.RoleUser, message)},
	}

	log.Info("boost: sending %d prompt chars to %s", len(promptText), model.ID)
	stream := provider.Stream(runCtx, model, llmCtx, &ai.StreamOptions{})
	events := stream.Events()

	var b strings.Builder
	var streamErr error
	for evt := range events {
		if ctx.Err() != nil {
			drainAbandoned(events)
			log.Warn("boost cancelled: %v", ctx.Err())
			return Result{Text: promptText, Status: StatusCancelled, Err: ctx.Err()}
		}
		switch evt.Type {
		case ai.EventContentDelta:
			b.WriteString(evt.Text)
			if opts.OnDelta != nil {
				opts.OnDelta(evt.Text)
			}
			if opts.MaxOutputChars > 0 && b.Len() > opts.MaxOutputChars {
				cancel()
				drainAbandoned(events)
				err := fmt.Errorf("response exceeded %d characters", opts.MaxOutputChars)
				log.Error("boost failed: %v", err)
				return Result{Text: promptText, Status: StatusFailed, Err: err}
			}
		case ai.EventError:
			streamErr = evt.Error
		}
	}

	if ctx.Err() != nil {
		log.Warn("boost cancelled: %v", ctx.Err())
		return Result{Text: promptText, Status: StatusCancelled, Err: ctx.Err()}
	}

	if streamErr != nil {
		log.Error("boost failed: %v", streamErr)
		return Result{Text: promptText, Status: StatusFailed, Err: streamErr}
	}
	if stream.Result() == nil {
		err := errors.New("stream ended without a result")
		log.Error("boost failed: %v", err)
		return Result{Text: promptText, Status: StatusFailed, Err: err}
	}

	enhanced := b.String()
	if strings.TrimSpace(enhanced) == "" {
		log.Error("boost failed: %v", errEmptyResponse)
		return Result{Text: promptText, Status: StatusFailed, Err: errEmptyResponse}
	}

	log.Info("boost: enhanced %d -> %d chars", len(promptText), len(enhanced))
	return Result{Text: enhanced, Status: StatusSuccess}
}

// drainAbandoned consumes the rest of an abandoned event channel so the
// stream's forwarding goroutine can exit once the producer finishes.
func drainAbandoned(events <-chan ai.StreamEvent) {
	go func() {
		for range events {
		}
	}()
}
