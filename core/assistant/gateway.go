package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Maar1i/Asistente-Escolar-APP/core"
	"github.com/Maar1i/Asistente-Escolar-APP/core/account"
	"github.com/Maar1i/Asistente-Escolar-APP/core/event"
	"github.com/Maar1i/Asistente-Escolar-APP/core/note"
	"github.com/Maar1i/Asistente-Escolar-APP/core/task"
)

const (
	// SystemInstruction is sent along with every grounded prompt.
	SystemInstruction = "Eres un asistente escolar que responde en español de manera clara y directa."

	errorPrefix = "An error occurred with the AI: "
	eventLayout = "02/01/2006"
)

var ErrNotConfigured = errors.New("completion service is not configured")

type (
	// Request is what gets sent to a completion service.
	Request struct {
		System string
		Prompt string
	}

	// Completer is a hosted completion service.
	Completer interface {
		Complete(ctx context.Context, req Request) (string, error)
	}

	Question struct {
		Question string `form:"question" validate:"notblank"`
	}

	Gateway interface {
		// Ask answers question with the account's pending tasks, events and notes as context.
		Ask(ctx context.Context, acc account.Account, question string) (string, error)
		// AskDirect forwards question as is and returns the answer verbatim.
		AskDirect(ctx context.Context, acc account.Account, question string) string
	}

	Deps struct {
		Tasks    task.Service
		Events   event.Service
		Notes    note.Service
		Grounded Completer
		Direct   Completer
		Timeout  time.Duration
		Logger   core.Logger
	}

	gateway struct {
		Deps
	}
)

var _ Gateway = (*gateway)(nil)

func (q *Question) Validate(validate *validator.Validate) error {
	q.Question = core.CleanString(q.Question)
	return validate.Struct(q)
}

func NewGateway(deps Deps) Gateway {
	return &gateway{Deps: deps}
}

func (gw *gateway) Ask(ctx context.Context, acc account.Account, question string) (string, error) {
	tasks, err := gw.Tasks.ListPending(ctx, acc.ID)
	if err != nil {
		return "", errors.Wrap(err, "listing pending tasks")
	}
	events, err := gw.Events.List(ctx, acc.ID)
	if err != nil {
		return "", errors.Wrap(err, "listing events")
	}
	notes, err := gw.Notes.List(ctx, acc.ID)
	if err != nil {
		return "", errors.Wrap(err, "listing notes")
	}

	prompt := BuildPrompt(BuildContext(acc, tasks, events, notes), question)
	answer := gw.complete(ctx, acc, gw.Grounded, Request{System: SystemInstruction, Prompt: prompt})
	return strings.TrimSpace(answer), nil
}

func (gw *gateway) AskDirect(ctx context.Context, acc account.Account, question string) string {
	return gw.complete(ctx, acc, gw.Direct, Request{Prompt: question})
}

// complete never fails: errors are turned into the answer text.
func (gw *gateway) complete(ctx context.Context, acc account.Account, c Completer, req Request) string {
	if c == nil {
		return errorPrefix + ErrNotConfigured.Error()
	}
	if gw.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gw.Timeout)
		defer cancel()
	}

	answer, err := c.Complete(ctx, req)
	if err != nil {
		if gw.Logger != nil {
			gw.Logger.Warn(fmt.Sprintf("completion failed: %v", err), err, acc)
		}
		return errorPrefix + err.Error()
	}
	return answer
}

// BuildContext renders what the assistant knows about the account.
func BuildContext(acc account.Account, tasks []task.Task, events []event.Event, notes []note.Note) string {
	titles := make([]string, 0, len(tasks))
	for _, t := range tasks {
		titles = append(titles, t.Title)
	}
	evts := make([]string, 0, len(events))
	for _, e := range events {
		evts = append(evts, e.Title+" on "+e.Date.Format(eventLayout))
	}
	contents := make([]string, 0, len(notes))
	for _, n := range notes {
		contents = append(contents, n.Content)
	}

	b := new(strings.Builder)
	_, _ = fmt.Fprintf(b, "User: %s\n", acc.DisplayName())
	_, _ = fmt.Fprintf(b, "Pending tasks:\n%s\n\n", strings.Join(titles, ", "))
	_, _ = fmt.Fprintf(b, "Events:\n%s\n\n", strings.Join(evts, ", "))
	_, _ = fmt.Fprintf(b, "Notes:\n%s\n", strings.Join(contents, ", "))
	return b.String()
}

// BuildPrompt appends the literal question to the context block.
func BuildPrompt(context, question string) string {
	return "CONTEXT:\n" + context + "\nUSER QUESTION:\n" + question + "\n\nANSWER:\n"
}
