package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"quizbot/internal/runner"
)

// Controller runs the live UI and implements runner.RunObserver.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_ = program.Start()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the UI has exited.
func (c *Controller) Wait() {
	if c == nil {
		return
	}
	<-c.done
}

// OnRunStart forwards run start events to the UI.
func (c *Controller) OnRunStart(runID string, site string) {
	c.send(Event{Kind: EventRunStart, RunID: runID, Site: site})
}

// OnQuizStart forwards quiz start events to the UI.
func (c *Controller) OnQuizStart(quizName string, path string, cachedAnswers int) {
	c.send(Event{
		Kind:          EventQuizStart,
		QuizName:      quizName,
		QuizPath:      path,
		CachedAnswers: cachedAnswers,
	})
}

// OnQuestionEvent forwards question status updates to the UI.
func (c *Controller) OnQuestionEvent(event runner.QuestionEvent) {
	c.send(Event{Kind: EventQuestion, Question: event})
}

// OnClaimEvent forwards reward-claim updates to the UI.
func (c *Controller) OnClaimEvent(event runner.ClaimEvent) {
	c.send(Event{Kind: EventClaim, Claim: event})
}

// OnQuizEnd forwards quiz completion events to the UI.
func (c *Controller) OnQuizEnd(quizName string, status string, reason *string) {
	c.send(Event{Kind: EventQuizEnd, QuizName: quizName, QuizStatus: status, QuizReason: reason})
}

// OnRunEnd forwards run completion events to the UI and closes it.
func (c *Controller) OnRunEnd(results runner.Results) {
	c.send(Event{Kind: EventRunEnd})
	c.Close()
}

// send enqueues an event without blocking the caller.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}
