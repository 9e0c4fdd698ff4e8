// Package terminal is a line-oriented display layer for playing a quiz in a shell.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"quiz-presenter/internal/domain"
)

// Controls is the subset of a presenter session the terminal drives.
type Controls interface {
	StartQuiz() error
	SelectOption(optionIndex int) error
	Restart() error
	ReturnToLanding() error
}

// Display renders snapshots as text. Repeated countdown ticks print only the time left.
type Display struct {
	mu       sync.Mutex
	out      io.Writer
	last     domain.Snapshot
	rendered bool
}

func NewDisplay(out io.Writer) *Display {
	return &Display{out: out}
}

// Render writes s. It is safe to use as an app.Renderer.
func (d *Display) Render(s domain.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	countdownOnly := d.rendered &&
		s.Page == domain.PageQuiz && d.last.Page == domain.PageQuiz &&
		s.QuestionIndex == d.last.QuestionIndex &&
		s.Feedback == domain.FeedbackNone && d.last.Feedback == domain.FeedbackNone
	d.last = s
	d.rendered = true

	switch {
	case countdownOnly:
		fmt.Fprintf(d.out, "Time left: %d seconds\n", s.RemainingTime)
	case s.Page == domain.PageLanding:
		fmt.Fprintln(d.out, "Welcome to the Quiz")
		fmt.Fprintln(d.out, "Type s to start, q to quit.")
	case s.Page == domain.PageQuiz:
		d.renderQuestion(s)
	case s.Page == domain.PageResult:
		fmt.Fprintln(d.out, "Quiz Completed")
		if s.Summary != nil {
			fmt.Fprintf(d.out, "Your Score: %d / %d (%d%%)\n", s.Summary.Score, s.Summary.Total, s.Summary.Percent)
		}
		fmt.Fprintln(d.out, "Type r to restart, h for the welcome screen, q to quit.")
	}
}

// Report writes a rejected command. It shares the render lock so it never splits a screen.
func (d *Display) Report(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, "! %v\n", err)
}

func (d *Display) renderQuestion(s domain.Snapshot) {
	if s.Question == nil {
		return
	}
	if s.Feedback != domain.FeedbackNone {
		fmt.Fprintln(d.out, feedbackLine(s))
		return
	}
	fmt.Fprintf(d.out, "\nQuestion %d of %d\n", s.QuestionIndex+1, s.QuestionCount)
	fmt.Fprintln(d.out, s.Question.Prompt)
	for i, option := range s.Question.Options {
		fmt.Fprintf(d.out, "  %d) %s\n", i+1, option)
	}
	fmt.Fprintf(d.out, "Time left: %d seconds\n", s.RemainingTime)
}

func feedbackLine(s domain.Snapshot) string {
	answer := ""
	if s.CorrectOptionIndex != nil && *s.CorrectOptionIndex < len(s.Question.Options) {
		answer = fmt.Sprintf("%d) %s", *s.CorrectOptionIndex+1, s.Question.Options[*s.CorrectOptionIndex])
	}
	switch s.Feedback {
	case domain.FeedbackCorrect:
		return "Correct!"
	case domain.FeedbackIncorrect:
		return "Wrong, the answer was " + answer
	case domain.FeedbackTimeout:
		return "Time's up! The answer was " + answer
	}
	return ""
}

// Run reads commands from in until q, end of input, or ctx is done.
// Errors go to display, which the controller renders to from its own goroutine.
func Run(ctx context.Context, in io.Reader, controls Controls, display *Display) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			quit, err := handle(controls, strings.TrimSpace(line))
			if err != nil {
				display.Report(err)
			}
			if quit {
				return nil
			}
		}
	}
}

func handle(controls Controls, cmd string) (bool, error) {
	switch strings.ToLower(cmd) {
	case "":
		return false, nil
	case "q", "quit":
		return true, nil
	case "s", "start":
		return false, controls.StartQuiz()
	case "r", "restart":
		return false, controls.Restart()
	case "h", "home":
		return false, controls.ReturnToLanding()
	}
	n, err := strconv.Atoi(cmd)
	if err != nil {
		return false, fmt.Errorf("unknown command %q", cmd)
	}
	// options are shown starting at 1
	return false, controls.SelectOption(n - 1)
}
