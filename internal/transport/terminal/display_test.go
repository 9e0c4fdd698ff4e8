package terminal

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"quiz-presenter/internal/app"
	"quiz-presenter/internal/catalog"
	"quiz-presenter/internal/clock"
)

func TestRunPlaysAQuestion(t *testing.T) {
	var out bytes.Buffer
	display := NewDisplay(&out)
	clk := clock.NewFake(time.Unix(0, 0))
	ctrl, err := app.NewController(catalog.Default(), app.DefaultSettings(), clk, display.Render)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}

	if err := Run(context.Background(), strings.NewReader("s\n2\n"), ctrl, display); err != nil {
		t.Fatalf("run: %v", err)
	}
	clk.Advance(700 * time.Millisecond)
	clk.Advance(time.Second)

	text := out.String()
	for _, want := range []string{
		"Question 1 of 8",
		"What is the capital of India?",
		"  2) Delhi",
		"Correct!",
		"Question 2 of 8",
		"Time left: 4 seconds",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, text)
		}
	}
}

func TestRunReportsErrorsAndQuits(t *testing.T) {
	var out bytes.Buffer
	display := NewDisplay(&out)
	ctrl, _ := app.NewController(catalog.Default(), app.DefaultSettings(), clock.NewFake(time.Unix(0, 0)), display.Render)

	input := "1\nwhat\ns\n9\nq\ns\n"
	if err := Run(context.Background(), strings.NewReader(input), ctrl, display); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "! invalid operation") {
		t.Fatalf("expected invalid operation error, got:\n%s", text)
	}
	if !strings.Contains(text, `! unknown command "what"`) {
		t.Fatalf("expected unknown command error, got:\n%s", text)
	}
	if !strings.Contains(text, "! option index out of range") {
		t.Fatalf("expected index error, got:\n%s", text)
	}
	if strings.Count(text, "Question 1 of 8") != 1 {
		t.Fatalf("input after q must be ignored, got:\n%s", text)
	}
}

func TestRenderTimeoutAndResult(t *testing.T) {
	var out bytes.Buffer
	display := NewDisplay(&out)
	clk := clock.NewFake(time.Unix(0, 0))
	settings := app.DefaultSettings()
	ctrl, _ := app.NewController(catalog.Default(), settings, clk, display.Render)

	_ = ctrl.StartQuiz()
	for i := 0; i < 8; i++ {
		clk.Advance(5*time.Second + settings.TimeoutDwell)
	}

	text := out.String()
	if !strings.Contains(text, "Time's up! The answer was 2) Delhi") {
		t.Fatalf("expected timeout feedback, got:\n%s", text)
	}
	if !strings.Contains(text, "Your Score: 0 / 8 (0%)") {
		t.Fatalf("expected result summary, got:\n%s", text)
	}
}

// overlapWriter flags any Write that starts while another is still in progress.
type overlapWriter struct {
	mu       sync.Mutex
	buf      bytes.Buffer
	inFlight atomic.Int32
	overlap  atomic.Bool
}

func (w *overlapWriter) Write(p []byte) (int, error) {
	if w.inFlight.Add(1) > 1 {
		w.overlap.Store(true)
	}
	defer w.inFlight.Add(-1)
	time.Sleep(50 * time.Microsecond)

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *overlapWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestRunErrorsDoNotInterleaveWithRenders(t *testing.T) {
	out := &overlapWriter{}
	display := NewDisplay(out)
	settings := app.Settings{TotalTimeSeconds: 1000, TickInterval: time.Millisecond, FeedbackDwell: time.Millisecond}
	ctrl, err := app.NewController(catalog.Default(), settings, clock.Real(), display.Render)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	if err := ctrl.StartQuiz(); err != nil {
		t.Fatalf("start: %v", err)
	}

	const bad = 200
	input := strings.Repeat("what\n", bad)
	err = Run(context.Background(), strings.NewReader(input), ctrl, display)
	ctrl.Close()
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if out.overlap.Load() {
		t.Fatalf("error output overlapped a render")
	}
	if got := strings.Count(out.String(), `! unknown command "what"`); got != bad {
		t.Fatalf("expected %d error lines, got %d", bad, got)
	}
}
