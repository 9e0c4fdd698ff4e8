package app

import (
	"sync"
	"time"

	"quiz-presenter/internal/clock"
	"quiz-presenter/internal/domain"
)

// Settings controls countdown and feedback pacing.
type Settings struct {
	TotalTimeSeconds int
	TickInterval     time.Duration
	// A zero dwell advances immediately without showing feedback.
	FeedbackDwell time.Duration
	TimeoutDwell  time.Duration
}

// DefaultSettings returns the stock pacing: five one-second ticks per question.
func DefaultSettings() Settings {
	return Settings{
		TotalTimeSeconds: 5,
		TickInterval:     time.Second,
		FeedbackDwell:    700 * time.Millisecond,
		TimeoutDwell:     800 * time.Millisecond,
	}
}

func (s Settings) normalized() Settings {
	if s.TotalTimeSeconds <= 0 {
		s.TotalTimeSeconds = DefaultSettings().TotalTimeSeconds
	}
	if s.TickInterval <= 0 {
		s.TickInterval = DefaultSettings().TickInterval
	}
	if s.FeedbackDwell < 0 {
		s.FeedbackDwell = 0
	}
	if s.TimeoutDwell < 0 {
		s.TimeoutDwell = 0
	}
	return s
}

// Renderer receives a snapshot after every state change. It is called while the
// controller is serialized and must not call back into the controller.
type Renderer func(domain.Snapshot)

type timerKind int

const (
	timerTick timerKind = iota
	timerDwell
)

const noSelection = -1

// Controller drives one presenter run: countdown, selection, feedback, advance and scoring.
type Controller struct {
	quiz     domain.Quiz
	settings Settings
	clock    clock.Clock
	render   Renderer

	mu           sync.Mutex
	closed       bool
	page         domain.Page
	index        int
	answers      map[int]int
	remaining    int
	feedback     domain.Feedback
	lastSelected int
	// timer is the single pending tick or dwell callback; generation invalidates stale ones.
	timer      clock.Timer
	generation uint64
}

// NewController validates the quiz and returns a controller on the landing page.
func NewController(quiz domain.Quiz, settings Settings, clk clock.Clock, render Renderer) (*Controller, error) {
	if err := quiz.Validate(); err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.Real()
	}
	if render == nil {
		render = func(domain.Snapshot) {}
	}
	quiz.Questions = append([]domain.Question(nil), quiz.Questions...)

	c := &Controller{
		quiz:     quiz,
		settings: settings.normalized(),
		clock:    clk,
		render:   render,
	}
	c.resetLocked(domain.PageLanding)
	return c, nil
}

// StartQuiz begins a fresh run from the first question. Any pending timer is discarded.
func (c *Controller) StartQuiz() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrInvalidOperation
	}
	c.startLocked()
	c.renderLocked()
	return nil
}

// Restart starts a new run from the result page.
func (c *Controller) Restart() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.page != domain.PageResult {
		return domain.ErrInvalidOperation
	}
	c.startLocked()
	c.renderLocked()
	return nil
}

// ReturnToLanding discards the current run and shows the landing page.
func (c *Controller) ReturnToLanding() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return domain.ErrInvalidOperation
	}
	c.stopTimerLocked()
	c.resetLocked(domain.PageLanding)
	c.renderLocked()
	return nil
}

// Tick applies one countdown step. Ticks are ignored while feedback is showing.
func (c *Controller) Tick() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.page != domain.PageQuiz {
		return domain.ErrInvalidOperation
	}
	if c.feedback != domain.FeedbackNone {
		return nil
	}
	c.tickLocked()
	c.renderLocked()
	return nil
}

// SelectOption records an answer for the current question and shows feedback.
func (c *Controller) SelectOption(optionIndex int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.page != domain.PageQuiz || c.feedback != domain.FeedbackNone {
		return domain.ErrInvalidOperation
	}
	question := c.quiz.Questions[c.index]
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return domain.ErrInvalidIndex
	}

	c.answers[c.index] = optionIndex
	c.lastSelected = optionIndex
	if optionIndex == question.CorrectOptionIndex {
		c.feedback = domain.FeedbackCorrect
	} else {
		c.feedback = domain.FeedbackIncorrect
	}
	c.scheduleAdvanceLocked(c.settings.FeedbackDwell)
	c.renderLocked()
	return nil
}

// Score counts correctly answered questions so far.
func (c *Controller) Score() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Score(c.quiz.Questions, c.answers)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close cancels pending timers. No operation succeeds and nothing is rendered afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopTimerLocked()
}

// Score counts the questions whose recorded answer matches the correct option.
// Unanswered questions never count.
func Score(questions []domain.Question, answers map[int]int) int {
	score := 0
	for i, question := range questions {
		if selected, ok := answers[i]; ok && selected == question.CorrectOptionIndex {
			score++
		}
	}
	return score
}

func (c *Controller) startLocked() {
	c.stopTimerLocked()
	c.resetLocked(domain.PageQuiz)
	c.armLocked(timerTick, c.settings.TickInterval)
}

func (c *Controller) resetLocked(page domain.Page) {
	c.page = page
	c.index = 0
	c.answers = make(map[int]int)
	c.remaining = c.settings.TotalTimeSeconds
	c.feedback = domain.FeedbackNone
	c.lastSelected = noSelection
}

func (c *Controller) tickLocked() {
	c.remaining--
	if c.remaining > 0 {
		c.armLocked(timerTick, c.settings.TickInterval)
		return
	}
	c.remaining = 0
	c.feedback = domain.FeedbackTimeout
	c.lastSelected = noSelection
	c.scheduleAdvanceLocked(c.settings.TimeoutDwell)
}

func (c *Controller) scheduleAdvanceLocked(dwell time.Duration) {
	if dwell <= 0 {
		c.stopTimerLocked()
		c.advanceLocked()
		return
	}
	c.armLocked(timerDwell, dwell)
}

func (c *Controller) advanceLocked() {
	c.feedback = domain.FeedbackNone
	c.lastSelected = noSelection
	if c.index < len(c.quiz.Questions)-1 {
		c.index++
		c.remaining = c.settings.TotalTimeSeconds
		c.armLocked(timerTick, c.settings.TickInterval)
		return
	}
	c.stopTimerLocked()
	c.page = domain.PageResult
}

func (c *Controller) armLocked(kind timerKind, d time.Duration) {
	c.stopTimerLocked()
	generation := c.generation
	c.timer = c.clock.AfterFunc(d, func() {
		c.fire(generation, kind)
	})
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
}

func (c *Controller) fire(generation uint64, kind timerKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || generation != c.generation {
		return
	}
	c.timer = nil

	switch kind {
	case timerTick:
		if c.page != domain.PageQuiz || c.feedback != domain.FeedbackNone {
			return
		}
		c.tickLocked()
	case timerDwell:
		if c.page != domain.PageQuiz || c.feedback == domain.FeedbackNone {
			return
		}
		c.advanceLocked()
	}
	c.renderLocked()
}

func (c *Controller) renderLocked() {
	c.render(c.snapshotLocked())
}

func (c *Controller) snapshotLocked() domain.Snapshot {
	answers := make(map[int]int, len(c.answers))
	for k, v := range c.answers {
		answers[k] = v
	}
	snap := domain.Snapshot{
		QuizID:          c.quiz.ID,
		Page:            c.page,
		QuestionIndex:   c.index,
		QuestionCount:   len(c.quiz.Questions),
		SelectedAnswers: answers,
		RemainingTime:   c.remaining,
		Feedback:        c.feedback,
	}

	switch c.page {
	case domain.PageQuiz:
		question := c.quiz.Questions[c.index]
		view := question.View()
		snap.Question = &view
		if c.feedback != domain.FeedbackNone {
			correct := question.CorrectOptionIndex
			snap.CorrectOptionIndex = &correct
		}
		if c.lastSelected != noSelection {
			selected := c.lastSelected
			snap.LastSelectedIndex = &selected
		}
	case domain.PageResult:
		summary := domain.NewSummary(Score(c.quiz.Questions, c.answers), len(c.quiz.Questions))
		snap.Summary = &summary
	}
	return snap
}
