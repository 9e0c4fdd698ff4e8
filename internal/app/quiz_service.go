package app

import (
	"context"
	"fmt"

	"quiz-presenter/internal/clock"
	"quiz-presenter/internal/domain"
)

// SessionRepository abstracts where live presenter sessions are tracked (in-memory, Redis, etc).
type SessionRepository interface {
	// Add stores the controller unless the ID is taken; it reports whether it was stored.
	Add(sessionID string, controller *Controller) bool
	Get(sessionID string) (*Controller, bool)
	Delete(sessionID string)
}

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// QuizService opens and closes presenter sessions for display layers.
type QuizService struct {
	sessions SessionRepository
	quizzes  QuizRepository
	clock    clock.Clock
	settings Settings
}

func NewQuizService(store SessionRepository, quizzes QuizRepository, clk clock.Clock, settings Settings) *QuizService {
	if clk == nil {
		clk = clock.Real()
	}
	return &QuizService{sessions: store, quizzes: quizzes, clock: clk, settings: settings}
}

// Open creates a controller for quizID on the landing page and registers it under sessionID.
func (s *QuizService) Open(ctx context.Context, sessionID, quizID string, render Renderer) (*Controller, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	controller, err := NewController(quiz, s.settings, s.clock, render)
	if err != nil {
		return nil, fmt.Errorf("open session %s: %w", sessionID, err)
	}
	if !s.sessions.Add(sessionID, controller) {
		controller.Close()
		return nil, domain.ErrSessionExists
	}
	return controller, nil
}

// Session returns the controller registered under sessionID.
func (s *QuizService) Session(sessionID string) (*Controller, error) {
	controller, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return controller, nil
}

// Close stops the session's timers and forgets it.
func (s *QuizService) Close(_ context.Context, sessionID string) {
	controller, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	controller.Close()
	s.sessions.Delete(sessionID)
}

// Quiz returns quiz content for read-only display.
func (s *QuizService) Quiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	return s.quizzes.GetQuiz(ctx, quizID)
}

type toucher interface {
	Touch(ctx context.Context, sessionID string) error
}

// Touch refreshes the session's liveness when the store tracks it.
func (s *QuizService) Touch(ctx context.Context, sessionID string) error {
	if t, ok := s.sessions.(toucher); ok {
		return t.Touch(ctx, sessionID)
	}
	return nil
}
