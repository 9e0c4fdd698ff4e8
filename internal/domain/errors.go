package domain

import "errors"

var (
	// ErrInvalidOperation is returned when an operation is called outside its precondition,
	// e.g. selecting while feedback is showing or after the quiz has ended.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrInvalidIndex indicates an option index out of range for the current question.
	ErrInvalidIndex = errors.New("option index out of range")
	// ErrInvalidQuiz indicates quiz content that cannot be presented.
	ErrInvalidQuiz = errors.New("invalid quiz")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrSessionNotFound is returned when a presenter session has not been opened.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionExists is returned when opening a session under an ID already in use.
	ErrSessionExists = errors.New("quiz session already exists")
)
