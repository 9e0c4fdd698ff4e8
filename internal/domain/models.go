package domain

import "fmt"

// Page is the screen the presenter is currently showing.
type Page string

const (
	PageLanding Page = "LANDING"
	PageQuiz    Page = "QUIZ"
	PageResult  Page = "RESULT"
)

// Feedback is the transient outcome of the last action on the current question.
type Feedback string

const (
	FeedbackNone      Feedback = "NONE"
	FeedbackCorrect   Feedback = "CORRECT"
	FeedbackIncorrect Feedback = "INCORRECT"
	FeedbackTimeout   Feedback = "TIMEOUT"
)

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID                 string   `json:"id"`
	Prompt             string   `json:"prompt"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
}

// Quiz is an ordered collection of questions.
type Quiz struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// Validate checks that every question can be answered.
func (q Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: quiz %q has no questions", ErrInvalidQuiz, q.ID)
	}
	for _, question := range q.Questions {
		if len(question.Options) < 2 {
			return fmt.Errorf("%w: question %q needs at least two options", ErrInvalidQuiz, question.ID)
		}
		if question.CorrectOptionIndex < 0 || question.CorrectOptionIndex >= len(question.Options) {
			return fmt.Errorf("%w: question %q has correct option %d out of range", ErrInvalidQuiz, question.ID, question.CorrectOptionIndex)
		}
	}
	return nil
}

// QuestionView is what a display layer may show for a question; it never carries the answer.
type QuestionView struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// View strips the correct option from a question.
func (q Question) View() QuestionView {
	return QuestionView{
		ID:      q.ID,
		Prompt:  q.Prompt,
		Options: append([]string(nil), q.Options...),
	}
}

// Summary is the final score of a finished run.
type Summary struct {
	Score   int `json:"score"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// NewSummary builds a summary; percent is rounded down.
func NewSummary(score, total int) Summary {
	percent := 0
	if total > 0 {
		percent = score * 100 / total
	}
	return Summary{Score: score, Total: total, Percent: percent}
}

// Snapshot is the state handed to the display layer after every change.
// CorrectOptionIndex is only set while feedback is showing; Summary only on the result page.
type Snapshot struct {
	QuizID             string        `json:"quizId"`
	Page               Page          `json:"page"`
	QuestionIndex      int           `json:"questionIndex"`
	QuestionCount      int           `json:"questionCount"`
	Question           *QuestionView `json:"question,omitempty"`
	SelectedAnswers    map[int]int   `json:"selectedAnswers"`
	RemainingTime      int           `json:"remainingTime"`
	Feedback           Feedback      `json:"feedback"`
	LastSelectedIndex  *int          `json:"lastSelectedIndex,omitempty"`
	CorrectOptionIndex *int          `json:"correctOptionIndex,omitempty"`
	Summary            *Summary      `json:"summary,omitempty"`
}
