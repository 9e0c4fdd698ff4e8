// Package catalog holds the fixed question set shown by the presenter.
package catalog

import "quiz-presenter/internal/domain"

// DefaultQuizID identifies the built-in quiz.
const DefaultQuizID = "default"

// Default returns a fresh copy of the built-in quiz.
func Default() domain.Quiz {
	return domain.Quiz{
		ID: DefaultQuizID,
		Questions: []domain.Question{
			{
				ID:                 "1",
				Prompt:             "What is the capital of India?",
				Options:            []string{"Mumbai", "Delhi", "Chennai", "Kolkata"},
				CorrectOptionIndex: 1,
			},
			{
				ID:                 "2",
				Prompt:             "Which language runs in a web browser?",
				Options:            []string{"Java", "C", "Python", "JavaScript"},
				CorrectOptionIndex: 3,
			},
			{
				ID:     "3",
				Prompt: "What does CSS stand for?",
				Options: []string{
					"Computer Style Sheets",
					"Cascading Style Sheets",
					"Creative Style System",
					"Colorful Style Sheets",
				},
				CorrectOptionIndex: 1,
			},
			{
				ID:                 "4",
				Prompt:             "Which company developed React?",
				Options:            []string{"Google", "Facebook", "Amazon", "Microsoft"},
				CorrectOptionIndex: 1,
			},
			{
				ID:                 "5",
				Prompt:             "Which HTML tag is used for JavaScript?",
				Options:            []string{"<js>", "<javascript>", "<script>", "<code>"},
				CorrectOptionIndex: 2,
			},
			{
				ID:                 "6",
				Prompt:             "Which hook is used for state in React?",
				Options:            []string{"useEffect", "useState", "useRef", "useMemo"},
				CorrectOptionIndex: 1,
			},
			{
				ID:                 "7",
				Prompt:             "What is 2 + 2?",
				Options:            []string{"3", "4", "5", "6"},
				CorrectOptionIndex: 1,
			},
			{
				ID:     "8",
				Prompt: "Which command creates a React app?",
				Options: []string{
					"npm create-react-app",
					"npm start",
					"npm install react",
					"npm build react",
				},
				CorrectOptionIndex: 0,
			},
		},
	}
}

// Quizzes returns the catalog keyed by quiz ID, ready for a static loader.
func Quizzes() map[string]domain.Quiz {
	quiz := Default()
	return map[string]domain.Quiz{quiz.ID: quiz}
}
