package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"quiz-presenter/internal/app"
	"quiz-presenter/internal/domain"
)

var (
	errInvalidSelectPayload = errors.New("invalid select payload")
	errUnsupportedMessage   = errors.New("unsupported message type")
)

type quizResponse struct {
	ID        string                `json:"id"`
	Questions []domain.QuestionView `json:"questions"`
}

// NewRouter wires health, quiz and websocket endpoints.
func NewRouter(service *app.QuizService, ws *WSHandler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)
	r.Get("/api/quizzes/{quizID}", quizHandler(service))
	return r
}

func quizHandler(service *app.QuizService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quiz, err := service.Quiz(r.Context(), chi.URLParam(r, "quizID"))
		if errors.Is(err, domain.ErrQuizNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("load quiz failed: %v", err)
			http.Error(w, "failed to load quiz", http.StatusInternalServerError)
			return
		}

		resp := quizResponse{ID: quiz.ID, Questions: make([]domain.QuestionView, 0, len(quiz.Questions))}
		for _, q := range quiz.Questions {
			resp.Questions = append(resp.Questions, q.View())
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.Printf("encode quiz failed: %v", err)
		}
	}
}
