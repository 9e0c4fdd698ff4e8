package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"quiz-presenter/internal/app"
	"quiz-presenter/internal/domain"
)

// WSOptions configures a WSHandler.
type WSOptions struct {
	DefaultQuizID string
	// AllowedOrigins restricts browser handshakes. Empty falls back to a same-origin check.
	AllowedOrigins []string
	// Keepalive refreshes session liveness while a client is idle; zero disables it.
	Keepalive time.Duration
}

// WSHandler is a websocket display layer: it pushes snapshots and forwards user actions.
type WSHandler struct {
	service       *app.QuizService
	defaultQuizID string
	keepalive     time.Duration
	upgrader      websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, opts WSOptions) *WSHandler {
	return &WSHandler{
		service:       service,
		defaultQuizID: opts.DefaultQuizID,
		keepalive:     opts.Keepalive,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(opts.AllowedOrigins),
		},
	}
}

// originChecker accepts non-browser clients (no Origin header) and the listed origins.
// A nil result leaves gorilla's same-origin check in place.
func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	OptionIndex *int `json:"optionIndex"`
}

type sessionPayload struct {
	SessionID string `json:"sessionId"`
	QuizID    string `json:"quizId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and binds each connection to its own session.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	if quizID == "" {
		quizID = h.defaultQuizID
	}
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates := make(chan domain.Snapshot, 8)
	controller, err := h.service.Open(r.Context(), sessionID, quizID, func(s domain.Snapshot) {
		pushLatest(updates, s)
	})
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})
	keepaliveDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				// keep draining so producers never block on a dead connection
				for range send {
				}
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update := <-updates:
				select {
				case send <- outboundMessage[any]{Type: "state", Payload: update}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	go func() {
		defer close(keepaliveDone)
		if h.keepalive <= 0 {
			return
		}
		ticker := time.NewTicker(h.keepalive)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				h.touch(r.Context(), sessionID)
			case <-closeSignals:
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "session", Payload: sessionPayload{SessionID: sessionID, QuizID: quizID}}
	send <- outboundMessage[any]{Type: "state", Payload: controller.Snapshot()}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.touch(r.Context(), sessionID)
		if err := dispatch(controller, inbound); err != nil {
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		}
	}

	// Close first so no render races the shutdown of the forwarding goroutines.
	h.service.Close(context.Background(), sessionID)
	close(closeSignals)
	<-keepaliveDone
	<-updatesDone
	close(send)
	<-writerDone
}

func (h *WSHandler) touch(ctx context.Context, sessionID string) {
	if err := h.service.Touch(ctx, sessionID); err != nil {
		log.Printf("session %s touch failed: %v", sessionID, err)
	}
}

func dispatch(controller *app.Controller, inbound inboundMessage) error {
	switch inbound.Type {
	case "start":
		return controller.StartQuiz()
	case "select":
		var payload selectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.OptionIndex == nil {
			return errInvalidSelectPayload
		}
		return controller.SelectOption(*payload.OptionIndex)
	case "restart":
		return controller.Restart()
	case "home":
		return controller.ReturnToLanding()
	default:
		return errUnsupportedMessage
	}
}

// pushLatest delivers s, dropping the oldest queued snapshot when the client is slow.
// Every snapshot is a full state, so only the newest matters.
func pushLatest(ch chan domain.Snapshot, s domain.Snapshot) {
	select {
	case ch <- s:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}
