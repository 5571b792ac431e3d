package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"quiz-studio/internal/app"
	"quiz-studio/internal/domain"
)

// WSHandler plays one quiz session per websocket connection. The session is
// dropped when the connection closes.
type WSHandler struct {
	service  *app.QuizService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, log *zap.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the play use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	if quizID == "" {
		http.Error(w, "missing quizId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	session, err := h.service.StartSession(r.Context(), quizID)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, domain.ErrQuizNotFound) {
			msg = "Quiz not found"
		}
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: msg}})
		return
	}
	sessionID := session.ID()
	defer h.service.EndSession(sessionID)

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("ws write error", zap.Error(err))
				return
			}
		}
	}()

	if deliver(send, writerDone, outboundMessage[any]{Type: "state", Payload: session.State()}) {
	readLoop:
		for {
			var inbound inboundMessage
			if err := conn.ReadJSON(&inbound); err != nil {
				break
			}
			for _, msg := range h.handle(sessionID, inbound) {
				if !deliver(send, writerDone, msg) {
					break readLoop
				}
			}
		}
	}

	close(send)
	<-writerDone
}

// deliver queues msg for the writer, giving up once the writer has stopped.
func deliver(send chan<- outboundMessage[any], writerDone <-chan struct{}, msg outboundMessage[any]) bool {
	select {
	case send <- msg:
		return true
	case <-writerDone:
		return false
	}
}

func (h *WSHandler) handle(sessionID string, inbound inboundMessage) []outboundMessage[any] {
	fail := func(err error) []outboundMessage[any] {
		return []outboundMessage[any]{{Type: "error", Payload: errorPayload{Message: err.Error()}}}
	}

	switch inbound.Type {
	case "select":
		var payload selectRequest
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.AnswerID == "" {
			return []outboundMessage[any]{{Type: "error", Payload: errorPayload{Message: "invalid select payload"}}}
		}
		state, err := h.service.SelectAnswer(sessionID, payload.AnswerID)
		if err != nil {
			return fail(err)
		}
		return []outboundMessage[any]{{Type: "state", Payload: state}}
	case "submit":
		result, state, err := h.service.SubmitAnswer(sessionID)
		if err != nil {
			return fail(err)
		}
		return []outboundMessage[any]{{Type: "feedback", Payload: submitResponse{Result: result, State: state}}}
	case "next":
		state, err := h.service.NextQuestion(sessionID)
		if err != nil {
			return fail(err)
		}
		out := []outboundMessage[any]{{Type: "state", Payload: state}}
		if state.Complete {
			summary, err := h.service.Summary(sessionID)
			if err != nil {
				return fail(err)
			}
			out = append(out, outboundMessage[any]{Type: "summary", Payload: summary})
		}
		return out
	case "reset":
		state, err := h.service.ResetSession(sessionID)
		if err != nil {
			return fail(err)
		}
		return []outboundMessage[any]{{Type: "state", Payload: state}}
	default:
		return []outboundMessage[any]{{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}}
	}
}
