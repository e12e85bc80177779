package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"aptitude-quiz-service/internal/app"
	"aptitude-quiz-service/internal/auth"
	"aptitude-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const emptyQuizMessage = "No questions available."

// QuizSocket runs one quiz attempt per websocket connection.
type QuizSocket struct {
	quiz     *app.QuizService
	reports  *app.ReportService
	sessions *auth.Provider
	upgrader websocket.Upgrader
}

func NewQuizSocket(quiz *app.QuizService, reports *app.ReportService, sessions *auth.Provider) *QuizSocket {
	return &QuizSocket{
		quiz:     quiz,
		reports:  reports,
		sessions: sessions,
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

type selectPayload struct {
	QuestionID int64  `json:"questionId"`
	Option     string `json:"option"`
}

type advancePayload struct {
	Direction int `json:"direction"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type statePayload struct {
	Index    int          `json:"index"`
	Total    int          `json:"total"`
	IsLast   bool         `json:"isLast"`
	Question questionView `json:"question"`
	Selected string       `json:"selected,omitempty"`
	Answered int          `json:"answered"`
}

func stateOf(attempt *app.Attempt) outboundMessage[any] {
	current, _ := attempt.Current()
	selected, _ := attempt.Selected(current.ID)
	return outboundMessage[any]{Type: "state", Payload: statePayload{
		Index:    attempt.Index(),
		Total:    attempt.Len(),
		IsLast:   attempt.IsLast(),
		Question: toQuestionView(current),
		Selected: selected,
		Answered: len(attempt.Selections()),
	}}
}

func errorMessage(err error) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
}

// ServeWS upgrades an authenticated request and drives a quiz attempt over it.
// The socket is closed with a sessionEnded message when the user signs out.
func (h *QuizSocket) ServeWS(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.ErrUnauthenticated)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	ctx := r.Context()
	attempt, err := h.quiz.StartAttempt(ctx)
	if err != nil {
		_ = conn.WriteJSON(errorMessage(err))
		return
	}
	if attempt.Empty() {
		_ = conn.WriteJSON(outboundMessage[any]{Type: "empty", Payload: errorPayload{Message: emptyQuizMessage}})
		return
	}

	ended := make(chan struct{})
	var endOnce sync.Once
	unsubscribe := h.sessions.OnSessionChange(func(ev auth.SessionEvent) {
		if ev.Kind == auth.SignedOut && ev.Session.UserID == session.UserID {
			endOnce.Do(func() { close(ended) })
		}
	})
	defer unsubscribe()

	send := make(chan outboundMessage[any], 16)
	readerDone := make(chan struct{})
	writerDone := make(chan struct{})
	watcherDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		failed := false
		// keep draining after a failed write so senders never block
		for msg := range send {
			if failed {
				continue
			}
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug().Err(err).Str("user", session.UserID).Msg("ws write failed")
				failed = true
			}
		}
	}()

	go func() {
		defer close(watcherDone)
		select {
		case <-ended:
			send <- outboundMessage[any]{Type: "sessionEnded", Payload: errorPayload{Message: "signed out"}}
			// unblocks ReadJSON in the loop below
			_ = conn.SetReadDeadline(time.Now())
		case <-readerDone:
		}
	}()

	send <- stateOf(attempt)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage(domain.Invalid("invalid select payload"))
				continue
			}
			if err := attempt.Select(payload.QuestionID, payload.Option); err != nil {
				send <- errorMessage(err)
				continue
			}
			send <- stateOf(attempt)
		case "advance":
			var payload advancePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- errorMessage(domain.Invalid("invalid advance payload"))
				continue
			}
			attempt.Advance(payload.Direction)
			send <- stateOf(attempt)
		case "submit":
			answers, err := h.quiz.Submit(ctx, session.UserID, attempt)
			if err != nil {
				log.Error().Err(err).Str("user", session.UserID).Msg("submit failed")
				send <- errorMessage(err)
				continue
			}
			send <- outboundMessage[any]{Type: "submitted", Payload: submitResponse{Recorded: len(answers)}}
			report, ok, err := h.reports.Report(ctx, session.UserID)
			if err != nil {
				send <- errorMessage(err)
				continue
			}
			send <- outboundMessage[any]{Type: "report", Payload: toReportView(report, ok)}
		default:
			send <- errorMessage(domain.Invalid("unsupported message type %q", inbound.Type))
		}
	}

	close(readerDone)
	<-watcherDone
	close(send)
	<-writerDone
}
