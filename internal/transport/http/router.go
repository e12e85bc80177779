package http

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"aptitude-quiz-service/internal/auth"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// NewRouter mounts the health check, the REST API and the quiz socket.
// Everything under /api requires a session token.
func NewRouter(api *API, socket *QuizSocket) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(authenticate(api.sessions))
	protected.HandleFunc("/questions", api.ListQuestions).Methods(http.MethodGet)
	protected.HandleFunc("/answers", api.SubmitAnswers).Methods(http.MethodPost)
	protected.HandleFunc("/report", api.Report).Methods(http.MethodGet)
	protected.HandleFunc("/profile", api.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", api.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/session/refresh", api.RefreshSession).Methods(http.MethodPost)
	protected.HandleFunc("/session", api.SignOut).Methods(http.MethodDelete)
	protected.HandleFunc("/quiz/ws", socket.ServeWS).Methods(http.MethodGet)
	return r
}

// bearerToken reads the Authorization header, falling back to the access_token
// query parameter since browsers cannot set headers on websocket upgrades.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("access_token")
}

func authenticate(sessions *auth.Provider) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := sessions.Authenticate(r.Context(), bearerToken(r))
			if err != nil {
				writeError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Hijack keeps websocket upgrades working behind the logger.
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	s.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
