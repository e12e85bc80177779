package http

import (
	"encoding/json"
	"net/http"
	"time"

	"aptitude-quiz-service/internal/app"
	"aptitude-quiz-service/internal/auth"
	"aptitude-quiz-service/internal/domain"
)

// API serves the REST surface of the quiz service.
type API struct {
	quiz     *app.QuizService
	reports  *app.ReportService
	profiles *app.ProfileService
	sessions *auth.Provider
}

func NewAPI(quiz *app.QuizService, reports *app.ReportService, profiles *app.ProfileService, sessions *auth.Provider) *API {
	return &API{quiz: quiz, reports: reports, profiles: profiles, sessions: sessions}
}

func (a *API) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := a.quiz.LoadQuestions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	views, err := toQuestionViews(questions)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questionsResponse{Questions: views, Empty: len(views) == 0})
}

func (a *API) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.Invalid("malformed request body"))
		return
	}
	answers, err := a.quiz.SubmitSelections(r.Context(), session.UserID, req.Selections)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, submitResponse{Recorded: len(answers)})
}

func (a *API) Report(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())
	report, ok, err := a.reports.Report(r.Context(), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportView(report, ok))
}

func (a *API) GetProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())
	profile, err := a.profiles.GetOrCreateProfile(r.Context(), session.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileView(profile))
}

func (a *API) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())
	var update domain.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, r, domain.Invalid("malformed request body"))
		return
	}
	profile, err := a.profiles.UpdateProfile(r.Context(), session.UserID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileView(profile))
}

func (a *API) RefreshSession(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())
	token, next, err := a.sessions.Refresh(r.Context(), session)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: next.ExpiresAt.UTC().Format(time.RFC3339)})
}

func (a *API) SignOut(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())
	if err := a.sessions.SignOut(r.Context(), session); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
