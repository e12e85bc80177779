package http

import (
	"strconv"

	"aptitude-quiz-service/internal/app"
	"aptitude-quiz-service/internal/domain"
	"github.com/jinzhu/copier"
)

const noResultsMessage = "No quiz results found. Take a quiz first!"

// questionView is a question as shown to a test taker; the correct answer stays server-side.
type questionView struct {
	ID       int64    `json:"id"`
	Question string   `json:"question"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
}

func toQuestionViews(questions []domain.Question) ([]questionView, error) {
	views := make([]questionView, 0, len(questions))
	if err := copier.Copy(&views, &questions); err != nil {
		return nil, err
	}
	return views, nil
}

func toQuestionView(q domain.Question) questionView {
	var view questionView
	_ = copier.Copy(&view, &q)
	return view
}

type questionsResponse struct {
	Questions []questionView `json:"questions"`
	Empty     bool           `json:"empty"`
}

type categoryView struct {
	Category        string  `json:"category"`
	Total           int     `json:"total"`
	Correct         int     `json:"correct"`
	Accuracy        float64 `json:"accuracy"`
	AccuracyDisplay string  `json:"accuracyDisplay"`
}

type reportView struct {
	HasResults     bool                  `json:"hasResults"`
	TotalQuestions int                   `json:"totalQuestions"`
	CorrectAnswers int                   `json:"correctAnswers"`
	Score          float64               `json:"score"`
	ScoreDisplay   string                `json:"scoreDisplay"`
	ByCategory     []categoryView        `json:"byCategory"`
	Details        []domain.AnswerDetail `json:"details"`
}

type noResultsView struct {
	HasResults bool   `json:"hasResults"`
	Message    string `json:"message"`
}

// toReportView renders a report, or the no-results message when ok is false.
func toReportView(report domain.Report, ok bool) any {
	if !ok {
		return noResultsView{HasResults: false, Message: noResultsMessage}
	}
	view := reportView{
		HasResults:     true,
		TotalQuestions: report.TotalQuestions,
		CorrectAnswers: report.CorrectAnswers,
		Score:          report.Score,
		ScoreDisplay:   percent(report.Score, 1),
		Details:        report.Details,
		ByCategory:     make([]categoryView, 0, len(report.ByCategory)),
	}
	for _, c := range report.ByCategory {
		view.ByCategory = append(view.ByCategory, categoryView{
			Category:        c.Category,
			Total:           c.Total,
			Correct:         c.Correct,
			Accuracy:        c.Accuracy(),
			AccuracyDisplay: percent(c.Accuracy(), 1),
		})
	}
	return view
}

type profileView struct {
	domain.Profile
	AverageScore        float64 `json:"averageScore"`
	AverageScoreDisplay string  `json:"averageScoreDisplay"`
}

func toProfileView(profile domain.Profile) profileView {
	stats := app.DeriveDisplayStats(profile)
	return profileView{
		Profile:             profile,
		AverageScore:        stats.AverageScore,
		AverageScoreDisplay: percent(stats.AverageScore, 2),
	}
}

type submitRequest struct {
	Selections map[int64]string `json:"selections"`
}

type submitResponse struct {
	Recorded int `json:"recorded"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

func percent(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64) + "%"
}
