package app

import (
	"context"
	"fmt"

	"aptitude-quiz-service/internal/domain"
)

// ReportService builds score reports from a user's answer history.
type ReportService struct {
	answers AnswerRepository
}

func NewReportService(answers AnswerRepository) *ReportService {
	return &ReportService{answers: answers}
}

// Report aggregates the user's full history. ok is false when the user has never answered anything.
func (s *ReportService) Report(ctx context.Context, userID string) (domain.Report, bool, error) {
	records, err := s.answers.ListAnswerDetails(ctx, userID)
	if err != nil {
		return domain.Report{}, false, fmt.Errorf("load results: %w", err)
	}
	report, ok := AggregateReport(records)
	return report, ok, nil
}

// AggregateReport computes overall and per-category accuracy over records.
// An empty input yields ok == false rather than a zero score. Categories keep the
// order in which they first appear in records. Percentages are not rounded.
func AggregateReport(records []domain.AnswerDetail) (domain.Report, bool) {
	if len(records) == 0 {
		return domain.Report{}, false
	}

	report := domain.Report{
		TotalQuestions: len(records),
		Details:        records,
	}
	position := make(map[string]int)
	for _, r := range records {
		i, seen := position[r.Type]
		if !seen {
			i = len(report.ByCategory)
			position[r.Type] = i
			report.ByCategory = append(report.ByCategory, domain.CategoryStats{Category: r.Type})
		}
		report.ByCategory[i].Total++
		if r.IsCorrect {
			report.ByCategory[i].Correct++
			report.CorrectAnswers++
		}
	}
	report.Score = 100 * float64(report.CorrectAnswers) / float64(report.TotalQuestions)
	return report, true
}
