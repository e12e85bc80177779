package postgres

import (
	"context"
	"database/sql"

	"aptitude-quiz-service/internal/domain"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// OpenBun opens a bun handle for migrations and seeding.
func OpenBun(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID            int64    `bun:"id,pk"`
	Question      string   `bun:"question,notnull"`
	Type          string   `bun:"type,notnull"`
	Options       []string `bun:"options,array"`
	CorrectAnswer string   `bun:"correct_answer,notnull"`
}

// SeedQuestions validates questions and upserts them by id. Questions are only ever
// written here, outside the user-facing flow.
func SeedQuestions(ctx context.Context, db *bun.DB, questions []domain.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}
	rows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		if err := domain.ValidateQuestion(q); err != nil {
			return 0, err
		}
		rows = append(rows, questionRow{
			ID:            q.ID,
			Question:      q.Question,
			Type:          q.Type,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}

	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("question = EXCLUDED.question").
		Set("type = EXCLUDED.type").
		Set("options = EXCLUDED.options").
		Set("correct_answer = EXCLUDED.correct_answer").
		Exec(ctx)
	if err != nil {
		return 0, domain.DataAccess("seed questions", err)
	}
	return len(rows), nil
}
