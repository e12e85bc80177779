package postgres

import (
	"context"
	"errors"

	"aptitude-quiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Store reads and writes the quiz collections in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// LoadQuestions returns every question ordered by id.
func (s *Store) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, question, type, options, correct_answer FROM questions ORDER BY id`)
	if err != nil {
		return nil, domain.DataAccess("load questions", err)
	}
	defer rows.Close()

	questions := make([]domain.Question, 0)
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Type, &q.Options, &q.CorrectAnswer); err != nil {
			return nil, domain.DataAccess("scan question", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DataAccess("load questions", err)
	}
	return questions, nil
}

const insertAnswerSQL = `INSERT INTO answers (id, question_id, user_id, selected_answer, is_correct, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

const bumpCountersSQL = `INSERT INTO profiles (id, total_attempted, correct_answers, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (id) DO UPDATE SET
	total_attempted = profiles.total_attempted + EXCLUDED.total_attempted,
	correct_answers = profiles.correct_answers + EXCLUDED.correct_answers,
	updated_at = EXCLUDED.updated_at`

// InsertAnswers writes the batch and bumps the user's profile counters in one transaction.
func (s *Store) InsertAnswers(ctx context.Context, userID string, answers []domain.Answer) error {
	err := s.pool.BeginFunc(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		correct := 0
		for _, a := range answers {
			batch.Queue(insertAnswerSQL, a.ID, a.QuestionID, a.UserID, a.SelectedAnswer, a.IsCorrect, a.CreatedAt)
			if a.IsCorrect {
				correct++
			}
		}
		batch.Queue(bumpCountersSQL, userID, len(answers), correct)

		results := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return err
			}
		}
		return results.Close()
	})
	if err != nil {
		return domain.DataAccess("insert answers", err)
	}
	return nil
}

// ListAnswerDetails reads the user's answers through the answer_details view, newest first.
func (s *Store) ListAnswerDetails(ctx context.Context, userID string) ([]domain.AnswerDetail, error) {
	rows, err := s.pool.Query(ctx, `SELECT id::text, question_id, user_id, selected_answer, is_correct, created_at,
	question, type, correct_answer
FROM answer_details
WHERE user_id = $1
ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, domain.DataAccess("list answers", err)
	}
	defer rows.Close()

	var details []domain.AnswerDetail
	for rows.Next() {
		var d domain.AnswerDetail
		if err := rows.Scan(&d.ID, &d.QuestionID, &d.UserID, &d.SelectedAnswer, &d.IsCorrect, &d.CreatedAt,
			&d.Question, &d.Type, &d.CorrectAnswer); err != nil {
			return nil, domain.DataAccess("scan answer", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.DataAccess("list answers", err)
	}
	return details, nil
}

const profileColumns = `id, COALESCE(username, ''), total_attempted, correct_answers, updated_at`

func (s *Store) FindProfile(ctx context.Context, userID string) (domain.Profile, bool, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, userID)
	profile, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, false, nil
	}
	if err != nil {
		return domain.Profile{}, false, domain.DataAccess("find profile", err)
	}
	return profile, true, nil
}

func (s *Store) CreateProfile(ctx context.Context, userID string) (domain.Profile, error) {
	row := s.pool.QueryRow(ctx, `INSERT INTO profiles (id) VALUES ($1)
ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
RETURNING `+profileColumns, userID)
	profile, err := scanProfile(row)
	if err != nil {
		return domain.Profile{}, domain.DataAccess("create profile", err)
	}
	return profile, nil
}

func (s *Store) UpsertProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (domain.Profile, error) {
	row := s.pool.QueryRow(ctx, `INSERT INTO profiles (id, username, updated_at) VALUES ($1, NULLIF($2, ''), now())
ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username, updated_at = EXCLUDED.updated_at
RETURNING `+profileColumns, userID, update.Username)
	profile, err := scanProfile(row)
	if err != nil {
		return domain.Profile{}, domain.DataAccess("upsert profile", err)
	}
	return profile, nil
}

func scanProfile(row pgx.Row) (domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(&p.ID, &p.Username, &p.TotalAttempted, &p.CorrectAnswers, &p.UpdatedAt)
	return p, err
}
