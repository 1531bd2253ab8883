package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lzradio/lzradio-backend/internal/model"
)

// QuestionRepository handles exam question bank access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByClass retrieves the whole question bank for a license class,
// in syllabus order.
func (r *QuestionRepository) ListByClass(ctx context.Context, class int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, class, section, question_number, question_text, choices, correct_answer
		 FROM questions WHERE class = $1
		 ORDER BY section, question_number`, class)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuestions(rows)
}

// ListBySections retrieves the questions of a class restricted to the
// given syllabus sections. An empty sections slice means all sections.
func (r *QuestionRepository) ListBySections(ctx context.Context, class int, sections []int) ([]model.Question, error) {
	if len(sections) == 0 {
		return r.ListByClass(ctx, class)
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, class, section, question_number, question_text, choices, correct_answer
		 FROM questions WHERE class = $1 AND section = ANY($2)
		 ORDER BY section, question_number`, class, sections)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectQuestions(rows)
}

// CountByClass returns the bank size per section for a class.
func (r *QuestionRepository) CountByClass(ctx context.Context, class int) (map[int]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT section, COUNT(*) FROM questions WHERE class = $1 GROUP BY section`, class)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var section, n int
		if err := rows.Scan(&section, &n); err != nil {
			return nil, err
		}
		counts[section] = n
	}
	return counts, rows.Err()
}

func collectQuestions(rows pgx.Rows) ([]model.Question, error) {
	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var choicesRaw []byte
		if err := rows.Scan(&q.ID, &q.Class, &q.Section, &q.QuestionNumber,
			&q.QuestionText, &choicesRaw, &q.CorrectAnswer); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(choicesRaw, &q.Choices); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
