package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lzradio/lzradio-backend/internal/model"
)

// ErrAttemptNotFound is returned when no attempt exists for a session.
var ErrAttemptNotFound = errors.New("attempt not found")

// AttemptRepository persists finished simulated exam attempts.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

// Insert stores a single attempt. A session ID already on record is a
// no-op, so retried inserts cannot double-record.
func (r *AttemptRepository) Insert(ctx context.Context, a *model.ExamAttempt) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO exam_attempts (session_id, class, total_questions, correct_count,
		                            wrong_count, unanswered_count, passed, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (session_id) DO NOTHING`,
		a.SessionID, a.Class, a.TotalQuestions, a.CorrectCount,
		a.WrongCount, a.UnansweredCount, a.Passed, a.StartedAt, a.FinishedAt)
	return err
}

// BulkInsert stores a batch of attempts in one round trip. Conflicting
// session IDs are skipped so a requeued batch cannot double-record.
func (r *AttemptRepository) BulkInsert(ctx context.Context, attempts []model.ExamAttempt) error {
	if len(attempts) == 0 {
		return nil
	}

	sessionIDs := make([]uuid.UUID, len(attempts))
	classes := make([]int, len(attempts))
	totals := make([]int, len(attempts))
	corrects := make([]int, len(attempts))
	wrongs := make([]int, len(attempts))
	unanswereds := make([]int, len(attempts))
	passeds := make([]bool, len(attempts))
	startedAts := make([]time.Time, len(attempts))
	finishedAts := make([]time.Time, len(attempts))

	for i, a := range attempts {
		sessionIDs[i] = a.SessionID
		classes[i] = a.Class
		totals[i] = a.TotalQuestions
		corrects[i] = a.CorrectCount
		wrongs[i] = a.WrongCount
		unanswereds[i] = a.UnansweredCount
		passeds[i] = a.Passed
		startedAts[i] = a.StartedAt
		finishedAts[i] = a.FinishedAt
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO exam_attempts (session_id, class, total_questions, correct_count,
		                            wrong_count, unanswered_count, passed, started_at, finished_at)
		 SELECT * FROM UNNEST(
			$1::uuid[], $2::int[], $3::int[], $4::int[], $5::int[],
			$6::int[], $7::bool[], $8::timestamptz[], $9::timestamptz[])
		 ON CONFLICT (session_id) DO NOTHING`,
		sessionIDs, classes, totals, corrects, wrongs, unanswereds, passeds, startedAts, finishedAts)
	return err
}

// ListRecent retrieves the most recent attempts, newest first.
func (r *AttemptRepository) ListRecent(ctx context.Context, limit int) ([]model.ExamAttempt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, session_id, class, total_questions, correct_count,
		        wrong_count, unanswered_count, passed, started_at, finished_at
		 FROM exam_attempts ORDER BY finished_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []model.ExamAttempt
	for rows.Next() {
		var a model.ExamAttempt
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Class, &a.TotalQuestions, &a.CorrectCount,
			&a.WrongCount, &a.UnansweredCount, &a.Passed, &a.StartedAt, &a.FinishedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// GetBySessionID retrieves the attempt recorded for a session.
func (r *AttemptRepository) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (*model.ExamAttempt, error) {
	a := &model.ExamAttempt{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, session_id, class, total_questions, correct_count,
		        wrong_count, unanswered_count, passed, started_at, finished_at
		 FROM exam_attempts WHERE session_id = $1`, sessionID,
	).Scan(&a.ID, &a.SessionID, &a.Class, &a.TotalQuestions, &a.CorrectCount,
		&a.WrongCount, &a.UnansweredCount, &a.Passed, &a.StartedAt, &a.FinishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
