package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lzradio/lzradio-backend/internal/config"
	"github.com/lzradio/lzradio-backend/internal/exam"
	"github.com/lzradio/lzradio-backend/internal/model"
	"github.com/lzradio/lzradio-backend/internal/notify"
	"github.com/lzradio/lzradio-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Common exam service errors.
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionNotActive    = errors.New("session not in progress")
	ErrSessionNotSubmitted = errors.New("session not submitted")
	ErrNoQuestions         = errors.New("no questions available")
)

// ExamService owns the live exam sessions. Sessions are in-memory; a
// finished simulated attempt is queued to Redis for the persistence
// worker, and the ticking remaining-seconds value is cached so a
// reconnecting client can resume where it left off.
type ExamService struct {
	cfg          *config.Config
	questionRepo *repository.QuestionRepository
	attemptRepo  *repository.AttemptRepository
	rdb          *redis.Client
	notifier     *notify.Notifier
	log          zerolog.Logger

	// intn is the shuffle's randomness source, injectable for tests.
	intn func(n int) int

	mu       sync.Mutex
	sessions map[uuid.UUID]*exam.Session
}

// NewExamService creates a new ExamService.
func NewExamService(cfg *config.Config, questionRepo *repository.QuestionRepository, attemptRepo *repository.AttemptRepository, rdb *redis.Client, notifier *notify.Notifier, log zerolog.Logger) *ExamService {
	return &ExamService{
		cfg:          cfg,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		rdb:          rdb,
		notifier:     notifier,
		log:          log,
		intn:         rand.IntN,
		sessions:     make(map[uuid.UUID]*exam.Session),
	}
}

// StartSession selects a question set per the request and starts a new
// session. Simulated sessions draw a fixed-size random subset of the
// whole class bank and run against the countdown; prep sessions take
// the requested sections in syllabus order unless randomization is asked
// for, and are untimed.
func (s *ExamService) StartSession(ctx context.Context, req *model.StartSessionRequest) (*exam.Session, error) {
	mode := exam.Mode(req.Mode)

	var questions []model.Question
	var err error
	if mode == exam.ModeSimulated {
		questions, err = s.questionRepo.ListByClass(ctx, req.Class)
	} else {
		questions, err = s.questionRepo.ListBySections(ctx, req.Class, req.Sections)
	}
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	if mode == exam.ModeSimulated {
		s.shuffle(questions)
		if len(questions) > s.cfg.ExamQuestionCount {
			questions = questions[:s.cfg.ExamQuestionCount]
		}
	} else if req.Randomize {
		s.shuffle(questions)
	}

	var sess *exam.Session
	opts := exam.SessionOptions{}
	if mode == exam.ModeSimulated {
		opts.DurationSeconds = s.cfg.ExamDurationMinutes * 60
		opts.PassThreshold = s.cfg.ExamPassThreshold
		opts.OnTick = func(remaining int) {
			s.cacheRemaining(sess.ID(), remaining)
		}
		opts.OnFinished = func(result exam.Result) {
			s.cacheState(sess.ID(), sess.State())
			s.recordAttempt(sess, req.Class, result)
		}
	}

	sess = exam.NewSession(mode, questions, opts)
	sess.Start()

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	s.log.Info().
		Str("session_id", sess.ID().String()).
		Str("mode", string(mode)).
		Int("class", req.Class).
		Int("questions", len(questions)).
		Msg("exam session started")

	return sess, nil
}

// GetSession looks up a live session by ID.
func (s *ExamService) GetSession(id uuid.UUID) (*exam.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// CloseSession stops a session's timer and drops it from the registry.
func (s *ExamService) CloseSession(id uuid.UUID) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	sess.Close()
	s.rdb.Del(context.Background(),
		config.CacheKey.SessionRemainingKey(id.String()),
		config.CacheKey.SessionStateKey(id.String()))

	s.log.Info().Str("session_id", id.String()).Msg("exam session closed")
	return nil
}

// CachedRemaining reads the last cached remaining-seconds value for a
// session, used when a client reconnects after the in-memory session is
// gone. Returns -1 when nothing is cached.
func (s *ExamService) CachedRemaining(ctx context.Context, id uuid.UUID) int {
	val, err := s.rdb.Get(ctx, config.CacheKey.SessionRemainingKey(id.String())).Result()
	if err != nil {
		return -1
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return -1
	}
	return n
}

// CachedState reads the last cached session state, "" when nothing is
// cached. Lets a reconnecting client learn that an evicted session had
// already auto-submitted on expiry.
func (s *ExamService) CachedState(ctx context.Context, id uuid.UUID) string {
	val, err := s.rdb.Get(ctx, config.CacheKey.SessionStateKey(id.String())).Result()
	if err != nil {
		return ""
	}
	return val
}

// ListQuestions returns the question bank for browsing, with the
// correct answers stripped. Syllabus order unless randomize is set.
func (s *ExamService) ListQuestions(ctx context.Context, class int, sections []int, randomize bool) ([]model.QuestionForClient, error) {
	questions, err := s.questionRepo.ListBySections(ctx, class, sections)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if randomize {
		s.shuffle(questions)
	}

	out := make([]model.QuestionForClient, len(questions))
	for i, q := range questions {
		out[i] = q.ForClient()
	}
	return out, nil
}

// QuestionCounts returns how many questions the bank holds for a class,
// broken down by section.
func (s *ExamService) QuestionCounts(ctx context.Context, class int) (map[int]int, error) {
	counts, err := s.questionRepo.CountByClass(ctx, class)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	return counts, nil
}

// RecentAttempts returns the latest persisted simulated attempts.
func (s *ExamService) RecentAttempts(ctx context.Context, limit int) ([]model.ExamAttempt, error) {
	return s.attemptRepo.ListRecent(ctx, limit)
}

// AttemptBySession returns the persisted attempt for a session, once the
// worker has flushed it.
func (s *ExamService) AttemptBySession(ctx context.Context, sessionID uuid.UUID) (*model.ExamAttempt, error) {
	return s.attemptRepo.GetBySessionID(ctx, sessionID)
}

// shuffle performs an in-place Fisher-Yates shuffle.
func (s *ExamService) shuffle(questions []model.Question) {
	for i := len(questions) - 1; i > 0; i-- {
		j := s.intn(i + 1)
		questions[i], questions[j] = questions[j], questions[i]
	}
}

// cacheRemaining stores the ticking countdown value with a TTL slightly
// past the exam duration so stale sessions age out on their own.
func (s *ExamService) cacheRemaining(id uuid.UUID, remaining int) {
	ttl := time.Duration(s.cfg.ExamDurationMinutes+5) * time.Minute
	key := config.CacheKey.SessionRemainingKey(id.String())
	if err := s.rdb.Set(context.Background(), key, strconv.Itoa(remaining), ttl).Err(); err != nil {
		s.log.Warn().Err(err).Str("session_id", id.String()).Msg("failed to cache remaining seconds")
	}
}

// cacheState mirrors the session state next to the remaining-seconds
// value, same TTL.
func (s *ExamService) cacheState(id uuid.UUID, state exam.State) {
	ttl := time.Duration(s.cfg.ExamDurationMinutes+5) * time.Minute
	key := config.CacheKey.SessionStateKey(id.String())
	if err := s.rdb.Set(context.Background(), key, string(state), ttl).Err(); err != nil {
		s.log.Warn().Err(err).Str("session_id", id.String()).Msg("failed to cache session state")
	}
}

// recordAttempt queues a finished simulated attempt for the persistence
// worker and notifies registered providers.
func (s *ExamService) recordAttempt(sess *exam.Session, class int, result exam.Result) {
	attempt := model.ExamAttempt{
		SessionID:       sess.ID(),
		Class:           class,
		TotalQuestions:  result.TotalQuestions,
		CorrectCount:    result.CorrectCount,
		WrongCount:      result.WrongCount,
		UnansweredCount: result.UnansweredCount,
		Passed:          result.Passed,
		StartedAt:       sess.StartedAt(),
		FinishedAt:      sess.FinishedAt(),
	}

	payload, err := json.Marshal(attempt)
	if err != nil {
		s.log.Error().Err(err).Str("session_id", sess.ID().String()).Msg("failed to encode attempt")
		return
	}
	if err := s.rdb.RPush(context.Background(), config.WorkerKey.PersistAttemptsQueue, payload).Err(); err != nil {
		s.log.Error().Err(err).Str("session_id", sess.ID().String()).Msg("failed to queue attempt")
	}

	s.notifier.Emit(notify.Event{Name: "attempt.finished", Payload: attempt})

	s.log.Info().
		Str("session_id", sess.ID().String()).
		Int("correct", result.CorrectCount).
		Bool("passed", result.Passed).
		Msg("exam attempt recorded")
}
