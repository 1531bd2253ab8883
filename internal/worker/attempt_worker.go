package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lzradio/lzradio-backend/internal/config"
	"github.com/lzradio/lzradio-backend/internal/model"
	"github.com/lzradio/lzradio-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	AttemptBatchSize    = 50
	AttemptBatchTimeout = 2 * time.Second
	AttemptPollTimeout  = 1 * time.Second
)

// AttemptWorker drains finished exam attempts from the Redis queue and
// persists them in batches.
type AttemptWorker struct {
	attemptRepo *repository.AttemptRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

func NewAttemptWorker(attemptRepo *repository.AttemptRepository, rdb *redis.Client, log zerolog.Logger) *AttemptWorker {
	return &AttemptWorker{
		attemptRepo: attemptRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "attempt_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *AttemptWorker) Start(ctx context.Context) {
	w.log.Info().Msg("AttemptWorker started")

	batch := make([]model.ExamAttempt, 0, AttemptBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= AttemptBatchSize || time.Since(lastFlush) >= AttemptBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, AttemptPollTimeout, config.WorkerKey.PersistAttemptsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var a model.ExamAttempt
			if err := json.Unmarshal([]byte(item[1]), &a); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, a)
		}
	}
}

// flushSafe tries the bulk path first and falls back to per-row inserts
// on failure, requeueing whatever still cannot be stored.
func (w *AttemptWorker) flushSafe(ctx context.Context, batch []model.ExamAttempt) {
	if len(batch) == 0 {
		return
	}

	err := w.attemptRepo.BulkInsert(ctx, batch)
	if err == nil {
		w.log.Debug().Int("count", len(batch)).Msg("attempt batch persisted")
		return
	}
	w.log.Warn().Err(err).Msg("bulk attempt insert failed, using fallback")

	for i := range batch {
		if err := w.attemptRepo.Insert(ctx, &batch[i]); err != nil {
			w.log.Error().Err(err).
				Str("session_id", batch[i].SessionID.String()).
				Msg("single insert failed, requeueing")
			raw, _ := json.Marshal(batch[i])
			w.rdb.RPush(ctx, config.WorkerKey.PersistAttemptsQueue, raw)
		}
	}
}
