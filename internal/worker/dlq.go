package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dlqKey = "jobs:dlq"

// DLQEntry records a job that exhausted its retries, with enough context to
// inspect or replay it by hand.
type DLQEntry struct {
	Queue    string          `json:"queue"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Error    string          `json:"error"`
	Attempts int             `json:"attempts"`
	FailedAt time.Time       `json:"failed_at"`
}

// SendToDLQ parks a poisoned job. If even the DLQ write fails the job is
// logged and dropped; the alternative is an infinite retry loop.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue, jobType string, payload json.RawMessage, errMsg string, attempts int) {
	entry := DLQEntry{
		Queue:    queue,
		Type:     jobType,
		Payload:  payload,
		Error:    errMsg,
		Attempts: attempts,
		FailedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("type", jobType).Msg("dlq: failed to marshal entry, job lost")
		return
	}
	if err := rdb.LPush(ctx, dlqKey, data).Err(); err != nil {
		log.Error().Err(err).Str("type", jobType).Msg("dlq: failed to park job, job lost")
		return
	}
	log.Warn().Str("queue", queue).Str("type", jobType).Int("attempts", attempts).Msg("job parked in DLQ")
}

// DLQSize returns the number of parked jobs, for the health endpoint.
func DLQSize(ctx context.Context, rdb *redis.Client) (int64, error) {
	return rdb.LLen(ctx, dlqKey).Result()
}
