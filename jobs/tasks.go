package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/brightcart/brightcart/internal/audit"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeAuditRetry redelivers audit entries whose synchronous append
	// failed. The entry keeps its original ID so redelivery stays idempotent.
	TaskTypeAuditRetry = "audit:retry"
)

// NewAuditRetryTask constructs an Asynq task for one failed audit entry.
func NewAuditRetryTask(entry audit.Entry) (*asynq.Task, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeAuditRetry, data,
		asynq.MaxRetry(10),
		asynq.Retention(24*time.Hour)), nil
}

// NewAuditRetryHandler returns the worker handler that writes redelivered
// entries into the audit sink.
func NewAuditRetryHandler(svc *audit.Service, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var entry audit.Entry
		if err := json.Unmarshal(t.Payload(), &entry); err != nil {
			return asynq.SkipRetry
		}
		if err := svc.Append(ctx, entry); err != nil {
			if logger != nil {
				logger.Warn("audit retry append", slog.String("entry_id", entry.ID), slog.Any("error", err))
			}
			return err
		}
		return nil
	}
}

// Enqueuer hands failed audit writes to the queue.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer wraps an Asynq client.
func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

// EnqueueAuditRetry queues one entry for background redelivery.
func (e *Enqueuer) EnqueueAuditRetry(ctx context.Context, entry audit.Entry) error {
	task, err := NewAuditRetryTask(entry)
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}
