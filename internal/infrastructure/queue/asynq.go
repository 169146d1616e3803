package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
)

const (
	TypeInvitationEmail = "email:invitation"
	TypeWebhook         = "webhook:emit"
	TypeInvitationPurge = "maintenance:invitation_purge"
)

type TaskEnqueuer struct {
	client *asynq.Client
	now    func() time.Time
}

// NewAsynqEnqueuer returns an enqueuer writing to redisOpt. Enqueue errors are
// returned to the caller, which owns logging them.
func NewAsynqEnqueuer(redisOpt asynq.RedisConnOpt) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, now: time.Now}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueInvitationEmail(ctx context.Context, notice ports.InvitationNotice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeInvitationEmail, payload, asynq.MaxRetry(3))
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeInvitationEmail, err)
	}
	return nil
}

func (q *TaskEnqueuer) EnqueueWebhook(ctx context.Context, event string, payload interface{}) error {
	body, err := json.Marshal(ports.DomainEvent{Event: event, OccurredAt: q.now().Unix(), Payload: payload})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeWebhook, body, asynq.MaxRetry(5), asynq.Timeout(30*time.Second))
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeWebhook, err)
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
