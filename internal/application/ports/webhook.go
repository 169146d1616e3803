package ports

import "context"

// DomainEvent is one change sent to the webhook endpoint.
type DomainEvent struct {
	Event      string      `json:"event"` // project.created, invitation.accepted, task.updated, ...
	OccurredAt int64       `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// WebhookEmitter sends domain events to an external endpoint.
type WebhookEmitter interface {
	Emit(ctx context.Context, event DomainEvent) error
}
