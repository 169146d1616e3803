package webhook

import (
	"context"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
)

// NoopEmitter discards events when WEBHOOK_URL is not set.
type NoopEmitter struct{}

func NewNoopEmitter() *NoopEmitter {
	return &NoopEmitter{}
}

func (e *NoopEmitter) Emit(ctx context.Context, event ports.DomainEvent) error {
	return nil
}

var _ ports.WebhookEmitter = (*NoopEmitter)(nil)
