package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
)

// webhookPayload mirrors ports.DomainEvent but keeps the payload raw.
type webhookPayload struct {
	Event      string          `json:"event"`
	OccurredAt int64           `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// Purger removes stale rows; see retention.InvitationPurge.
type Purger interface {
	Run(ctx context.Context) (int64, error)
}

// Worker runs Asynq task handlers (invitation email, webhook delivery, purge).
type Worker struct {
	srv     *asynq.Server
	mux     *asynq.ServeMux
	emitter ports.WebhookEmitter
	purge   Purger
	log     zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
// purge may be nil.
func NewWorker(redisOpt asynq.RedisConnOpt, emitter ports.WebhookEmitter, purge Purger, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:     2,
		LogLevel:        asynq.InfoLevel,
		ShutdownTimeout: 10 * time.Second,
	})
	return newWorker(srv, emitter, purge, log)
}

func newWorker(srv *asynq.Server, emitter ports.WebhookEmitter, purge Purger, log zerolog.Logger) *Worker {
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, emitter: emitter, purge: purge, log: log}
	mux.HandleFunc(TypeInvitationEmail, w.handleInvitationEmail)
	mux.HandleFunc(TypeWebhook, w.handleWebhook)
	if purge != nil {
		mux.HandleFunc(TypeInvitationPurge, w.handleInvitationPurge)
	}
	return w
}

func (w *Worker) handleInvitationEmail(ctx context.Context, t *asynq.Task) error {
	var n ports.InvitationNotice
	if err := json.Unmarshal(t.Payload(), &n); err != nil {
		w.log.Error().Err(err).Msg("invitation email task payload invalid")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	// Log only; a mailer plugs in here.
	w.log.Info().
		Str("invitation_id", n.InvitationID).
		Str("project_id", n.ProjectID).
		Str("project_name", n.ProjectName).
		Str("email", n.InvitedEmail).
		Time("expires_at", time.Unix(n.ExpiresAt, 0).UTC()).
		Msg("invitation email (log only; configure SMTP for real email)")
	return nil
}

func (w *Worker) handleWebhook(ctx context.Context, t *asynq.Task) error {
	var p webhookPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("webhook task payload invalid")
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	event := ports.DomainEvent{Event: p.Event, OccurredAt: p.OccurredAt, Payload: p.Payload}
	if err := w.emitter.Emit(ctx, event); err != nil {
		w.log.Warn().Err(err).Str("event", p.Event).Msg("webhook delivery failed")
		return err
	}
	w.log.Debug().Str("event", p.Event).Msg("webhook delivered")
	return nil
}

func (w *Worker) handleInvitationPurge(ctx context.Context, t *asynq.Task) error {
	n, err := w.purge.Run(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("invitation purge failed")
		return err
	}
	w.log.Info().Int64("purged", n).Msg("resolved invitations purged")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
