package queue

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
)

type recordingEmitter struct {
	events []ports.DomainEvent
	err    error
}

func (r *recordingEmitter) Emit(ctx context.Context, event ports.DomainEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func TestEnqueuer_WritesPendingTasks(t *testing.T) {
	mr := miniredis.RunT(t)
	q, err := NewAsynqEnqueuer(asynq.RedisClientOpt{Addr: mr.Addr()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = q.Close() })
	q.now = func() time.Time { return time.Unix(1700000000, 0) }

	ctx := context.Background()
	if err := q.EnqueueInvitationEmail(ctx, ports.InvitationNotice{InvitationID: "i1", InvitedEmail: "bob@example.com"}); err != nil {
		t.Fatalf("EnqueueInvitationEmail: %v", err)
	}
	if err := q.EnqueueWebhook(ctx, "task.created", map[string]string{"id": "t1"}); err != nil {
		t.Fatalf("EnqueueWebhook: %v", err)
	}
	pending, err := mr.List("asynq:{default}:pending")
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Errorf("pending = %d, want 2", len(pending))
	}
}

func TestEnqueuer_ReturnsWrappedError(t *testing.T) {
	mr := miniredis.RunT(t)
	q, err := NewAsynqEnqueuer(asynq.RedisClientOpt{Addr: mr.Addr()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = q.Close() })
	mr.Close()

	err = q.EnqueueWebhook(context.Background(), "task.created", nil)
	if err == nil || !strings.Contains(err.Error(), TypeWebhook) {
		t.Errorf("EnqueueWebhook err = %v, want it to name %s", err, TypeWebhook)
	}
	err = q.EnqueueInvitationEmail(context.Background(), ports.InvitationNotice{InvitationID: "i1"})
	if err == nil || !strings.Contains(err.Error(), TypeInvitationEmail) {
		t.Errorf("EnqueueInvitationEmail err = %v, want it to name %s", err, TypeInvitationEmail)
	}
}

func TestWorker_WebhookForwardsEvent(t *testing.T) {
	emitter := &recordingEmitter{}
	w := newWorker(nil, emitter, nil, zerolog.Nop())
	body, _ := json.Marshal(ports.DomainEvent{Event: "invitation.accepted", OccurredAt: 42, Payload: map[string]string{"id": "i1"}})

	if err := w.handleWebhook(context.Background(), asynq.NewTask(TypeWebhook, body)); err != nil {
		t.Fatal(err)
	}
	if len(emitter.events) != 1 {
		t.Fatalf("events = %d", len(emitter.events))
	}
	got := emitter.events[0]
	if got.Event != "invitation.accepted" || got.OccurredAt != 42 {
		t.Errorf("event = %+v", got)
	}
	raw, _ := json.Marshal(got.Payload)
	if string(raw) != `{"id":"i1"}` {
		t.Errorf("payload = %s", raw)
	}
}

func TestWorker_WebhookFailureRetries(t *testing.T) {
	emitter := &recordingEmitter{err: errors.New("502")}
	w := newWorker(nil, emitter, nil, zerolog.Nop())
	body, _ := json.Marshal(ports.DomainEvent{Event: "task.deleted"})
	err := w.handleWebhook(context.Background(), asynq.NewTask(TypeWebhook, body))
	if err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Errorf("err = %v, want retryable error", err)
	}
}

func TestWorker_BadPayloadSkipsRetry(t *testing.T) {
	w := newWorker(nil, &recordingEmitter{}, nil, zerolog.Nop())
	for _, typ := range []string{TypeWebhook, TypeInvitationEmail} {
		task := asynq.NewTask(typ, []byte("{"))
		var err error
		if typ == TypeWebhook {
			err = w.handleWebhook(context.Background(), task)
		} else {
			err = w.handleInvitationEmail(context.Background(), task)
		}
		if !errors.Is(err, asynq.SkipRetry) {
			t.Errorf("%s: err = %v, want SkipRetry", typ, err)
		}
	}
}

func TestWorker_InvitationEmail(t *testing.T) {
	w := newWorker(nil, &recordingEmitter{}, nil, zerolog.Nop())
	body, _ := json.Marshal(ports.InvitationNotice{InvitationID: "i1", InvitedEmail: "bob@example.com", ExpiresAt: 1700000000})
	if err := w.handleInvitationEmail(context.Background(), asynq.NewTask(TypeInvitationEmail, body)); err != nil {
		t.Fatal(err)
	}
}

type countingPurger struct {
	calls int
	err   error
}

func (p *countingPurger) Run(ctx context.Context) (int64, error) {
	p.calls++
	return 3, p.err
}

func TestWorker_InvitationPurge(t *testing.T) {
	purger := &countingPurger{}
	w := newWorker(nil, &recordingEmitter{}, purger, zerolog.Nop())
	if err := w.handleInvitationPurge(context.Background(), asynq.NewTask(TypeInvitationPurge, nil)); err != nil {
		t.Fatal(err)
	}
	purger.err = errors.New("db down")
	if err := w.handleInvitationPurge(context.Background(), asynq.NewTask(TypeInvitationPurge, nil)); err == nil {
		t.Error("expected purge error to surface for retry")
	}
	if purger.calls != 2 {
		t.Errorf("calls = %d", purger.calls)
	}
}

func TestNewPurgeScheduler_BadCronspec(t *testing.T) {
	mr := miniredis.RunT(t)
	if _, err := NewPurgeScheduler(asynq.RedisClientOpt{Addr: mr.Addr()}, "every tuesday-ish", zerolog.Nop()); err == nil {
		t.Error("expected error for malformed cronspec")
	}
}
