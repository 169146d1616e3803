package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
)

// Activity logs successful mutations and queues the matching webhook event.
// Queue failures are logged and otherwise ignored: the change is committed.
type Activity struct {
	log  zerolog.Logger
	jobs ports.TaskEnqueuer
}

func NewActivity(log zerolog.Logger, jobs ports.TaskEnqueuer) *Activity {
	return &Activity{log: log, jobs: jobs}
}

// Record logs event and enqueues payload for webhook delivery.
func (a *Activity) Record(r *http.Request, event, projectID, userID string, payload interface{}) {
	a.log.Info().
		Str("event", event).
		Str("project_id", projectID).
		Str("user_id", userID).
		Str("request_id", requestID(r)).
		Msg("activity")
	if a.jobs == nil {
		return
	}
	if err := a.jobs.EnqueueWebhook(r.Context(), event, payload); err != nil {
		a.log.Warn().Err(err).Str("event", event).Msg("enqueue webhook failed")
	}
}

// InvitationSent queues the invitation email.
func (a *Activity) InvitationSent(r *http.Request, notice ports.InvitationNotice) {
	if a.jobs == nil {
		return
	}
	if err := a.jobs.EnqueueInvitationEmail(r.Context(), notice); err != nil {
		a.log.Warn().Err(err).Str("invitation_id", notice.InvitationID).Msg("enqueue invitation email failed")
	}
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
