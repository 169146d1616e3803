package ports

import "context"

// InvitationNotice is the payload for the invitation email job.
type InvitationNotice struct {
	InvitationID  string `json:"invitation_id"`
	ProjectID     string `json:"project_id"`
	ProjectName   string `json:"project_name"`
	InviterID     string `json:"inviter_id"`
	InvitedUserID string `json:"invited_user_id"`
	InvitedEmail  string `json:"invited_email"`
	ExpiresAt     int64  `json:"expires_at"`
}

// TaskEnqueuer enqueues async jobs (invitation email, webhook). Jobs run after
// the request's transaction has committed and never affect its outcome.
type TaskEnqueuer interface {
	EnqueueInvitationEmail(ctx context.Context, notice InvitationNotice) error
	EnqueueWebhook(ctx context.Context, event string, payload interface{}) error
}
