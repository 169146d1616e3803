package retention

import (
	"context"
	"time"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
)

// InvitationPurge deletes resolved invitations (ACCEPTED or DECLINED) older
// than the retention window. Pending invitations, expired or not, are kept so
// the invitee's pending flag is unaffected. Call periodically (e.g. daily).
type InvitationPurge struct {
	store ports.Store
	clock ports.Clock
	after time.Duration
}

// NewInvitationPurge keeps resolved invitations for retainDays. 0 = no-op.
func NewInvitationPurge(store ports.Store, clock ports.Clock, retainDays int) *InvitationPurge {
	return &InvitationPurge{store: store, clock: clock, after: time.Duration(retainDays) * 24 * time.Hour}
}

// Enabled reports whether a retention window is configured.
func (p *InvitationPurge) Enabled() bool {
	return p.after > 0
}

// Run deletes everything resolved before now minus the window.
func (p *InvitationPurge) Run(ctx context.Context) (purged int64, err error) {
	if !p.Enabled() {
		return 0, nil
	}
	cutoff := p.clock.Now().Add(-p.after)
	purged, err = p.store.Repos().Invitations.DeleteResolvedBefore(ctx, cutoff)
	if err != nil {
		return 0, domerrors.Internal(err)
	}
	return purged, nil
}
