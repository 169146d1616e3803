package invitation

import (
	"context"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/policy"
)

// DeclineInvitation closes a pending invitation without granting membership.
type DeclineInvitation struct {
	store ports.Store
	clock ports.Clock
}

// NewDeclineInvitation builds the use case.
func NewDeclineInvitation(store ports.Store, clock ports.Clock) *DeclineInvitation {
	return &DeclineInvitation{store: store, clock: clock}
}

// Execute also accepts expired invitations that are still PENDING, which clears
// them from the pending badge.
func (uc *DeclineInvitation) Execute(ctx context.Context, input RespondInput) (*domain.Invitation, error) {
	repos := uc.store.Repos()
	inv, err := repos.Invitations.GetByID(ctx, input.InvitationID)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	if inv == nil {
		return nil, domerrors.NotFound("")
	}
	if !policy.CanRespondToInvitation(input.ActorID, inv) {
		return nil, domerrors.Forbidden("")
	}
	if !inv.Pending() {
		return nil, domerrors.Validation("Invitation has already been responded to")
	}
	now := uc.clock.Now()
	resolved, err := repos.Invitations.Resolve(ctx, inv.ID, domain.InvitationDeclined, now)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	if !resolved {
		return nil, domerrors.Validation("Invitation has already been responded to")
	}
	inv.Status = domain.InvitationDeclined
	inv.UpdatedAt = now
	return inv, nil
}
