package invitation

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/access"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/policy"
)

// RespondInput identifies the invitation and the user answering it.
type RespondInput struct {
	InvitationID domain.InvitationID
	ActorID      domain.UserID
}

// AcceptInvitationResult is the resolved invitation and the new membership.
type AcceptInvitationResult struct {
	Invitation *domain.Invitation
	Membership *domain.Membership
}

// AcceptInvitation turns a pending invitation into a MEMBER membership.
type AcceptInvitation struct {
	store ports.Store
	clock ports.Clock
}

// NewAcceptInvitation builds the use case.
func NewAcceptInvitation(store ports.Store, clock ports.Clock) *AcceptInvitation {
	return &AcceptInvitation{store: store, clock: clock}
}

// Execute checks, in order: the invitation exists, is PENDING, has not expired,
// and belongs to the actor. The status change and the membership insert commit
// together or not at all.
func (uc *AcceptInvitation) Execute(ctx context.Context, input RespondInput) (*AcceptInvitationResult, error) {
	now := uc.clock.Now()
	var result *AcceptInvitationResult
	err := uc.store.WithinTx(ctx, func(r ports.Repositories) error {
		inv, err := r.Invitations.GetByID(ctx, input.InvitationID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domerrors.NotFound("")
		}
		if !inv.Pending() {
			return domerrors.Validation("Invitation has already been responded to")
		}
		if inv.Expired(now) {
			return domerrors.Validation("Invitation has expired")
		}
		if !policy.CanRespondToInvitation(input.ActorID, inv) {
			return domerrors.Forbidden("")
		}
		existing, err := r.Memberships.Get(ctx, inv.ProjectID, inv.InvitedUserID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domerrors.Validation("You are already a member of this project")
		}
		resolved, err := r.Invitations.Resolve(ctx, inv.ID, domain.InvitationAccepted, now)
		if err != nil {
			return err
		}
		if !resolved {
			return domerrors.Validation("Invitation has already been responded to")
		}
		membership := &domain.Membership{
			ID:        domain.NewMembershipID(uuid.New()),
			UserID:    inv.InvitedUserID,
			ProjectID: inv.ProjectID,
			Role:      domain.RoleMember,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.Memberships.Create(ctx, membership); err != nil {
			if errors.Is(err, ports.ErrDuplicate) {
				return domerrors.Validation("You are already a member of this project")
			}
			return err
		}
		inv.Status = domain.InvitationAccepted
		inv.UpdatedAt = now
		result = &AcceptInvitationResult{Invitation: inv, Membership: membership}
		return nil
	})
	if err != nil {
		return nil, access.Wrap(err)
	}
	return result, nil
}
