package invitation

import (
	"context"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/access"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/policy"
)

// CreateInvitationInput names who invites whom to which project.
type CreateInvitationInput struct {
	InviterID     domain.UserID
	ProjectID     domain.ProjectID
	InvitedUserID domain.UserID
}

// CreateInvitationResult carries what the notification job needs.
type CreateInvitationResult struct {
	Invitation  *domain.Invitation
	Project     *domain.Project
	InvitedUser *domain.User
}

// CreateInvitation opens a PENDING invitation valid for domain.InvitationTTL.
type CreateInvitation struct {
	store ports.Store
	clock ports.Clock
}

// NewCreateInvitation builds the use case.
func NewCreateInvitation(store ports.Store, clock ports.Clock) *CreateInvitation {
	return &CreateInvitation{store: store, clock: clock}
}

// Execute requires the inviter to own the project. The invited user must exist,
// must not already be a member and must not hold a live pending invitation.
func (uc *CreateInvitation) Execute(ctx context.Context, input CreateInvitationInput) (*CreateInvitationResult, error) {
	repos := uc.store.Repos()
	project, err := access.LoadProject(ctx, repos, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanManageProject(input.InviterID, project) {
		return nil, domerrors.Forbidden("Only the project owner can invite members")
	}
	if input.InvitedUserID == input.InviterID {
		return nil, domerrors.Validation("", domerrors.FieldError{Path: "invitedUserId", Message: "You can't invite yourself"})
	}
	invited, err := repos.Users.GetByID(ctx, input.InvitedUserID)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	if invited == nil {
		return nil, domerrors.NotFound("Invited user was not found")
	}
	member, err := access.IsMember(ctx, repos, project, invited.ID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, domerrors.Validation("", domerrors.FieldError{Path: "invitedUserId", Message: "User is already a member of this project"})
	}
	now := uc.clock.Now()
	existing, err := repos.Invitations.FindPending(ctx, project.ID, invited.ID)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	if existing != nil && !existing.Expired(now) {
		return nil, domerrors.Validation("", domerrors.FieldError{Path: "invitedUserId", Message: "User already has a pending invitation to this project"})
	}
	inv := domain.NewInvitation(input.InviterID, invited.ID, project.ID, now)
	if err := repos.Invitations.Create(ctx, inv); err != nil {
		return nil, domerrors.Internal(err)
	}
	return &CreateInvitationResult{Invitation: inv, Project: project, InvitedUser: invited}, nil
}
