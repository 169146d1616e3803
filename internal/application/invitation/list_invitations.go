package invitation

import (
	"context"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
)

// ListInvitations returns a user's invitations, newest first.
type ListInvitations struct {
	store ports.Store
	clock ports.Clock
}

// NewListInvitations builds the use case.
func NewListInvitations(store ports.Store, clock ports.Clock) *ListInvitations {
	return &ListInvitations{store: store, clock: clock}
}

// Execute reports each invitation's effective status, so a lapsed PENDING one reads as EXPIRED.
func (uc *ListInvitations) Execute(ctx context.Context, userID domain.UserID) ([]*domain.InvitationWithDetails, error) {
	list, err := uc.store.Repos().Invitations.ListForUser(ctx, userID)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	now := uc.clock.Now()
	for _, inv := range list {
		inv.Status = inv.EffectiveStatus(now)
	}
	return list, nil
}

// HasPendingInvitation backs the notification badge.
type HasPendingInvitation struct {
	store ports.Store
}

// NewHasPendingInvitation builds the use case.
func NewHasPendingInvitation(store ports.Store) *HasPendingInvitation {
	return &HasPendingInvitation{store: store}
}

// Execute ignores expiry: an expired invitation counts until someone resolves it.
func (uc *HasPendingInvitation) Execute(ctx context.Context, userID domain.UserID) (bool, error) {
	ok, err := uc.store.Repos().Invitations.HasPending(ctx, userID)
	if err != nil {
		return false, domerrors.Internal(err)
	}
	return ok, nil
}
