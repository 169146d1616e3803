package postgres

import (
	"context"
	"time"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/persistence/db"
)

type InvitationRepository struct {
	q *db.Queries
}

func NewInvitationRepository(q *db.Queries) *InvitationRepository {
	return &InvitationRepository{q: q}
}

func (r *InvitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	return r.q.CreateInvitation(ctx, db.CreateInvitationParams{
		ID:            inv.ID.UUID,
		InvitedUserID: inv.InvitedUserID.UUID,
		ProjectID:     inv.ProjectID.UUID,
		InviterID:     inv.InviterID.UUID,
		Status:        string(inv.Status),
		ExpiresAt:     inv.ExpiresAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	})
}

func (r *InvitationRepository) GetByID(ctx context.Context, invitationID domain.InvitationID) (*domain.Invitation, error) {
	inv, err := r.q.GetInvitationByID(ctx, invitationID.UUID)
	if err != nil {
		return nil, noRows(err)
	}
	return dbInvitationToDomain(inv), nil
}

// Resolve relies on the row lock taken by UPDATE: a concurrent resolver blocks,
// then re-checks status and changes nothing.
func (r *InvitationRepository) Resolve(ctx context.Context, invitationID domain.InvitationID, status domain.InvitationStatus, at time.Time) (bool, error) {
	n, err := r.q.ResolveInvitation(ctx, db.ResolveInvitationParams{ID: invitationID.UUID, Status: string(status), UpdatedAt: at})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *InvitationRepository) ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.InvitationWithDetails, error) {
	rows, err := r.q.ListInvitationsForUser(ctx, userID.UUID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.InvitationWithDetails, 0, len(rows))
	for _, row := range rows {
		out = append(out, &domain.InvitationWithDetails{
			Invitation: *dbInvitationToDomain(row.Invitation),
			Project:    *dbProjectToDomain(row.Project),
			Inviter:    *dbUserToDomain(row.Inviter),
		})
	}
	return out, nil
}

func (r *InvitationRepository) HasPending(ctx context.Context, userID domain.UserID) (bool, error) {
	return r.q.HasPendingInvitation(ctx, userID.UUID)
}

func (r *InvitationRepository) FindPending(ctx context.Context, projectID domain.ProjectID, userID domain.UserID) (*domain.Invitation, error) {
	inv, err := r.q.FindPendingInvitation(ctx, db.FindPendingInvitationParams{ProjectID: projectID.UUID, InvitedUserID: userID.UUID})
	if err != nil {
		return nil, noRows(err)
	}
	return dbInvitationToDomain(inv), nil
}

func (r *InvitationRepository) DeleteByProject(ctx context.Context, projectID domain.ProjectID) error {
	return r.q.DeleteInvitationsByProject(ctx, projectID.UUID)
}

func (r *InvitationRepository) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.q.DeleteResolvedInvitationsBefore(ctx, cutoff)
}

func dbInvitationToDomain(inv db.Invitation) *domain.Invitation {
	return &domain.Invitation{
		ID:            domain.NewInvitationID(inv.ID),
		InvitedUserID: domain.NewUserID(inv.InvitedUserID),
		ProjectID:     domain.NewProjectID(inv.ProjectID),
		InviterID:     domain.NewUserID(inv.InviterID),
		Status:        domain.InvitationStatus(inv.Status),
		ExpiresAt:     inv.ExpiresAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

var _ ports.InvitationRepository = (*InvitationRepository)(nil)
