package postgres

import (
	"context"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/persistence/db"
)

type MembershipRepository struct {
	q *db.Queries
}

func NewMembershipRepository(q *db.Queries) *MembershipRepository {
	return &MembershipRepository{q: q}
}

// Create wraps ports.ErrDuplicate when the (user, project) pair already exists.
func (r *MembershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	err := r.q.CreateMembership(ctx, db.CreateMembershipParams{
		ID:        m.ID.UUID,
		UserID:    m.UserID.UUID,
		ProjectID: m.ProjectID.UUID,
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	})
	return duplicate(err, "membership")
}

func (r *MembershipRepository) Get(ctx context.Context, projectID domain.ProjectID, userID domain.UserID) (*domain.Membership, error) {
	m, err := r.q.GetMembership(ctx, db.GetMembershipParams{ProjectID: projectID.UUID, UserID: userID.UUID})
	if err != nil {
		return nil, noRows(err)
	}
	return &domain.Membership{
		ID:        domain.NewMembershipID(m.ID),
		UserID:    domain.NewUserID(m.UserID),
		ProjectID: domain.NewProjectID(m.ProjectID),
		Role:      domain.Role(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r *MembershipRepository) DeleteByProject(ctx context.Context, projectID domain.ProjectID) error {
	return r.q.DeleteMembershipsByProject(ctx, projectID.UUID)
}

var _ ports.MembershipRepository = (*MembershipRepository)(nil)
