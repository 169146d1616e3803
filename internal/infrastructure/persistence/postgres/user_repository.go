package postgres

import (
	"context"
	"strings"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/persistence/db"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type UserRepository struct {
	q *db.Queries
}

func NewUserRepository(q *db.Queries) *UserRepository {
	return &UserRepository{q: q}
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	u, err := r.q.GetUserByID(ctx, userID.UUID)
	if err != nil {
		return nil, noRows(err)
	}
	return dbUserToDomain(u), nil
}

// SearchProjectMembers treats query as literal text: LIKE wildcards in it are escaped.
func (r *UserRepository) SearchProjectMembers(ctx context.Context, projectID domain.ProjectID, query string, limit int) ([]*domain.User, error) {
	rows, err := r.q.SearchProjectMembers(ctx, db.SearchProjectMembersParams{
		ProjectID: projectID.UUID,
		Pattern:   "%" + likeEscaper.Replace(query) + "%",
		Limit:     int32(limit),
	})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.User, 0, len(rows))
	for _, u := range rows {
		out = append(out, dbUserToDomain(u))
	}
	return out, nil
}

// Search escapes LIKE wildcards in query like SearchProjectMembers.
func (r *UserRepository) Search(ctx context.Context, query string, excludeID domain.UserID, limit int) ([]*domain.User, error) {
	rows, err := r.q.SearchUsers(ctx, db.SearchUsersParams{
		ExcludeID: excludeID.UUID,
		Pattern:   "%" + likeEscaper.Replace(query) + "%",
		Limit:     int32(limit),
	})
	if err != nil {
		return nil, err
	}
	out := make([]*domain.User, 0, len(rows))
	for _, u := range rows {
		out = append(out, dbUserToDomain(u))
	}
	return out, nil
}

func dbUserToDomain(u db.User) *domain.User {
	return &domain.User{
		ID:        domain.NewUserID(u.ID),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

var _ ports.UserRepository = (*UserRepository)(nil)
