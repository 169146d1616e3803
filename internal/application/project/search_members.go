package project

import (
	"context"
	"strings"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/access"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
)

// DefaultMemberSearchLimit caps assignment-picker results.
const DefaultMemberSearchLimit = 5

// SearchMembersInput is the project, the caller and the free-text query.
type SearchMembersInput struct {
	ProjectID domain.ProjectID
	ActorID   domain.UserID
	Query     string
	Limit     int
}

// SearchMembers finds project members a task can be assigned to.
type SearchMembers struct {
	store ports.Store
}

// NewSearchMembers builds the use case.
func NewSearchMembers(store ports.Store) *SearchMembers {
	return &SearchMembers{store: store}
}

// Execute matches email or name case-insensitively; an empty query matches every member.
func (uc *SearchMembers) Execute(ctx context.Context, input SearchMembersInput) ([]*domain.User, error) {
	limit := input.Limit
	if limit <= 0 || limit > DefaultMemberSearchLimit {
		limit = DefaultMemberSearchLimit
	}
	repos := uc.store.Repos()
	project, err := access.LoadProject(ctx, repos, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireProjectAccess(ctx, repos, project, input.ActorID); err != nil {
		return nil, err
	}
	query := strings.ToLower(strings.TrimSpace(input.Query))
	users, err := repos.Users.SearchProjectMembers(ctx, project.ID, query, limit)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	return users, nil
}
