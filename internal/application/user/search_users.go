package user

import (
	"context"
	"strings"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
)

// DefaultSearchLimit caps invite-picker results.
const DefaultSearchLimit = 5

type SearchUsersInput struct {
	ActorID domain.UserID
	Query   string
	Limit   int
}

// SearchUsers finds registered users to invite into a project.
type SearchUsers struct {
	store ports.Store
}

func NewSearchUsers(store ports.Store) *SearchUsers {
	return &SearchUsers{store: store}
}

// Execute matches email or name case-insensitively and never returns the
// caller. A blank query returns no users.
func (uc *SearchUsers) Execute(ctx context.Context, input SearchUsersInput) ([]*domain.User, error) {
	query := strings.ToLower(strings.TrimSpace(input.Query))
	if query == "" {
		return []*domain.User{}, nil
	}
	limit := input.Limit
	if limit <= 0 || limit > DefaultSearchLimit {
		limit = DefaultSearchLimit
	}
	users, err := uc.store.Repos().Users.Search(ctx, query, input.ActorID, limit)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}
