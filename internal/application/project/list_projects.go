package project

import (
	"context"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
)

// ListProjects returns the projects a user owns or belongs to, newest first.
type ListProjects struct {
	store ports.Store
}

// NewListProjects builds the use case.
func NewListProjects(store ports.Store) *ListProjects {
	return &ListProjects{store: store}
}

func (uc *ListProjects) Execute(ctx context.Context, userID domain.UserID) ([]*domain.Project, error) {
	projects, err := uc.store.Repos().Projects.ListForUser(ctx, userID)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	return projects, nil
}
