package project

import (
	"context"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/access"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
)

// GetProjectInput identifies the project and the caller.
type GetProjectInput struct {
	ProjectID domain.ProjectID
	ActorID   domain.UserID
}

// GetProject looks a project up for one of its members.
type GetProject struct {
	store ports.Store
}

// NewGetProject builds the use case.
func NewGetProject(store ports.Store) *GetProject {
	return &GetProject{store: store}
}

// Execute returns (nil, nil) when the project does not exist; the caller decides
// whether that is a 404. Non-members get a forbidden error.
func (uc *GetProject) Execute(ctx context.Context, input GetProjectInput) (*domain.Project, error) {
	repos := uc.store.Repos()
	project, err := repos.Projects.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	if project == nil {
		return nil, nil
	}
	if err := access.RequireProjectAccess(ctx, repos, project, input.ActorID); err != nil {
		return nil, err
	}
	return project, nil
}
