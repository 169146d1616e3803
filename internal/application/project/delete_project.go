package project

import (
	"context"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/access"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/policy"
)

// DeleteProjectInput identifies the project and the caller.
type DeleteProjectInput struct {
	ProjectID domain.ProjectID
	ActorID   domain.UserID
}

// DeleteProject removes a project and everything hanging off it. Owner only.
type DeleteProject struct {
	store ports.Store
}

// NewDeleteProject builds the use case.
func NewDeleteProject(store ports.Store) *DeleteProject {
	return &DeleteProject{store: store}
}

// Execute deletes tasks, invitations and memberships, then the project, in one
// transaction. The ownership check reads inside the same transaction.
func (uc *DeleteProject) Execute(ctx context.Context, input DeleteProjectInput) (*domain.Project, error) {
	var deleted *domain.Project
	err := uc.store.WithinTx(ctx, func(r ports.Repositories) error {
		project, err := access.LoadProject(ctx, r, input.ProjectID)
		if err != nil {
			return err
		}
		if !policy.CanManageProject(input.ActorID, project) {
			return domerrors.Forbidden("")
		}
		if err := r.Tasks.DeleteByProject(ctx, project.ID); err != nil {
			return err
		}
		if err := r.Invitations.DeleteByProject(ctx, project.ID); err != nil {
			return err
		}
		if err := r.Memberships.DeleteByProject(ctx, project.ID); err != nil {
			return err
		}
		if err := r.Projects.Delete(ctx, project.ID); err != nil {
			return err
		}
		deleted = project
		return nil
	})
	if err != nil {
		return nil, access.Wrap(err)
	}
	return deleted, nil
}
