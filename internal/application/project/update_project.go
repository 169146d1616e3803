package project

import (
	"context"
	"strings"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/access"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/policy"
)

// UpdateProjectInput carries the new name and description.
type UpdateProjectInput struct {
	ProjectID   domain.ProjectID
	ActorID     domain.UserID
	Name        string
	Description string
}

// UpdateProject renames a project. Owner only.
type UpdateProject struct {
	store ports.Store
	clock ports.Clock
}

// NewUpdateProject builds the use case.
func NewUpdateProject(store ports.Store, clock ports.Clock) *UpdateProject {
	return &UpdateProject{store: store, clock: clock}
}

func (uc *UpdateProject) Execute(ctx context.Context, input UpdateProjectInput) (*domain.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domerrors.Validation("", domerrors.FieldError{Path: "name", Message: "Project name is required"})
	}
	repos := uc.store.Repos()
	project, err := access.LoadProject(ctx, repos, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanManageProject(input.ActorID, project) {
		return nil, domerrors.Forbidden("")
	}
	project.Name = name
	project.Description = strings.TrimSpace(input.Description)
	project.UpdatedAt = uc.clock.Now()
	if err := repos.Projects.Update(ctx, project); err != nil {
		return nil, domerrors.Internal(err)
	}
	return project, nil
}
