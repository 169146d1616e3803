package project

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/access"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
)

// CreateProjectInput is the new project's owner and fields.
type CreateProjectInput struct {
	OwnerID     domain.UserID
	Name        string
	Description string
}

// CreateProject creates a project together with its OWNER membership.
type CreateProject struct {
	store ports.Store
	clock ports.Clock
}

// NewCreateProject builds the use case.
func NewCreateProject(store ports.Store, clock ports.Clock) *CreateProject {
	return &CreateProject{store: store, clock: clock}
}

// Execute inserts the project and the owner membership in one transaction.
func (uc *CreateProject) Execute(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domerrors.Validation("", domerrors.FieldError{Path: "name", Message: "Project name is required"})
	}
	now := uc.clock.Now()
	project := &domain.Project{
		ID:          domain.NewProjectID(uuid.New()),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		OwnerID:     input.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	owner := &domain.Membership{
		ID:        domain.NewMembershipID(uuid.New()),
		UserID:    input.OwnerID,
		ProjectID: project.ID,
		Role:      domain.RoleOwner,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.store.WithinTx(ctx, func(r ports.Repositories) error {
		if err := r.Projects.Create(ctx, project); err != nil {
			return err
		}
		return r.Memberships.Create(ctx, owner)
	})
	if err != nil {
		return nil, access.Wrap(err)
	}
	return project, nil
}
