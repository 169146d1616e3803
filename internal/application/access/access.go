// Package access loads the state an authorization decision needs.
package access

import (
	"context"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/policy"
)

// LoadProject returns the project or a not-found error.
func LoadProject(ctx context.Context, repos ports.Repositories, projectID domain.ProjectID) (*domain.Project, error) {
	project, err := repos.Projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	if project == nil {
		return nil, domerrors.NotFound("")
	}
	return project, nil
}

// RequireProjectAccess fails with forbidden unless actor owns or is a member of project.
func RequireProjectAccess(ctx context.Context, repos ports.Repositories, project *domain.Project, actor domain.UserID) error {
	if policy.CanManageProject(actor, project) {
		return nil
	}
	membership, err := repos.Memberships.Get(ctx, project.ID, actor)
	if err != nil {
		return domerrors.Internal(err)
	}
	if !policy.CanAccessProject(actor, project, membership) {
		return domerrors.Forbidden("")
	}
	return nil
}

// IsMember reports whether userID owns or holds a membership on project.
func IsMember(ctx context.Context, repos ports.Repositories, project *domain.Project, userID domain.UserID) (bool, error) {
	if project.OwnerID == userID {
		return true, nil
	}
	membership, err := repos.Memberships.Get(ctx, project.ID, userID)
	if err != nil {
		return false, domerrors.Internal(err)
	}
	return membership != nil, nil
}

// Wrap passes classified errors through and turns everything else into an internal error.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return domerrors.As(err)
}
