package task

import (
	"context"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/access"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
)

// ListTasksInput identifies the board and the caller.
type ListTasksInput struct {
	ProjectID domain.ProjectID
	ActorID   domain.UserID
}

// ListTasks returns a project's board, newest first.
type ListTasks struct {
	store ports.Store
}

// NewListTasks builds the use case.
func NewListTasks(store ports.Store) *ListTasks {
	return &ListTasks{store: store}
}

func (uc *ListTasks) Execute(ctx context.Context, input ListTasksInput) ([]*domain.TaskWithAssignee, error) {
	repos := uc.store.Repos()
	project, err := access.LoadProject(ctx, repos, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireProjectAccess(ctx, repos, project, input.ActorID); err != nil {
		return nil, err
	}
	tasks, err := repos.Tasks.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	return tasks, nil
}
