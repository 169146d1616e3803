package task

import (
	"context"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/access"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/policy"
)

// DeleteTaskInput identifies the task, its routed project and the caller.
type DeleteTaskInput struct {
	TaskID    domain.TaskID
	ProjectID domain.ProjectID
	ActorID   domain.UserID
}

// DeleteTask removes a task. Project owner only; assignees cannot delete.
type DeleteTask struct {
	store ports.Store
}

// NewDeleteTask builds the use case.
func NewDeleteTask(store ports.Store) *DeleteTask {
	return &DeleteTask{store: store}
}

func (uc *DeleteTask) Execute(ctx context.Context, input DeleteTaskInput) (*domain.Task, error) {
	repos := uc.store.Repos()
	t, err := repos.Tasks.GetByID(ctx, input.TaskID)
	if err != nil {
		return nil, domerrors.Internal(err)
	}
	if t == nil {
		return nil, domerrors.NotFound("")
	}
	if t.ProjectID != input.ProjectID {
		return nil, domerrors.Forbidden("Task does not belong to this project")
	}
	project, err := access.LoadProject(ctx, repos, t.ProjectID)
	if err != nil {
		return nil, err
	}
	if !policy.CanDeleteTask(input.ActorID, project) {
		return nil, domerrors.Forbidden("Only project owners can delete tasks")
	}
	if err := repos.Tasks.Delete(ctx, t.ID); err != nil {
		return nil, domerrors.Internal(err)
	}
	return t, nil
}
