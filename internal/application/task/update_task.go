package task

import (
	"context"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/access"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/policy"
)

const msgMutateForbidden = "Only the assignee or project owner can update this task"

// UpdateTaskInput replaces a task's editable fields.
type UpdateTaskInput struct {
	TaskID      domain.TaskID
	ProjectID   domain.ProjectID // from the route
	ActorID     domain.UserID
	Title       string
	Description *string
	Status      domain.TaskStatus
	AssigneeID  *domain.UserID
}

// UpdateTask edits a task. Assignee or project owner only.
type UpdateTask struct {
	store ports.Store
	clock ports.Clock
}

// NewUpdateTask builds the use case.
func NewUpdateTask(store ports.Store, clock ports.Clock) *UpdateTask {
	return &UpdateTask{store: store, clock: clock}
}

// UpdateTaskResult is the task after the change and its status before it.
type UpdateTaskResult struct {
	Task           *domain.Task
	PreviousStatus domain.TaskStatus
}

func (uc *UpdateTask) Execute(ctx context.Context, input UpdateTaskInput) (*UpdateTaskResult, error) {
	title, status, err := normalize(input.Title, input.Status, "")
	if err != nil {
		return nil, err
	}
	repos := uc.store.Repos()
	t, project, err := loadMutable(ctx, repos, input.TaskID, input.ProjectID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if err := requireAssignable(ctx, repos, project, input.AssigneeID); err != nil {
		return nil, err
	}
	previous := t.Status
	t.Title = title
	t.Description = trimOptional(input.Description)
	t.Status = status
	t.AssignedID = input.AssigneeID
	t.UpdatedAt = uc.clock.Now()
	if err := repos.Tasks.Update(ctx, t); err != nil {
		return nil, domerrors.Internal(err)
	}
	return &UpdateTaskResult{Task: t, PreviousStatus: previous}, nil
}

// loadMutable loads the task and its project and applies the checks shared by
// every edit path: the task exists, sits in the routed project, and the actor
// is its assignee or the project owner.
func loadMutable(ctx context.Context, repos ports.Repositories, taskID domain.TaskID, routeProject domain.ProjectID, actor domain.UserID) (*domain.Task, *domain.Project, error) {
	t, err := repos.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, domerrors.Internal(err)
	}
	if t == nil {
		return nil, nil, domerrors.NotFound("")
	}
	if t.ProjectID != routeProject {
		return nil, nil, domerrors.Forbidden("")
	}
	project, err := access.LoadProject(ctx, repos, t.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if !policy.CanMutateTask(actor, t, project) {
		return nil, nil, domerrors.Forbidden(msgMutateForbidden)
	}
	return t, project, nil
}
