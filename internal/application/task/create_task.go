package task

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/access"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
)

// CreateTaskInput is a new card on a project's board. Status defaults to TODO.
type CreateTaskInput struct {
	ProjectID   domain.ProjectID
	ActorID     domain.UserID
	Title       string
	Description *string
	Status      domain.TaskStatus
	AssigneeID  *domain.UserID
}

// CreateTask adds a task to a project.
type CreateTask struct {
	store ports.Store
	clock ports.Clock
}

// NewCreateTask builds the use case.
func NewCreateTask(store ports.Store, clock ports.Clock) *CreateTask {
	return &CreateTask{store: store, clock: clock}
}

// Execute requires the actor to own or belong to the project; a given assignee
// must belong to it too.
func (uc *CreateTask) Execute(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	title, status, err := normalize(input.Title, input.Status, domain.TaskTodo)
	if err != nil {
		return nil, err
	}
	repos := uc.store.Repos()
	project, err := access.LoadProject(ctx, repos, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireProjectAccess(ctx, repos, project, input.ActorID); err != nil {
		return nil, err
	}
	if err := requireAssignable(ctx, repos, project, input.AssigneeID); err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	t := &domain.Task{
		ID:          domain.NewTaskID(uuid.New()),
		Title:       title,
		Description: trimOptional(input.Description),
		Status:      status,
		ProjectID:   project.ID,
		AssignedID:  input.AssigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repos.Tasks.Create(ctx, t); err != nil {
		return nil, domerrors.Internal(err)
	}
	return t, nil
}

func normalize(title string, status, fallback domain.TaskStatus) (string, domain.TaskStatus, error) {
	var fields []domerrors.FieldError
	title = strings.TrimSpace(title)
	if title == "" {
		fields = append(fields, domerrors.FieldError{Path: "title", Message: "Task name is required"})
	}
	if status == "" {
		status = fallback
	}
	if !status.Valid() {
		fields = append(fields, domerrors.FieldError{Path: "status", Message: "Invalid task status"})
	}
	if len(fields) > 0 {
		return "", "", domerrors.Validation("", fields...)
	}
	return title, status, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// requireAssignable fails with a validation error when assignee is not a member of project.
func requireAssignable(ctx context.Context, repos ports.Repositories, project *domain.Project, assignee *domain.UserID) error {
	if assignee == nil {
		return nil
	}
	ok, err := access.IsMember(ctx, repos, project, *assignee)
	if err != nil {
		return err
	}
	if !ok {
		return domerrors.Validation("", domerrors.FieldError{Path: "assigneeId", Message: "Assignee must be a member of this project"})
	}
	return nil
}
