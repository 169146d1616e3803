package task

import (
	"context"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	domerrors "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain/errors"
)

// UpdateStatusInput moves a card to another column.
type UpdateStatusInput struct {
	TaskID    domain.TaskID
	ProjectID domain.ProjectID // from the route
	ActorID   domain.UserID
	Status    domain.TaskStatus
}

// UpdateTaskStatus is the drag-and-drop path. It applies the same authorization
// as UpdateTask and changes nothing but the status.
type UpdateTaskStatus struct {
	store ports.Store
	clock ports.Clock
}

// NewUpdateTaskStatus builds the use case.
func NewUpdateTaskStatus(store ports.Store, clock ports.Clock) *UpdateTaskStatus {
	return &UpdateTaskStatus{store: store, clock: clock}
}

func (uc *UpdateTaskStatus) Execute(ctx context.Context, input UpdateStatusInput) (*UpdateTaskResult, error) {
	if !input.Status.Valid() {
		return nil, domerrors.Validation("", domerrors.FieldError{Path: "status", Message: "Invalid task status"})
	}
	repos := uc.store.Repos()
	t, _, err := loadMutable(ctx, repos, input.TaskID, input.ProjectID, input.ActorID)
	if err != nil {
		return nil, err
	}
	previous := t.Status
	now := uc.clock.Now()
	if err := repos.Tasks.UpdateStatus(ctx, t.ID, input.Status, now); err != nil {
		return nil, domerrors.Internal(err)
	}
	t.Status = input.Status
	t.UpdatedAt = now
	return &UpdateTaskResult{Task: t, PreviousStatus: previous}, nil
}
