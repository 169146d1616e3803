package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/persistence/db"
)

type TaskRepository struct {
	q *db.Queries
}

func NewTaskRepository(q *db.Queries) *TaskRepository {
	return &TaskRepository{q: q}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.q.CreateTask(ctx, db.CreateTaskParams{
		ID:          t.ID.UUID,
		Title:       t.Title,
		Description: textOf(t.Description),
		Status:      string(t.Status),
		ProjectID:   t.ProjectID.UUID,
		AssignedID:  uuidOf(t.AssignedID),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	})
}

func (r *TaskRepository) GetByID(ctx context.Context, taskID domain.TaskID) (*domain.Task, error) {
	t, err := r.q.GetTaskByID(ctx, taskID.UUID)
	if err != nil {
		return nil, noRows(err)
	}
	return dbTaskToDomain(t), nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.TaskWithAssignee, error) {
	rows, err := r.q.ListTasksByProject(ctx, projectID.UUID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.TaskWithAssignee, 0, len(rows))
	for _, row := range rows {
		item := &domain.TaskWithAssignee{Task: *dbTaskToDomain(row.Task)}
		if row.AssigneeID.Valid {
			item.Assignee = &domain.User{
				ID:        domain.NewUserID(row.AssigneeID.Bytes),
				Name:      row.AssigneeName.String,
				Email:     row.AssigneeEmail.String,
				CreatedAt: row.AssigneeCreatedAt.Time,
				UpdatedAt: row.AssigneeUpdatedAt.Time,
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	return r.q.UpdateTask(ctx, db.UpdateTaskParams{
		ID:          t.ID.UUID,
		Title:       t.Title,
		Description: textOf(t.Description),
		Status:      string(t.Status),
		AssignedID:  uuidOf(t.AssignedID),
		UpdatedAt:   t.UpdatedAt,
	})
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID domain.TaskID, status domain.TaskStatus, updatedAt time.Time) error {
	return r.q.UpdateTaskStatus(ctx, db.UpdateTaskStatusParams{ID: taskID.UUID, Status: string(status), UpdatedAt: updatedAt})
}

func (r *TaskRepository) Delete(ctx context.Context, taskID domain.TaskID) error {
	return r.q.DeleteTask(ctx, taskID.UUID)
}

func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID domain.ProjectID) error {
	return r.q.DeleteTasksByProject(ctx, projectID.UUID)
}

func dbTaskToDomain(t db.Task) *domain.Task {
	out := &domain.Task{
		ID:        domain.NewTaskID(t.ID),
		Title:     t.Title,
		Status:    domain.TaskStatus(t.Status),
		ProjectID: domain.NewProjectID(t.ProjectID),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	if t.Description.Valid {
		d := t.Description.String
		out.Description = &d
	}
	if t.AssignedID.Valid {
		id := domain.NewUserID(t.AssignedID.Bytes)
		out.AssignedID = &id
	}
	return out
}

func textOf(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func uuidOf(id *domain.UserID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: id.UUID, Valid: true}
}

var _ ports.TaskRepository = (*TaskRepository)(nil)
