package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskID is a value object for task identity.
type TaskID struct{ uuid.UUID }

// NewTaskID creates a new TaskID from uuid.
func NewTaskID(id uuid.UUID) TaskID { return TaskID{UUID: id} }

// ParseTaskID parses the canonical string form.
func ParseTaskID(s string) (TaskID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TaskID{}, err
	}
	return NewTaskID(id), nil
}

// String returns the canonical string form.
func (t TaskID) String() string { return t.UUID.String() }

// TaskStatus is a kanban column. Any status may move to any other.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskDone:
		return true
	}
	return false
}

// Task belongs to exactly one project for its whole life.
type Task struct {
	ID          TaskID
	Title       string
	Description *string
	Status      TaskStatus
	ProjectID   ProjectID
	AssignedID  *UserID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAssignedTo reports whether userID is the task's assignee.
func (t *Task) IsAssignedTo(userID UserID) bool {
	return t.AssignedID != nil && *t.AssignedID == userID
}

// TaskWithAssignee is a task joined with its (optional) assignee.
type TaskWithAssignee struct {
	Task
	Assignee *User
}
