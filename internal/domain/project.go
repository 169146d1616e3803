package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectID is a value object for project identity.
type ProjectID struct{ uuid.UUID }

// NewProjectID creates a new ProjectID from uuid.
func NewProjectID(id uuid.UUID) ProjectID { return ProjectID{UUID: id} }

// ParseProjectID parses the canonical string form.
func ParseProjectID(s string) (ProjectID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ProjectID{}, err
	}
	return NewProjectID(id), nil
}

// String returns the canonical string form.
func (p ProjectID) String() string { return p.UUID.String() }

// Project is the aggregate root for tasks and memberships. OwnerID never changes.
type Project struct {
	ID          ProjectID
	Name        string
	Description string
	OwnerID     UserID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
