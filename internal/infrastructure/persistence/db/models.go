package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Session struct {
	ID        uuid.UUID
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Project struct {
	ID          uuid.UUID
	Name        string
	Description string
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Membership struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Task struct {
	ID          uuid.UUID
	Title       string
	Description pgtype.Text
	Status      string
	ProjectID   uuid.UUID
	AssignedID  pgtype.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Invitation struct {
	ID            uuid.UUID
	InvitedUserID uuid.UUID
	ProjectID     uuid.UUID
	InviterID     uuid.UUID
	Status        string
	ExpiresAt     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
