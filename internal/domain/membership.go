package domain

import (
	"time"

	"github.com/google/uuid"
)

// MembershipID is a value object for membership identity.
type MembershipID struct{ uuid.UUID }

// NewMembershipID creates a new MembershipID from uuid.
func NewMembershipID(id uuid.UUID) MembershipID { return MembershipID{UUID: id} }

// String returns the canonical string form.
func (m MembershipID) String() string { return m.UUID.String() }

// Role is a member's role on a project.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleMember Role = "MEMBER"
)

// Membership links a user to a project with a role. At most one per (user, project).
type Membership struct {
	ID        MembershipID
	UserID    UserID
	ProjectID ProjectID
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
