package ports

import (
	"context"
	"errors"
	"time"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
)

// Lookups return (nil, nil) when the row does not exist.

// ErrDuplicate is wrapped by Create when a uniqueness constraint rejects the row.
var ErrDuplicate = errors.New("duplicate row")

// UserRepository reads users owned by the external auth service.
type UserRepository interface {
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
	// SearchProjectMembers returns members of projectID whose email or name
	// contains query (case-insensitive), at most limit rows.
	SearchProjectMembers(ctx context.Context, projectID domain.ProjectID, query string, limit int) ([]*domain.User, error)
	// Search returns users other than excludeID whose email or name contains
	// query (case-insensitive), ordered by name, at most limit rows.
	Search(ctx context.Context, query string, excludeID domain.UserID, limit int) ([]*domain.User, error)
}

// ProjectRepository defines persistence for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error)
	// ListForUser returns projects owned by userID or where userID holds a membership, newest first.
	ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, projectID domain.ProjectID) error
}

// MembershipRepository defines persistence for project memberships.
type MembershipRepository interface {
	Create(ctx context.Context, membership *domain.Membership) error
	Get(ctx context.Context, projectID domain.ProjectID, userID domain.UserID) (*domain.Membership, error)
	DeleteByProject(ctx context.Context, projectID domain.ProjectID) error
}

// TaskRepository defines persistence for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, taskID domain.TaskID) (*domain.Task, error)
	// ListByProject returns tasks joined with their assignee, newest first.
	ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.TaskWithAssignee, error)
	Update(ctx context.Context, task *domain.Task) error
	UpdateStatus(ctx context.Context, taskID domain.TaskID, status domain.TaskStatus, updatedAt time.Time) error
	Delete(ctx context.Context, taskID domain.TaskID) error
	DeleteByProject(ctx context.Context, projectID domain.ProjectID) error
}

// InvitationRepository defines persistence for invitations.
type InvitationRepository interface {
	Create(ctx context.Context, invitation *domain.Invitation) error
	GetByID(ctx context.Context, invitationID domain.InvitationID) (*domain.Invitation, error)
	// Resolve moves a PENDING invitation to status. It reports false, without
	// writing, when the invitation is no longer PENDING.
	Resolve(ctx context.Context, invitationID domain.InvitationID, status domain.InvitationStatus, at time.Time) (bool, error)
	// ListForUser returns invitations addressed to userID with project and inviter, newest first.
	ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.InvitationWithDetails, error)
	// HasPending reports whether userID has any PENDING invitation, expired or not.
	HasPending(ctx context.Context, userID domain.UserID) (bool, error)
	// FindPending returns the newest PENDING invitation for (projectID, userID).
	FindPending(ctx context.Context, projectID domain.ProjectID, userID domain.UserID) (*domain.Invitation, error)
	DeleteByProject(ctx context.Context, projectID domain.ProjectID) error
	// DeleteResolvedBefore removes ACCEPTED and DECLINED invitations last
	// updated before cutoff. PENDING rows are never touched.
	DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Repositories is one consistent view of the store: either the shared pool or a
// single transaction.
type Repositories struct {
	Users       UserRepository
	Projects    ProjectRepository
	Memberships MembershipRepository
	Tasks       TaskRepository
	Invitations InvitationRepository
}

// Store hands out repositories and runs multi-statement units atomically.
type Store interface {
	Repos() Repositories
	// WithinTx runs fn in one transaction; any error from fn rolls everything back.
	WithinTx(ctx context.Context, fn func(Repositories) error) error
}

// Clock returns the current time. Nil means time.Now.
type Clock func() time.Time

// Now returns the clock's time, falling back to time.Now for a nil clock.
func (c Clock) Now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
