package handlers

import (
	"time"

	"github.com/samber/lo"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
)

// ProjectResponse is the JSON shape for a project.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserResponse is the public part of a user.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TaskResponse is the JSON shape for a task; Assignee is only set on reads.
type TaskResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	Status      string        `json:"status"`
	ProjectID   string        `json:"projectId"`
	AssignedID  *string       `json:"assignedId"`
	Assignee    *UserResponse `json:"assignee,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// MembershipResponse is the JSON shape for a membership.
type MembershipResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
	Role      string `json:"role"`
}

// InvitationResponse is the JSON shape for an invitation. Status is the
// effective status on reads.
type InvitationResponse struct {
	ID            string           `json:"id"`
	InvitedUserID string           `json:"invitedUserId"`
	ProjectID     string           `json:"projectId"`
	InviterID     string           `json:"inviterId"`
	Status        string           `json:"status"`
	ExpiresAt     time.Time        `json:"expiresAt"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
	Project       *ProjectResponse `json:"project,omitempty"`
	Inviter       *UserResponse    `json:"inviter,omitempty"`
}

func toProject(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID.String(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProjects(list []*domain.Project) []ProjectResponse {
	return lo.Map(list, func(p *domain.Project, _ int) ProjectResponse { return toProject(p) })
}

func toUser(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID.String(), Name: u.Name, Email: u.Email}
}

func toUsers(list []*domain.User) []UserResponse {
	return lo.Map(list, func(u *domain.User, _ int) UserResponse { return toUser(u) })
}

func toTask(t *domain.Task) TaskResponse {
	out := TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		ProjectID:   t.ProjectID.String(),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedID != nil {
		out.AssignedID = lo.ToPtr(t.AssignedID.String())
	}
	return out
}

func toTasks(list []*domain.TaskWithAssignee) []TaskResponse {
	return lo.Map(list, func(t *domain.TaskWithAssignee, _ int) TaskResponse {
		out := toTask(&t.Task)
		if t.Assignee != nil {
			out.Assignee = lo.ToPtr(toUser(t.Assignee))
		}
		return out
	})
}

func toMembership(m *domain.Membership) MembershipResponse {
	return MembershipResponse{
		ID:        m.ID.String(),
		UserID:    m.UserID.String(),
		ProjectID: m.ProjectID.String(),
		Role:      string(m.Role),
	}
}

func toInvitation(inv *domain.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:            inv.ID.String(),
		InvitedUserID: inv.InvitedUserID.String(),
		ProjectID:     inv.ProjectID.String(),
		InviterID:     inv.InviterID.String(),
		Status:        string(inv.Status),
		ExpiresAt:     inv.ExpiresAt,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func toInvitations(list []*domain.InvitationWithDetails) []InvitationResponse {
	return lo.Map(list, func(inv *domain.InvitationWithDetails, _ int) InvitationResponse {
		out := toInvitation(&inv.Invitation)
		out.Project = lo.ToPtr(toProject(&inv.Project))
		out.Inviter = lo.ToPtr(toUser(&inv.Inviter))
		return out
	})
}
