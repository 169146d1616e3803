package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
)

type userRepo struct{ v view }

func (r *userRepo) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	var out *domain.User
	err := r.v.read(ctx, func(s *state) error {
		if u, ok := s.users[userID]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *userRepo) SearchProjectMembers(ctx context.Context, projectID domain.ProjectID, query string, limit int) ([]*domain.User, error) {
	q := strings.ToLower(query)
	var out []*domain.User
	err := r.v.read(ctx, func(s *state) error {
		members := lo.Filter(lo.Values(s.memberships), func(m domain.Membership, _ int) bool {
			return m.ProjectID == projectID
		})
		sort.Slice(members, func(i, j int) bool { return members[i].CreatedAt.Before(members[j].CreatedAt) })
		for _, m := range members {
			u, ok := s.users[m.UserID]
			if !ok {
				continue
			}
			if q != "" && !strings.Contains(strings.ToLower(u.Email), q) && !strings.Contains(strings.ToLower(u.Name), q) {
				continue
			}
			out = append(out, &u)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) Search(ctx context.Context, query string, excludeID domain.UserID, limit int) ([]*domain.User, error) {
	q := strings.ToLower(query)
	var out []*domain.User
	err := r.v.read(ctx, func(s *state) error {
		users := lo.Filter(lo.Values(s.users), func(u domain.User, _ int) bool {
			if u.ID == excludeID {
				return false
			}
			return strings.Contains(strings.ToLower(u.Email), q) || strings.Contains(strings.ToLower(u.Name), q)
		})
		sort.Slice(users, func(i, j int) bool {
			if users[i].Name != users[j].Name {
				return users[i].Name < users[j].Name
			}
			return users[i].Email < users[j].Email
		})
		for i := range users {
			out = append(out, &users[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

type projectRepo struct{ v view }

func (r *projectRepo) Create(ctx context.Context, project *domain.Project) error {
	return r.v.write(ctx, func(s *state) error {
		if _, ok := s.projects[project.ID]; ok {
			return fmt.Errorf("memory: project %s already exists", project.ID)
		}
		s.projects[project.ID] = *project
		return nil
	})
}

func (r *projectRepo) GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error) {
	var out *domain.Project
	err := r.v.read(ctx, func(s *state) error {
		if p, ok := s.projects[projectID]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *projectRepo) ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.Project, error) {
	var out []*domain.Project
	err := r.v.read(ctx, func(s *state) error {
		joined := make(map[domain.ProjectID]bool)
		for _, m := range s.memberships {
			if m.UserID == userID {
				joined[m.ProjectID] = true
			}
		}
		for _, p := range s.projects {
			if p.OwnerID == userID || joined[p.ID] {
				p := p
				out = append(out, &p)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func (r *projectRepo) Update(ctx context.Context, project *domain.Project) error {
	return r.v.write(ctx, func(s *state) error {
		current, ok := s.projects[project.ID]
		if !ok {
			return nil
		}
		current.Name = project.Name
		current.Description = project.Description
		current.UpdatedAt = project.UpdatedAt
		s.projects[project.ID] = current
		return nil
	})
}

// Delete removes the project and, like the foreign keys in postgres, every row
// that references it.
func (r *projectRepo) Delete(ctx context.Context, projectID domain.ProjectID) error {
	return r.v.write(ctx, func(s *state) error {
		delete(s.projects, projectID)
		deleteMemberships(s, projectID)
		deleteTasks(s, projectID)
		deleteInvitations(s, projectID)
		return nil
	})
}

type membershipRepo struct{ v view }

func (r *membershipRepo) Create(ctx context.Context, membership *domain.Membership) error {
	return r.v.write(ctx, func(s *state) error {
		if _, ok := s.projects[membership.ProjectID]; !ok {
			return fmt.Errorf("memory: membership references missing project %s", membership.ProjectID)
		}
		for _, m := range s.memberships {
			if m.UserID == membership.UserID && m.ProjectID == membership.ProjectID {
				return fmt.Errorf("memory: membership %s/%s: %w", m.ProjectID, m.UserID, ports.ErrDuplicate)
			}
		}
		s.memberships[membership.ID] = *membership
		return nil
	})
}

func (r *membershipRepo) Get(ctx context.Context, projectID domain.ProjectID, userID domain.UserID) (*domain.Membership, error) {
	var out *domain.Membership
	err := r.v.read(ctx, func(s *state) error {
		for _, m := range s.memberships {
			if m.ProjectID == projectID && m.UserID == userID {
				m := m
				out = &m
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *membershipRepo) DeleteByProject(ctx context.Context, projectID domain.ProjectID) error {
	return r.v.write(ctx, func(s *state) error {
		deleteMemberships(s, projectID)
		return nil
	})
}

func deleteMemberships(s *state, projectID domain.ProjectID) {
	for id, m := range s.memberships {
		if m.ProjectID == projectID {
			delete(s.memberships, id)
		}
	}
}

type taskRepo struct{ v view }

func (r *taskRepo) Create(ctx context.Context, task *domain.Task) error {
	return r.v.write(ctx, func(s *state) error {
		if _, ok := s.projects[task.ProjectID]; !ok {
			return fmt.Errorf("memory: task references missing project %s", task.ProjectID)
		}
		s.tasks[task.ID] = *task
		return nil
	})
}

func (r *taskRepo) GetByID(ctx context.Context, taskID domain.TaskID) (*domain.Task, error) {
	var out *domain.Task
	err := r.v.read(ctx, func(s *state) error {
		if t, ok := s.tasks[taskID]; ok {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *taskRepo) ListByProject(ctx context.Context, projectID domain.ProjectID) ([]*domain.TaskWithAssignee, error) {
	var out []*domain.TaskWithAssignee
	err := r.v.read(ctx, func(s *state) error {
		for _, t := range s.tasks {
			if t.ProjectID != projectID {
				continue
			}
			item := &domain.TaskWithAssignee{Task: t}
			if t.AssignedID != nil {
				if u, ok := s.users[*t.AssignedID]; ok {
					item.Assignee = &u
				}
			}
			out = append(out, item)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func (r *taskRepo) Update(ctx context.Context, task *domain.Task) error {
	return r.v.write(ctx, func(s *state) error {
		current, ok := s.tasks[task.ID]
		if !ok {
			return nil
		}
		current.Title = task.Title
		current.Description = task.Description
		current.Status = task.Status
		current.AssignedID = task.AssignedID
		current.UpdatedAt = task.UpdatedAt
		s.tasks[task.ID] = current
		return nil
	})
}

func (r *taskRepo) UpdateStatus(ctx context.Context, taskID domain.TaskID, status domain.TaskStatus, updatedAt time.Time) error {
	return r.v.write(ctx, func(s *state) error {
		current, ok := s.tasks[taskID]
		if !ok {
			return nil
		}
		current.Status = status
		current.UpdatedAt = updatedAt
		s.tasks[taskID] = current
		return nil
	})
}

func (r *taskRepo) Delete(ctx context.Context, taskID domain.TaskID) error {
	return r.v.write(ctx, func(s *state) error {
		delete(s.tasks, taskID)
		return nil
	})
}

func (r *taskRepo) DeleteByProject(ctx context.Context, projectID domain.ProjectID) error {
	return r.v.write(ctx, func(s *state) error {
		deleteTasks(s, projectID)
		return nil
	})
}

func deleteTasks(s *state, projectID domain.ProjectID) {
	for id, t := range s.tasks {
		if t.ProjectID == projectID {
			delete(s.tasks, id)
		}
	}
}

type invitationRepo struct{ v view }

func (r *invitationRepo) Create(ctx context.Context, invitation *domain.Invitation) error {
	return r.v.write(ctx, func(s *state) error {
		if _, ok := s.projects[invitation.ProjectID]; !ok {
			return fmt.Errorf("memory: invitation references missing project %s", invitation.ProjectID)
		}
		s.invitations[invitation.ID] = *invitation
		return nil
	})
}

func (r *invitationRepo) GetByID(ctx context.Context, invitationID domain.InvitationID) (*domain.Invitation, error) {
	var out *domain.Invitation
	err := r.v.read(ctx, func(s *state) error {
		if inv, ok := s.invitations[invitationID]; ok {
			out = &inv
		}
		return nil
	})
	return out, err
}

func (r *invitationRepo) Resolve(ctx context.Context, invitationID domain.InvitationID, status domain.InvitationStatus, at time.Time) (bool, error) {
	var resolved bool
	err := r.v.write(ctx, func(s *state) error {
		inv, ok := s.invitations[invitationID]
		if !ok || inv.Status != domain.InvitationPending {
			return nil
		}
		inv.Status = status
		inv.UpdatedAt = at
		s.invitations[invitationID] = inv
		resolved = true
		return nil
	})
	return resolved, err
}

func (r *invitationRepo) ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.InvitationWithDetails, error) {
	var out []*domain.InvitationWithDetails
	err := r.v.read(ctx, func(s *state) error {
		for _, inv := range s.invitations {
			if inv.InvitedUserID != userID {
				continue
			}
			out = append(out, &domain.InvitationWithDetails{
				Invitation: inv,
				Project:    s.projects[inv.ProjectID],
				Inviter:    s.users[inv.InviterID],
			})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func (r *invitationRepo) HasPending(ctx context.Context, userID domain.UserID) (bool, error) {
	var found bool
	err := r.v.read(ctx, func(s *state) error {
		found = lo.SomeBy(lo.Values(s.invitations), func(inv domain.Invitation) bool {
			return inv.InvitedUserID == userID && inv.Status == domain.InvitationPending
		})
		return nil
	})
	return found, err
}

func (r *invitationRepo) FindPending(ctx context.Context, projectID domain.ProjectID, userID domain.UserID) (*domain.Invitation, error) {
	var out *domain.Invitation
	err := r.v.read(ctx, func(s *state) error {
		for _, inv := range s.invitations {
			if inv.ProjectID != projectID || inv.InvitedUserID != userID || inv.Status != domain.InvitationPending {
				continue
			}
			if out == nil || inv.CreatedAt.After(out.CreatedAt) {
				inv := inv
				out = &inv
			}
		}
		return nil
	})
	return out, err
}

func (r *invitationRepo) DeleteByProject(ctx context.Context, projectID domain.ProjectID) error {
	return r.v.write(ctx, func(s *state) error {
		deleteInvitations(s, projectID)
		return nil
	})
}

func (r *invitationRepo) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := r.v.write(ctx, func(s *state) error {
		for id, inv := range s.invitations {
			if inv.Status != domain.InvitationPending && inv.UpdatedAt.Before(cutoff) {
				delete(s.invitations, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

func deleteInvitations(s *state, projectID domain.ProjectID) {
	for id, inv := range s.invitations {
		if inv.ProjectID == projectID {
			delete(s.invitations, id)
		}
	}
}

var (
	_ ports.UserRepository       = (*userRepo)(nil)
	_ ports.ProjectRepository    = (*projectRepo)(nil)
	_ ports.MembershipRepository = (*membershipRepo)(nil)
	_ ports.TaskRepository       = (*taskRepo)(nil)
	_ ports.InvitationRepository = (*invitationRepo)(nil)
)
