package policy

import (
	"testing"

	"github.com/google/uuid"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
)

func newUser() domain.UserID { return domain.NewUserID(uuid.New()) }

func TestProjectRules(t *testing.T) {
	owner, member, stranger := newUser(), newUser(), newUser()
	project := &domain.Project{ID: domain.NewProjectID(uuid.New()), OwnerID: owner}
	membership := &domain.Membership{UserID: member, ProjectID: project.ID, Role: domain.RoleMember}

	if !CanManageProject(owner, project) {
		t.Error("owner should manage project")
	}
	if CanManageProject(member, project) {
		t.Error("member should not manage project")
	}
	if CanManageProject(owner, nil) {
		t.Error("nil project is never manageable")
	}
	if !CanAccessProject(owner, project, nil) {
		t.Error("owner should access project without a membership row")
	}
	if !CanAccessProject(member, project, membership) {
		t.Error("member should access project")
	}
	if CanAccessProject(stranger, project, nil) {
		t.Error("stranger should not access project")
	}
	if CanAccessProject(stranger, project, membership) {
		t.Error("someone else's membership must not grant access")
	}
}

func TestTaskRules(t *testing.T) {
	owner, assignee, stranger := newUser(), newUser(), newUser()
	project := &domain.Project{ID: domain.NewProjectID(uuid.New()), OwnerID: owner}
	task := &domain.Task{ProjectID: project.ID, AssignedID: &assignee}
	unassigned := &domain.Task{ProjectID: project.ID}

	tests := []struct {
		name   string
		user   domain.UserID
		task   *domain.Task
		mutate bool
		delete bool
	}{
		{"owner", owner, task, true, true},
		{"assignee", assignee, task, true, false},
		{"stranger", stranger, task, false, false},
		{"owner on unassigned", owner, unassigned, true, true},
		{"stranger on unassigned", stranger, unassigned, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanMutateTask(tt.user, tt.task, project); got != tt.mutate {
				t.Errorf("CanMutateTask = %v, want %v", got, tt.mutate)
			}
			if got := CanDeleteTask(tt.user, project); got != tt.delete {
				t.Errorf("CanDeleteTask = %v, want %v", got, tt.delete)
			}
		})
	}
}

func TestCanRespondToInvitation(t *testing.T) {
	invited, other := newUser(), newUser()
	inv := &domain.Invitation{InvitedUserID: invited}
	if !CanRespondToInvitation(invited, inv) {
		t.Error("invited user should respond")
	}
	if CanRespondToInvitation(other, inv) {
		t.Error("other user should not respond")
	}
	if CanRespondToInvitation(invited, nil) {
		t.Error("nil invitation should be rejected")
	}
}
