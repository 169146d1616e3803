// Package policy holds the authorization rules. Every function is pure: callers
// load current state and ask right before the guarded mutation.
package policy

import "github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"

// CanManageProject reports whether user may update, delete or invite to the project.
func CanManageProject(user domain.UserID, project *domain.Project) bool {
	return project != nil && project.OwnerID == user
}

// CanAccessProject reports whether user may read the project and work on its board.
func CanAccessProject(user domain.UserID, project *domain.Project, membership *domain.Membership) bool {
	if CanManageProject(user, project) {
		return true
	}
	return project != nil && membership != nil &&
		membership.ProjectID == project.ID && membership.UserID == user
}

// CanMutateTask reports whether user may edit the task: its assignee or the project owner.
func CanMutateTask(user domain.UserID, task *domain.Task, project *domain.Project) bool {
	if task == nil {
		return false
	}
	return task.IsAssignedTo(user) || CanManageProject(user, project)
}

// CanDeleteTask reports whether user may delete tasks of the project. Assignees cannot.
func CanDeleteTask(user domain.UserID, project *domain.Project) bool {
	return CanManageProject(user, project)
}

// CanRespondToInvitation reports whether user may accept or decline the invitation.
func CanRespondToInvitation(user domain.UserID, invitation *domain.Invitation) bool {
	return invitation != nil && invitation.InvitedUserID == user
}
