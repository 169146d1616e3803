package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getUserByID = `
SELECT id, name, email, created_at, updated_at FROM users WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const searchProjectMembers = `
SELECT u.id, u.name, u.email, u.created_at, u.updated_at
FROM users u
INNER JOIN memberships m ON m.user_id = u.id
WHERE m.project_id = $1
  AND (u.email ILIKE $2 ESCAPE '\' OR u.name ILIKE $2 ESCAPE '\')
ORDER BY m.created_at
LIMIT $3
`

type SearchProjectMembersParams struct {
	ProjectID uuid.UUID
	Pattern   string
	Limit     int32
}

func (q *Queries) SearchProjectMembers(ctx context.Context, arg SearchProjectMembersParams) ([]User, error) {
	rows, err := q.db.Query(ctx, searchProjectMembers, arg.ProjectID, arg.Pattern, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		var i User
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const searchUsers = `
SELECT id, name, email, created_at, updated_at
FROM users
WHERE id <> $1
  AND (email ILIKE $2 ESCAPE '\' OR name ILIKE $2 ESCAPE '\')
ORDER BY name, email
LIMIT $3
`

type SearchUsersParams struct {
	ExcludeID uuid.UUID
	Pattern   string
	Limit     int32
}

func (q *Queries) SearchUsers(ctx context.Context, arg SearchUsersParams) ([]User, error) {
	rows, err := q.db.Query(ctx, searchUsers, arg.ExcludeID, arg.Pattern, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		var i User
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getSessionByToken = `
SELECT id, token, user_id, expires_at, created_at FROM sessions WHERE token = $1
`

func (q *Queries) GetSessionByToken(ctx context.Context, token string) (Session, error) {
	row := q.db.QueryRow(ctx, getSessionByToken, token)
	var i Session
	err := row.Scan(&i.ID, &i.Token, &i.UserID, &i.ExpiresAt, &i.CreatedAt)
	return i, err
}

const createProject = `
INSERT INTO projects (id, name, description, owner_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

type CreateProjectParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) error {
	_, err := q.db.Exec(ctx, createProject, arg.ID, arg.Name, arg.Description, arg.OwnerID, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getProjectByID = `
SELECT id, name, description, owner_id, created_at, updated_at FROM projects WHERE id = $1
`

func (q *Queries) GetProjectByID(ctx context.Context, id uuid.UUID) (Project, error) {
	row := q.db.QueryRow(ctx, getProjectByID, id)
	var i Project
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.OwnerID, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const listProjectsForUser = `
SELECT p.id, p.name, p.description, p.owner_id, p.created_at, p.updated_at
FROM projects p
WHERE p.owner_id = $1
   OR EXISTS (SELECT 1 FROM memberships m WHERE m.project_id = p.id AND m.user_id = $1)
ORDER BY p.created_at DESC
`

func (q *Queries) ListProjectsForUser(ctx context.Context, userID uuid.UUID) ([]Project, error) {
	rows, err := q.db.Query(ctx, listProjectsForUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Project
	for rows.Next() {
		var i Project
		if err := rows.Scan(&i.ID, &i.Name, &i.Description, &i.OwnerID, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateProject = `
UPDATE projects SET name = $2, description = $3, updated_at = $4 WHERE id = $1
`

type UpdateProjectParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	UpdatedAt   time.Time
}

func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) error {
	_, err := q.db.Exec(ctx, updateProject, arg.ID, arg.Name, arg.Description, arg.UpdatedAt)
	return err
}

const deleteProject = `
DELETE FROM projects WHERE id = $1
`

func (q *Queries) DeleteProject(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteProject, id)
	return err
}

const createMembership = `
INSERT INTO memberships (id, user_id, project_id, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

type CreateMembershipParams struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProjectID uuid.UUID
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateMembership(ctx context.Context, arg CreateMembershipParams) error {
	_, err := q.db.Exec(ctx, createMembership, arg.ID, arg.UserID, arg.ProjectID, arg.Role, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getMembership = `
SELECT id, user_id, project_id, role, created_at, updated_at
FROM memberships WHERE project_id = $1 AND user_id = $2
`

type GetMembershipParams struct {
	ProjectID uuid.UUID
	UserID    uuid.UUID
}

func (q *Queries) GetMembership(ctx context.Context, arg GetMembershipParams) (Membership, error) {
	row := q.db.QueryRow(ctx, getMembership, arg.ProjectID, arg.UserID)
	var i Membership
	err := row.Scan(&i.ID, &i.UserID, &i.ProjectID, &i.Role, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteMembershipsByProject = `
DELETE FROM memberships WHERE project_id = $1
`

func (q *Queries) DeleteMembershipsByProject(ctx context.Context, projectID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteMembershipsByProject, projectID)
	return err
}

const createTask = `
INSERT INTO tasks (id, title, description, status, project_id, assigned_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateTaskParams struct {
	ID          uuid.UUID
	Title       string
	Description pgtype.Text
	Status      string
	ProjectID   uuid.UUID
	AssignedID  pgtype.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateTask(ctx context.Context, arg CreateTaskParams) error {
	_, err := q.db.Exec(ctx, createTask,
		arg.ID, arg.Title, arg.Description, arg.Status, arg.ProjectID, arg.AssignedID, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getTaskByID = `
SELECT id, title, description, status, project_id, assigned_id, created_at, updated_at
FROM tasks WHERE id = $1
`

func (q *Queries) GetTaskByID(ctx context.Context, id uuid.UUID) (Task, error) {
	row := q.db.QueryRow(ctx, getTaskByID, id)
	var i Task
	err := row.Scan(&i.ID, &i.Title, &i.Description, &i.Status, &i.ProjectID, &i.AssignedID, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const listTasksByProject = `
SELECT t.id, t.title, t.description, t.status, t.project_id, t.assigned_id, t.created_at, t.updated_at,
       u.id, u.name, u.email, u.created_at, u.updated_at
FROM tasks t
LEFT JOIN users u ON u.id = t.assigned_id
WHERE t.project_id = $1
ORDER BY t.created_at DESC
`

type ListTasksByProjectRow struct {
	Task              Task
	AssigneeID        pgtype.UUID
	AssigneeName      pgtype.Text
	AssigneeEmail     pgtype.Text
	AssigneeCreatedAt pgtype.Timestamptz
	AssigneeUpdatedAt pgtype.Timestamptz
}

func (q *Queries) ListTasksByProject(ctx context.Context, projectID uuid.UUID) ([]ListTasksByProjectRow, error) {
	rows, err := q.db.Query(ctx, listTasksByProject, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListTasksByProjectRow
	for rows.Next() {
		var i ListTasksByProjectRow
		if err := rows.Scan(
			&i.Task.ID, &i.Task.Title, &i.Task.Description, &i.Task.Status, &i.Task.ProjectID,
			&i.Task.AssignedID, &i.Task.CreatedAt, &i.Task.UpdatedAt,
			&i.AssigneeID, &i.AssigneeName, &i.AssigneeEmail, &i.AssigneeCreatedAt, &i.AssigneeUpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateTask = `
UPDATE tasks SET title = $2, description = $3, status = $4, assigned_id = $5, updated_at = $6 WHERE id = $1
`

type UpdateTaskParams struct {
	ID          uuid.UUID
	Title       string
	Description pgtype.Text
	Status      string
	AssignedID  pgtype.UUID
	UpdatedAt   time.Time
}

func (q *Queries) UpdateTask(ctx context.Context, arg UpdateTaskParams) error {
	_, err := q.db.Exec(ctx, updateTask, arg.ID, arg.Title, arg.Description, arg.Status, arg.AssignedID, arg.UpdatedAt)
	return err
}

const updateTaskStatus = `
UPDATE tasks SET status = $2, updated_at = $3 WHERE id = $1
`

type UpdateTaskStatusParams struct {
	ID        uuid.UUID
	Status    string
	UpdatedAt time.Time
}

func (q *Queries) UpdateTaskStatus(ctx context.Context, arg UpdateTaskStatusParams) error {
	_, err := q.db.Exec(ctx, updateTaskStatus, arg.ID, arg.Status, arg.UpdatedAt)
	return err
}

const deleteTask = `
DELETE FROM tasks WHERE id = $1
`

func (q *Queries) DeleteTask(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteTask, id)
	return err
}

const deleteTasksByProject = `
DELETE FROM tasks WHERE project_id = $1
`

func (q *Queries) DeleteTasksByProject(ctx context.Context, projectID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteTasksByProject, projectID)
	return err
}

const createInvitation = `
INSERT INTO invitations (id, invited_user_id, project_id, inviter_id, status, expires_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateInvitationParams struct {
	ID            uuid.UUID
	InvitedUserID uuid.UUID
	ProjectID     uuid.UUID
	InviterID     uuid.UUID
	Status        string
	ExpiresAt     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (q *Queries) CreateInvitation(ctx context.Context, arg CreateInvitationParams) error {
	_, err := q.db.Exec(ctx, createInvitation,
		arg.ID, arg.InvitedUserID, arg.ProjectID, arg.InviterID, arg.Status, arg.ExpiresAt, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const invitationColumns = `id, invited_user_id, project_id, inviter_id, status, expires_at, created_at, updated_at`

const getInvitationByID = `
SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1
`

func (q *Queries) GetInvitationByID(ctx context.Context, id uuid.UUID) (Invitation, error) {
	row := q.db.QueryRow(ctx, getInvitationByID, id)
	var i Invitation
	err := row.Scan(&i.ID, &i.InvitedUserID, &i.ProjectID, &i.InviterID, &i.Status, &i.ExpiresAt, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const resolveInvitation = `
UPDATE invitations SET status = $2, updated_at = $3 WHERE id = $1 AND status = 'PENDING'
`

type ResolveInvitationParams struct {
	ID        uuid.UUID
	Status    string
	UpdatedAt time.Time
}

// ResolveInvitation returns the number of rows changed: 0 when the invitation
// was no longer PENDING.
func (q *Queries) ResolveInvitation(ctx context.Context, arg ResolveInvitationParams) (int64, error) {
	result, err := q.db.Exec(ctx, resolveInvitation, arg.ID, arg.Status, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteResolvedInvitationsBefore = `
DELETE FROM invitations WHERE status <> 'PENDING' AND updated_at < $1
`

func (q *Queries) DeleteResolvedInvitationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := q.db.Exec(ctx, deleteResolvedInvitationsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listInvitationsForUser = `
SELECT i.id, i.invited_user_id, i.project_id, i.inviter_id, i.status, i.expires_at, i.created_at, i.updated_at,
       p.id, p.name, p.description, p.owner_id, p.created_at, p.updated_at,
       u.id, u.name, u.email, u.created_at, u.updated_at
FROM invitations i
INNER JOIN projects p ON p.id = i.project_id
INNER JOIN users u ON u.id = i.inviter_id
WHERE i.invited_user_id = $1
ORDER BY i.created_at DESC
`

type ListInvitationsForUserRow struct {
	Invitation Invitation
	Project    Project
	Inviter    User
}

func (q *Queries) ListInvitationsForUser(ctx context.Context, userID uuid.UUID) ([]ListInvitationsForUserRow, error) {
	rows, err := q.db.Query(ctx, listInvitationsForUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListInvitationsForUserRow
	for rows.Next() {
		var i ListInvitationsForUserRow
		if err := rows.Scan(
			&i.Invitation.ID, &i.Invitation.InvitedUserID, &i.Invitation.ProjectID, &i.Invitation.InviterID,
			&i.Invitation.Status, &i.Invitation.ExpiresAt, &i.Invitation.CreatedAt, &i.Invitation.UpdatedAt,
			&i.Project.ID, &i.Project.Name, &i.Project.Description, &i.Project.OwnerID, &i.Project.CreatedAt, &i.Project.UpdatedAt,
			&i.Inviter.ID, &i.Inviter.Name, &i.Inviter.Email, &i.Inviter.CreatedAt, &i.Inviter.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const hasPendingInvitation = `
SELECT EXISTS (SELECT 1 FROM invitations WHERE invited_user_id = $1 AND status = 'PENDING')
`

func (q *Queries) HasPendingInvitation(ctx context.Context, userID uuid.UUID) (bool, error) {
	row := q.db.QueryRow(ctx, hasPendingInvitation, userID)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const findPendingInvitation = `
SELECT ` + invitationColumns + `
FROM invitations
WHERE project_id = $1 AND invited_user_id = $2 AND status = 'PENDING'
ORDER BY created_at DESC
LIMIT 1
`

type FindPendingInvitationParams struct {
	ProjectID     uuid.UUID
	InvitedUserID uuid.UUID
}

func (q *Queries) FindPendingInvitation(ctx context.Context, arg FindPendingInvitationParams) (Invitation, error) {
	row := q.db.QueryRow(ctx, findPendingInvitation, arg.ProjectID, arg.InvitedUserID)
	var i Invitation
	err := row.Scan(&i.ID, &i.InvitedUserID, &i.ProjectID, &i.InviterID, &i.Status, &i.ExpiresAt, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteInvitationsByProject = `
DELETE FROM invitations WHERE project_id = $1
`

func (q *Queries) DeleteInvitationsByProject(ctx context.Context, projectID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteInvitationsByProject, projectID)
	return err
}
