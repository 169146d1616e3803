package postgres

import (
	"context"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/infrastructure/persistence/db"
)

type ProjectRepository struct {
	q *db.Queries
}

func NewProjectRepository(q *db.Queries) *ProjectRepository {
	return &ProjectRepository{q: q}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return r.q.CreateProject(ctx, db.CreateProjectParams{
		ID:          project.ID.UUID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID.UUID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	})
}

func (r *ProjectRepository) GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error) {
	p, err := r.q.GetProjectByID(ctx, projectID.UUID)
	if err != nil {
		return nil, noRows(err)
	}
	return dbProjectToDomain(p), nil
}

func (r *ProjectRepository) ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.Project, error) {
	list, err := r.q.ListProjectsForUser(ctx, userID.UUID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Project, 0, len(list))
	for _, p := range list {
		out = append(out, dbProjectToDomain(p))
	}
	return out, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return r.q.UpdateProject(ctx, db.UpdateProjectParams{
		ID:          project.ID.UUID,
		Name:        project.Name,
		Description: project.Description,
		UpdatedAt:   project.UpdatedAt,
	})
}

func (r *ProjectRepository) Delete(ctx context.Context, projectID domain.ProjectID) error {
	return r.q.DeleteProject(ctx, projectID.UUID)
}

func dbProjectToDomain(p db.Project) *domain.Project {
	return &domain.Project{
		ID:          domain.NewProjectID(p.ID),
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     domain.NewUserID(p.OwnerID),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// Ensure ProjectRepository implements ports.ProjectRepository.
var _ ports.ProjectRepository = (*ProjectRepository)(nil)
