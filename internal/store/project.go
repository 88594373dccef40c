package store

import (
	"context"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type projectStore struct {
	queries *sqlc.Queries
}

func newProjectStore(queries *sqlc.Queries) ProjectStore {
	return &projectStore{queries: queries}
}

func (s *projectStore) Create(ctx context.Context, p *model.Project) error {
	row, err := s.queries.CreateProject(ctx, sqlc.CreateProjectParams{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		DealID:         p.DealID,
		Name:           p.Name,
		Description:    p.Description,
		Status:         string(p.Status),
		DueAt:          nullTimestamptz(p.DueAt),
	})
	if err != nil {
		return err
	}
	*p = *toProjectModel(row)
	return nil
}

func (s *projectStore) GetByID(ctx context.Context, orgID, id int64) (*model.Project, error) {
	row, err := s.queries.GetProject(ctx, sqlc.GetProjectParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toProjectModel(row), nil
}

func (s *projectStore) Update(ctx context.Context, p *model.Project) error {
	row, err := s.queries.UpdateProject(ctx, sqlc.UpdateProjectParams{
		DealID:         p.DealID,
		Name:           p.Name,
		Description:    p.Description,
		DueAt:          nullTimestamptz(p.DueAt),
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
	})
	if err != nil {
		return mapNotFound(err)
	}
	*p = *toProjectModel(row)
	return nil
}

func (s *projectStore) SetStatus(ctx context.Context, orgID, id int64, status model.ProjectStatus) (*model.Project, error) {
	row, err := s.queries.SetProjectStatus(ctx, sqlc.SetProjectStatusParams{
		Status:         string(status),
		ID:             id,
		OrganizationID: orgID,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toProjectModel(row), nil
}

func (s *projectStore) Delete(ctx context.Context, orgID, id int64) error {
	n, err := s.queries.DeleteProject(ctx, sqlc.DeleteProjectParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *projectStore) List(ctx context.Context, orgID int64, status *model.ProjectStatus, limit, offset int32) ([]model.Project, error) {
	rows, err := s.queries.ListProjects(ctx, sqlc.ListProjectsParams{
		OrganizationID: orgID,
		Status:         stringPtr(status),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Project, len(rows))
	for i, row := range rows {
		result[i] = *toProjectModel(row)
	}
	return result, nil
}

func toProjectModel(row sqlc.Project) *model.Project {
	return &model.Project{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		DealID:         row.DealID,
		Name:           row.Name,
		Description:    row.Description,
		Status:         model.ProjectStatus(row.Status),
		DueAt:          timePtr(row.DueAt),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
