package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type organizationStore struct {
	queries *sqlc.Queries
}

func newOrganizationStore(queries *sqlc.Queries) OrganizationStore {
	return &organizationStore{queries: queries}
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row, err := s.queries.GetOrganization(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	row, err := s.queries.GetOrganizationBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row, err := s.queries.CreateOrganization(ctx, sqlc.CreateOrganizationParams{
		ID:          org.ID,
		Name:        org.Name,
		Slug:        org.Slug,
		OwnerUserID: org.OwnerUserID,
	})
	if err != nil {
		return err
	}
	*org = *toOrganizationModel(row)
	return nil
}

func (s *organizationStore) UpdateName(ctx context.Context, id int64, name string) (*model.Organization, error) {
	row, err := s.queries.UpdateOrganizationName(ctx, sqlc.UpdateOrganizationNameParams{
		Name: name,
		ID:   id,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) SetStatus(ctx context.Context, id int64, status model.OrganizationStatus) (*model.Organization, error) {
	row, err := s.queries.SetOrganizationStatus(ctx, sqlc.SetOrganizationStatusParams{
		Status: string(status),
		ID:     id,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) Delete(ctx context.Context, id int64) error {
	return s.queries.SoftDeleteOrganization(ctx, id)
}

func (s *organizationStore) ListForUser(ctx context.Context, userID int64) ([]model.Organization, error) {
	rows, err := s.queries.ListOrganizationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toOrganizationModels(rows), nil
}

func (s *organizationStore) List(ctx context.Context, status *model.OrganizationStatus, limit, offset int32) ([]model.Organization, error) {
	rows, err := s.queries.ListOrganizations(ctx, sqlc.ListOrganizationsParams{
		Status: stringPtr(status),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return toOrganizationModels(rows), nil
}

func (s *organizationStore) Count(ctx context.Context) (int64, error) {
	return s.queries.CountOrganizations(ctx)
}

func toOrganizationModel(row sqlc.Organization) *model.Organization {
	return &model.Organization{
		ID:          row.ID,
		OwnerUserID: row.OwnerUserID,
		Name:        row.Name,
		Slug:        row.Slug,
		Status:      model.OrganizationStatus(row.Status),
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
		IsDeleted:   row.IsDeleted,
	}
}

func toOrganizationModels(rows []sqlc.Organization) []model.Organization {
	result := make([]model.Organization, len(rows))
	for i, row := range rows {
		result[i] = *toOrganizationModel(row)
	}
	return result
}
