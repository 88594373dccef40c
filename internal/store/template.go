package store

import (
	"context"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type templateStore struct {
	queries *sqlc.Queries
}

func newTemplateStore(queries *sqlc.Queries) TemplateStore {
	return &templateStore{queries: queries}
}

func (s *templateStore) Create(ctx context.Context, t *model.Template) error {
	row, err := s.queries.CreateTemplate(ctx, sqlc.CreateTemplateParams{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		Kind:           string(t.Kind),
		Name:           t.Name,
		Subject:        t.Subject,
		Body:           t.Body,
	})
	if err != nil {
		return err
	}
	*t = *toTemplateModel(row)
	return nil
}

func (s *templateStore) GetByID(ctx context.Context, orgID, id int64) (*model.Template, error) {
	row, err := s.queries.GetTemplate(ctx, sqlc.GetTemplateParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toTemplateModel(row), nil
}

func (s *templateStore) Update(ctx context.Context, t *model.Template) error {
	row, err := s.queries.UpdateTemplate(ctx, sqlc.UpdateTemplateParams{
		Name:           t.Name,
		Subject:        t.Subject,
		Body:           t.Body,
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
	})
	if err != nil {
		return mapNotFound(err)
	}
	*t = *toTemplateModel(row)
	return nil
}

func (s *templateStore) Delete(ctx context.Context, orgID, id int64) error {
	n, err := s.queries.DeleteTemplate(ctx, sqlc.DeleteTemplateParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *templateStore) List(ctx context.Context, orgID int64, kind *model.TemplateKind) ([]model.Template, error) {
	rows, err := s.queries.ListTemplates(ctx, sqlc.ListTemplatesParams{
		OrganizationID: orgID,
		Kind:           stringPtr(kind),
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Template, len(rows))
	for i, row := range rows {
		result[i] = *toTemplateModel(row)
	}
	return result, nil
}

func toTemplateModel(row sqlc.Template) *model.Template {
	return &model.Template{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		Kind:           model.TemplateKind(row.Kind),
		Name:           row.Name,
		Subject:        row.Subject,
		Body:           row.Body,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
