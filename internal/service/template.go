package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/render"
	"switchyard.app/platform/internal/store"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidTemplate  = errors.New("template needs a valid kind, a name and a body")
)

type TemplateInput struct {
	Kind    model.TemplateKind
	Name    string
	Subject *string
	Body    string
}

type TemplateService interface {
	Create(ctx context.Context, orgID int64, in TemplateInput) (*model.Template, error)
	Get(ctx context.Context, orgID, id int64) (*model.Template, error)
	Update(ctx context.Context, orgID, id int64, in TemplateInput) (*model.Template, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, kind *model.TemplateKind) ([]model.Template, error)
	// Preview renders the template against a contact; a nil contact renders with organization variables only.
	Preview(ctx context.Context, orgID, id int64, contactID *int64) (*render.Rendered, error)
}

type templateService struct {
	templates store.TemplateStore
	contacts  store.ContactStore
	orgs      store.OrganizationStore
}

func NewTemplateService(templates store.TemplateStore, contacts store.ContactStore, orgs store.OrganizationStore) TemplateService {
	return &templateService{templates: templates, contacts: contacts, orgs: orgs}
}

func (s *templateService) Create(ctx context.Context, orgID int64, in TemplateInput) (*model.Template, error) {
	t := &model.Template{
		ID:             id.New(),
		OrganizationID: orgID,
		Kind:           in.Kind,
		Name:           strings.TrimSpace(in.Name),
		Subject:        trimPtr(in.Subject),
		Body:           in.Body,
	}
	if err := validateTemplate(t); err != nil {
		return nil, err
	}
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating template: %w", err)
	}
	return t, nil
}

func (s *templateService) Get(ctx context.Context, orgID, id int64) (*model.Template, error) {
	t, err := s.templates.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("getting template: %w", err)
	}
	return t, nil
}

func (s *templateService) Update(ctx context.Context, orgID, id int64, in TemplateInput) (*model.Template, error) {
	t, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		t.Name = name
	}
	if in.Subject != nil {
		t.Subject = trimPtr(in.Subject)
	}
	if in.Body != "" {
		t.Body = in.Body
	}
	if err := validateTemplate(t); err != nil {
		return nil, err
	}
	if err := s.templates.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("updating template: %w", err)
	}
	return t, nil
}

func (s *templateService) Delete(ctx context.Context, orgID, id int64) error {
	if err := s.templates.Delete(ctx, orgID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("deleting template: %w", err)
	}
	return nil
}

func (s *templateService) List(ctx context.Context, orgID int64, kind *model.TemplateKind) ([]model.Template, error) {
	if kind != nil && !kind.Valid() {
		return nil, ErrInvalidTemplate
	}
	templates, err := s.templates.List(ctx, orgID, kind)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return templates, nil
}

func (s *templateService) Preview(ctx context.Context, orgID, id int64, contactID *int64) (*render.Rendered, error) {
	t, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	var contact *model.Contact
	if contactID != nil {
		contact, err = s.contacts.GetByID(ctx, orgID, *contactID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrContactNotFound
			}
			return nil, fmt.Errorf("getting contact: %w", err)
		}
	}

	return render.Template(t, render.ContactVars(contact, org))
}

func validateTemplate(t *model.Template) error {
	if !t.Kind.Valid() || t.Name == "" || strings.TrimSpace(t.Body) == "" {
		return ErrInvalidTemplate
	}
	return nil
}
