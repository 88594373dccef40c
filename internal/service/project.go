package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/store"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrProjectName       = errors.New("project name is required")
	ErrProjectStatus     = errors.New("invalid project status")
	ErrProjectTransition = errors.New("project status transition not allowed")
)

type ProjectInput struct {
	DealID      *int64
	Name        string
	Description *string
	DueAt       *time.Time
}

type ProjectService interface {
	Create(ctx context.Context, orgID int64, in ProjectInput) (*model.Project, error)
	Get(ctx context.Context, orgID, id int64) (*model.Project, error)
	Update(ctx context.Context, orgID, id int64, in ProjectInput) (*model.Project, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, status *model.ProjectStatus, limit, offset int) ([]model.Project, error)
	SetStatus(ctx context.Context, orgID, id int64, status model.ProjectStatus) (*model.Project, error)
}

type projectService struct {
	projects store.ProjectStore
	deals    store.DealStore
}

func NewProjectService(projects store.ProjectStore, deals store.DealStore) ProjectService {
	return &projectService{projects: projects, deals: deals}
}

func (s *projectService) Create(ctx context.Context, orgID int64, in ProjectInput) (*model.Project, error) {
	p := &model.Project{
		ID:             id.New(),
		OrganizationID: orgID,
		DealID:         in.DealID,
		Name:           strings.TrimSpace(in.Name),
		Description:    trimPtr(in.Description),
		Status:         model.ProjectStatusPlanned,
		DueAt:          in.DueAt,
	}
	if p.Name == "" {
		return nil, ErrProjectName
	}
	if err := s.checkDeal(ctx, orgID, p.DealID); err != nil {
		return nil, err
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return p, nil
}

func (s *projectService) Get(ctx context.Context, orgID, id int64) (*model.Project, error) {
	p, err := s.projects.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return p, nil
}

func (s *projectService) Update(ctx context.Context, orgID, id int64, in ProjectInput) (*model.Project, error) {
	p, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		p.Name = name
	}
	if in.Description != nil {
		p.Description = trimPtr(in.Description)
	}
	if in.DueAt != nil {
		p.DueAt = in.DueAt
	}
	if in.DealID != nil {
		if err := s.checkDeal(ctx, orgID, in.DealID); err != nil {
			return nil, err
		}
		p.DealID = in.DealID
	}
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return p, nil
}

func (s *projectService) Delete(ctx context.Context, orgID, id int64) error {
	if err := s.projects.Delete(ctx, orgID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (s *projectService) List(ctx context.Context, orgID int64, status *model.ProjectStatus, limit, offset int) ([]model.Project, error) {
	if status != nil && !status.Valid() {
		return nil, ErrProjectStatus
	}
	l, o := pageBounds(limit, offset)
	projects, err := s.projects.List(ctx, orgID, status, l, o)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) SetStatus(ctx context.Context, orgID, id int64, status model.ProjectStatus) (*model.Project, error) {
	if !status.Valid() {
		return nil, ErrProjectStatus
	}
	p, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrProjectTransition, p.Status, status)
	}
	updated, err := s.projects.SetStatus(ctx, orgID, id, status)
	if err != nil {
		return nil, fmt.Errorf("updating project status: %w", err)
	}
	return updated, nil
}

func (s *projectService) checkDeal(ctx context.Context, orgID int64, dealID *int64) error {
	if dealID == nil {
		return nil
	}
	if _, err := s.deals.GetByID(ctx, orgID, *dealID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrDealNotFound
		}
		return fmt.Errorf("checking deal: %w", err)
	}
	return nil
}
