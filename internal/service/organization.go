package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"switchyard.app/platform/common"
	"switchyard.app/platform/common/id"
	"switchyard.app/platform/internal/billing"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/store"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrOrganizationName     = errors.New("organization name is required")
)

type OrganizationService interface {
	Create(ctx context.Context, name string, slug *string, ownerUserID int64) (*model.Organization, error)
	Get(ctx context.Context, orgID int64) (*model.Organization, error)
	Update(ctx context.Context, orgID int64, name string) (*model.Organization, error)
	ListForUser(ctx context.Context, userID int64) ([]model.Organization, error)
}

type organizationService struct {
	txRunner TxRunner
	orgStore store.OrganizationStore
	catalog  *billing.Catalog
	now      func() time.Time
}

func NewOrganizationService(txRunner TxRunner, orgStore store.OrganizationStore, catalog *billing.Catalog) OrganizationService {
	return &organizationService{txRunner: txRunner, orgStore: orgStore, catalog: catalog, now: time.Now}
}

// Create inserts the organization, its owner membership and a trial
// subscription on the catalog's default plan in one transaction.
func (s *organizationService) Create(ctx context.Context, name string, slug *string, ownerUserID int64) (*model.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrOrganizationName
	}

	var org *model.Organization
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		finalSlug, err := ensureSlug(ctx, sp.Organizations(), name, slug)
		if err != nil {
			return err
		}

		org = &model.Organization{
			ID:          id.New(),
			OwnerUserID: ownerUserID,
			Name:        name,
			Slug:        finalSlug,
			Status:      model.OrganizationStatusActive,
		}
		if err := sp.Organizations().Create(ctx, org); err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}

		if err := sp.Memberships().Create(ctx, &model.Membership{
			ID:             id.New(),
			OrganizationID: org.ID,
			UserID:         ownerUserID,
			Role:           model.RoleOwner,
		}); err != nil {
			return fmt.Errorf("creating owner membership: %w", err)
		}

		if s.catalog != nil {
			if err := sp.Subscriptions().Create(ctx, s.trialSubscription(org.ID)); err != nil {
				return fmt.Errorf("creating trial subscription: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "organization created",
		"organization_id", org.ID,
		"slug", org.Slug,
		"owner_user_id", ownerUserID)
	return org, nil
}

func (s *organizationService) trialSubscription(orgID int64) *model.Subscription {
	start := s.now().UTC()
	return &model.Subscription{
		ID:                 id.New(),
		OrganizationID:     orgID,
		PlanCode:           s.catalog.DefaultPlan,
		Status:             model.SubscriptionStatusTrialing,
		Provider:           model.BillingProviderManual,
		Seats:              1,
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   start.AddDate(0, 0, s.catalog.TrialDays),
	}
}

func (s *organizationService) Get(ctx context.Context, orgID int64) (*model.Organization, error) {
	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) Update(ctx context.Context, orgID int64, name string) (*model.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrOrganizationName
	}
	org, err := s.orgStore.UpdateName(ctx, orgID, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("updating organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) ListForUser(ctx context.Context, userID int64) ([]model.Organization, error) {
	orgs, err := s.orgStore.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	return orgs, nil
}

func ensureSlug(ctx context.Context, orgStore store.OrganizationStore, name string, slug *string) (string, error) {
	input := name
	if slug != nil && *slug != "" {
		input = *slug
	}

	base, err := common.Slugify(input, "org")
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	// Fast path
	if _, err := orgStore.GetBySlug(ctx, base); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return base, nil
		}
		return "", fmt.Errorf("checking slug availability: %w", err)
	}

	// Add numeric suffix until available
	for i := 1; i <= 20; i++ {
		candidate := common.WithSuffix(base, i)
		_, err := orgStore.GetBySlug(ctx, candidate)
		if errors.Is(err, store.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slug availability: %w", err)
		}
	}

	return "", fmt.Errorf("unable to find available slug for %q", base)
}
