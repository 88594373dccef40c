package store

import (
	"context"
	"time"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type subscriptionStore struct {
	queries *sqlc.Queries
}

func newSubscriptionStore(queries *sqlc.Queries) SubscriptionStore {
	return &subscriptionStore{queries: queries}
}

func (s *subscriptionStore) Create(ctx context.Context, sub *model.Subscription) error {
	row, err := s.queries.CreateSubscription(ctx, sqlc.CreateSubscriptionParams{
		ID:                 sub.ID,
		OrganizationID:     sub.OrganizationID,
		PlanCode:           sub.PlanCode,
		Status:             string(sub.Status),
		Provider:           string(sub.Provider),
		Seats:              sub.Seats,
		CurrentPeriodStart: timestamptz(sub.CurrentPeriodStart),
		CurrentPeriodEnd:   timestamptz(sub.CurrentPeriodEnd),
	})
	if err != nil {
		return err
	}
	*sub = *toSubscriptionModel(row)
	return nil
}

func (s *subscriptionStore) GetByID(ctx context.Context, id int64) (*model.Subscription, error) {
	row, err := s.queries.GetSubscription(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toSubscriptionModel(row), nil
}

func (s *subscriptionStore) GetByOrganization(ctx context.Context, orgID int64) (*model.Subscription, error) {
	row, err := s.queries.GetSubscriptionByOrganization(ctx, orgID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toSubscriptionModel(row), nil
}

func (s *subscriptionStore) GetByProviderID(ctx context.Context, providerSubscriptionID string) (*model.Subscription, error) {
	row, err := s.queries.GetSubscriptionByProviderID(ctx, providerSubscriptionID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toSubscriptionModel(row), nil
}

func (s *subscriptionStore) Lock(ctx context.Context, id int64) (*model.Subscription, error) {
	row, err := s.queries.LockSubscription(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toSubscriptionModel(row), nil
}

func (s *subscriptionStore) UpdatePlan(ctx context.Context, sub *model.Subscription) error {
	row, err := s.queries.UpdateSubscriptionPlan(ctx, sqlc.UpdateSubscriptionPlanParams{
		PlanCode:               sub.PlanCode,
		Seats:                  sub.Seats,
		Status:                 string(sub.Status),
		Provider:               string(sub.Provider),
		ProviderCustomerID:     sub.ProviderCustomerID,
		ProviderSubscriptionID: sub.ProviderSubscriptionID,
		ID:                     sub.ID,
	})
	if err != nil {
		return mapNotFound(err)
	}
	*sub = *toSubscriptionModel(row)
	return nil
}

func (s *subscriptionStore) SetStatus(ctx context.Context, id int64, status model.SubscriptionStatus) (*model.Subscription, error) {
	row, err := s.queries.SetSubscriptionStatus(ctx, sqlc.SetSubscriptionStatusParams{
		Status: string(status),
		ID:     id,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toSubscriptionModel(row), nil
}

func (s *subscriptionStore) SetCancelAtPeriodEnd(ctx context.Context, id int64, cancel bool) (*model.Subscription, error) {
	row, err := s.queries.SetSubscriptionCancelAtPeriodEnd(ctx, sqlc.SetSubscriptionCancelAtPeriodEndParams{
		CancelAtPeriodEnd: cancel,
		ID:                id,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toSubscriptionModel(row), nil
}

func (s *subscriptionStore) AddMinutes(ctx context.Context, orgID int64, minutes int32) error {
	n, err := s.queries.AddSubscriptionMinutes(ctx, sqlc.AddSubscriptionMinutesParams{
		Minutes:        minutes,
		OrganizationID: orgID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *subscriptionStore) ListDue(ctx context.Context, now time.Time, limit int32) ([]model.Subscription, error) {
	rows, err := s.queries.ListDueSubscriptions(ctx, sqlc.ListDueSubscriptionsParams{
		Now:   timestamptz(now),
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Subscription, len(rows))
	for i, row := range rows {
		result[i] = *toSubscriptionModel(row)
	}
	return result, nil
}

// Advance moves the subscription into its next period and zeroes the minute counter.
func (s *subscriptionStore) Advance(ctx context.Context, id int64, status model.SubscriptionStatus, start, end time.Time) (*model.Subscription, error) {
	row, err := s.queries.AdvanceSubscriptionPeriod(ctx, sqlc.AdvanceSubscriptionPeriodParams{
		Status:             string(status),
		CurrentPeriodStart: timestamptz(start),
		CurrentPeriodEnd:   timestamptz(end),
		ID:                 id,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toSubscriptionModel(row), nil
}

func (s *subscriptionStore) SumMinutesUsed(ctx context.Context) (int64, error) {
	return s.queries.SumMinutesUsed(ctx)
}

func toSubscriptionModel(row sqlc.Subscription) *model.Subscription {
	return &model.Subscription{
		ID:                     row.ID,
		OrganizationID:         row.OrganizationID,
		PlanCode:               row.PlanCode,
		Status:                 model.SubscriptionStatus(row.Status),
		Provider:               model.BillingProvider(row.Provider),
		ProviderCustomerID:     row.ProviderCustomerID,
		ProviderSubscriptionID: row.ProviderSubscriptionID,
		Seats:                  row.Seats,
		MinutesUsed:            row.MinutesUsed,
		CurrentPeriodStart:     row.CurrentPeriodStart.Time,
		CurrentPeriodEnd:       row.CurrentPeriodEnd.Time,
		CancelAtPeriodEnd:      row.CancelAtPeriodEnd,
		CreatedAt:              row.CreatedAt.Time,
		UpdatedAt:              row.UpdatedAt.Time,
	}
}
