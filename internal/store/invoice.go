package store

import (
	"context"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type invoiceStore struct {
	queries *sqlc.Queries
}

func newInvoiceStore(queries *sqlc.Queries) InvoiceStore {
	return &invoiceStore{queries: queries}
}

func (s *invoiceStore) CreateIfAbsent(ctx context.Context, inv *model.Invoice) (bool, error) {
	n, err := s.queries.CreateInvoiceIfAbsent(ctx, sqlc.CreateInvoiceIfAbsentParams{
		ID:             inv.ID,
		OrganizationID: inv.OrganizationID,
		SubscriptionID: inv.SubscriptionID,
		IdempotencyKey: inv.IdempotencyKey,
		PeriodStart:    timestamptz(inv.PeriodStart),
		PeriodEnd:      timestamptz(inv.PeriodEnd),
		BaseCents:      inv.BaseCents,
		SeatCents:      inv.SeatCents,
		OverageMinutes: inv.OverageMinutes,
		OverageCents:   inv.OverageCents,
		TotalCents:     inv.TotalCents,
		Currency:       inv.Currency,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *invoiceStore) GetByIdempotencyKey(ctx context.Context, key string) (*model.Invoice, error) {
	row, err := s.queries.GetInvoiceByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toInvoiceModel(row), nil
}

func (s *invoiceStore) ListByOrganization(ctx context.Context, orgID int64, limit, offset int32) ([]model.Invoice, error) {
	rows, err := s.queries.ListInvoicesByOrganization(ctx, sqlc.ListInvoicesByOrganizationParams{
		OrganizationID: orgID,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Invoice, len(rows))
	for i, row := range rows {
		result[i] = *toInvoiceModel(row)
	}
	return result, nil
}

func (s *invoiceStore) SetLatestOpenStatus(ctx context.Context, subscriptionID int64, status model.InvoiceStatus, providerInvoiceID *string) (int64, error) {
	return s.queries.SetLatestOpenInvoiceStatus(ctx, sqlc.SetLatestOpenInvoiceStatusParams{
		Status:            string(status),
		ProviderInvoiceID: providerInvoiceID,
		SubscriptionID:    subscriptionID,
	})
}

func toInvoiceModel(row sqlc.Invoice) *model.Invoice {
	return &model.Invoice{
		ID:                row.ID,
		OrganizationID:    row.OrganizationID,
		SubscriptionID:    row.SubscriptionID,
		IdempotencyKey:    row.IdempotencyKey,
		PeriodStart:       row.PeriodStart.Time,
		PeriodEnd:         row.PeriodEnd.Time,
		BaseCents:         row.BaseCents,
		SeatCents:         row.SeatCents,
		OverageMinutes:    row.OverageMinutes,
		OverageCents:      row.OverageCents,
		TotalCents:        row.TotalCents,
		Currency:          row.Currency,
		Status:            model.InvoiceStatus(row.Status),
		ProviderInvoiceID: row.ProviderInvoiceID,
		CreatedAt:         row.CreatedAt.Time,
		UpdatedAt:         row.UpdatedAt.Time,
	}
}
