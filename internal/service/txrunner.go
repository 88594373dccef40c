package service

import (
	"context"

	"switchyard.app/platform/core/db"
	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/store"
)

// StoreProvider exposes only the stores needed by a transactional operation.
type StoreProvider interface {
	Users() store.UserStore
	Organizations() store.OrganizationStore
	Memberships() store.MembershipStore
	Invitations() store.InvitationStore
	Contacts() store.ContactStore
	CampaignContacts() store.CampaignContactStore
	CallRecords() store.CallRecordStore
	Subscriptions() store.SubscriptionStore
	Invoices() store.InvoiceStore
	SupportTickets() store.SupportTicketStore
	AuditLogs() store.AuditLogStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		stores := store.NewStores(q)
		return fn(stores)
	})
}
