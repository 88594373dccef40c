package model

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

type BillingProvider string

const (
	BillingProviderStripe BillingProvider = "stripe"
	BillingProviderSquare BillingProvider = "square"
	BillingProviderManual BillingProvider = "manual"
)

type BillingInterval string

const (
	BillingIntervalMonthly BillingInterval = "monthly"
	BillingIntervalAnnual  BillingInterval = "annual"
)

type Subscription struct {
	ID                     int64              `json:"id,string"`
	OrganizationID         int64              `json:"organization_id,string"`
	PlanCode               string             `json:"plan_code"`
	Status                 SubscriptionStatus `json:"status"`
	Provider               BillingProvider    `json:"provider"`
	ProviderCustomerID     *string            `json:"-"`
	ProviderSubscriptionID *string            `json:"-"`
	Seats                  int32              `json:"seats"`
	MinutesUsed            int32              `json:"minutes_used"`
	CurrentPeriodStart     time.Time          `json:"current_period_start"`
	CurrentPeriodEnd       time.Time          `json:"current_period_end"`
	CancelAtPeriodEnd      bool               `json:"cancel_at_period_end"`
	CreatedAt              time.Time          `json:"created_at"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

func (s *Subscription) IsBillable() bool {
	switch s.Status {
	case SubscriptionStatusTrialing, SubscriptionStatusActive, SubscriptionStatusPastDue:
		return true
	}
	return false
}

type InvoiceStatus string

const (
	InvoiceStatusOpen   InvoiceStatus = "open"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusFailed InvoiceStatus = "failed"
	InvoiceStatusVoid   InvoiceStatus = "void"
)

type Invoice struct {
	ID                int64         `json:"id,string"`
	OrganizationID    int64         `json:"organization_id,string"`
	SubscriptionID    int64         `json:"subscription_id,string"`
	IdempotencyKey    string        `json:"-"`
	PeriodStart       time.Time     `json:"period_start"`
	PeriodEnd         time.Time     `json:"period_end"`
	BaseCents         int64         `json:"base_cents"`
	SeatCents         int64         `json:"seat_cents"`
	OverageMinutes    int32         `json:"overage_minutes"`
	OverageCents      int64         `json:"overage_cents"`
	TotalCents        int64         `json:"total_cents"`
	Currency          string        `json:"currency"`
	Status            InvoiceStatus `json:"status"`
	ProviderInvoiceID *string       `json:"provider_invoice_id,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}
