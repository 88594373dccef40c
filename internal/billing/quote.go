package billing

import (
	"errors"

	"github.com/shopspring/decimal"

	"switchyard.app/platform/internal/model"
)

var ErrInvalidQuote = errors.New("invalid quote request")

// annualMonths is what an annual term costs in months of the monthly price.
const annualMonths = 10

type QuoteRequest struct {
	Plan             Plan
	Seats            int32
	EstimatedMinutes int32
	Interval         model.BillingInterval
	DiscountPercent  decimal.Decimal
}

type Quote struct {
	PlanCode                string                `json:"plan_code"`
	Interval                model.BillingInterval `json:"interval"`
	Seats                   int32                 `json:"seats"`
	BaseCents               int64                 `json:"base_cents"`
	ExtraSeats              int32                 `json:"extra_seats"`
	SeatCents               int64                 `json:"seat_cents"`
	DiscountCents           int64                 `json:"discount_cents"`
	RecurringCents          int64                 `json:"recurring_cents"`
	EstimatedOverageMinutes int32                 `json:"estimated_overage_minutes"`
	// EstimatedOverageCents is billed monthly on every interval.
	EstimatedOverageCents int64 `json:"estimated_overage_cents"`
	TotalCents            int64 `json:"total_cents"`
}

// CalculateQuote prices a plan. Annual terms cost ten months; the discount
// applies to the base and seat charges only; overage is a monthly estimate.
func CalculateQuote(req QuoteRequest) (Quote, error) {
	if req.Seats < 1 {
		return Quote{}, errors.Join(ErrInvalidQuote, errors.New("seats must be at least 1"))
	}
	if req.EstimatedMinutes < 0 {
		return Quote{}, errors.Join(ErrInvalidQuote, errors.New("estimated minutes must not be negative"))
	}
	if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return Quote{}, errors.Join(ErrInvalidQuote, errors.New("discount must be between 0 and 100"))
	}
	interval := req.Interval
	if interval == "" {
		interval = model.BillingIntervalMonthly
	}
	if interval != model.BillingIntervalMonthly && interval != model.BillingIntervalAnnual {
		return Quote{}, errors.Join(ErrInvalidQuote, errors.New("interval must be monthly or annual"))
	}

	months := decimal.NewFromInt(1)
	if interval == model.BillingIntervalAnnual {
		months = decimal.NewFromInt(annualMonths)
	}

	extraSeats := max(req.Seats-req.Plan.IncludedSeats, 0)
	base := decimal.NewFromInt(req.Plan.MonthlyPriceCents).Mul(months)
	seats := decimal.NewFromInt(req.Plan.SeatPriceCents).Mul(decimal.NewFromInt(int64(extraSeats))).Mul(months)
	baseCents, seatCents := cents(base), cents(seats)
	discountCents := cents(base.Add(seats).Mul(req.DiscountPercent).Div(decimal.NewFromInt(100)))
	recurringCents := baseCents + seatCents - discountCents

	overageMinutes := max(req.EstimatedMinutes-req.Plan.IncludedMinutes, 0)
	overage := OverageCents(req.Plan, overageMinutes)

	return Quote{
		PlanCode:                req.Plan.Code,
		Interval:                interval,
		Seats:                   req.Seats,
		BaseCents:               baseCents,
		ExtraSeats:              extraSeats,
		SeatCents:               seatCents,
		DiscountCents:           discountCents,
		RecurringCents:          recurringCents,
		EstimatedOverageMinutes: overageMinutes,
		EstimatedOverageCents:   overage,
		TotalCents:              recurringCents + overage,
	}, nil
}

// OverageCents prices minutes beyond the plan allowance, rounded half-up.
func OverageCents(p Plan, minutes int32) int64 {
	if minutes <= 0 {
		return 0
	}
	return cents(p.OverageCentsPerMinute().Mul(decimal.NewFromInt(int64(minutes))))
}

// cents rounds half away from zero, which is half-up for the non-negative
// amounts priced here.
func cents(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
