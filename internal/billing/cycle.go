package billing

import (
	"fmt"
	"time"

	"switchyard.app/platform/internal/model"
)

type CycleAction string

const (
	// CycleActivate ends a trial: the subscription becomes active with a fresh period and no invoice.
	CycleActivate CycleAction = "activate"
	// CycleRenew invoices the finished period and rolls forward one month.
	CycleRenew CycleAction = "renew"
	// CycleCancel invoices the finished period and cancels the subscription.
	CycleCancel CycleAction = "cancel"
)

type CycleResult struct {
	Action      CycleAction
	Status      model.SubscriptionStatus
	PeriodStart time.Time
	PeriodEnd   time.Time
	Invoice     *model.Invoice
}

// InvoiceKey identifies the invoice for one subscription period.
func InvoiceKey(subscriptionID int64, periodEnd time.Time) string {
	return fmt.Sprintf("cycle:%d:%d", subscriptionID, periodEnd.Unix())
}

// ComputeCycle decides what happens to a subscription whose period has ended.
// The returned invoice has no id; the caller assigns one.
func ComputeCycle(sub *model.Subscription, plan Plan) CycleResult {
	nextStart := sub.CurrentPeriodEnd

	if sub.Status == model.SubscriptionStatusTrialing && !sub.CancelAtPeriodEnd {
		return CycleResult{
			Action:      CycleActivate,
			Status:      model.SubscriptionStatusActive,
			PeriodStart: nextStart,
			PeriodEnd:   NextPeriodEnd(nextStart, nextStart.Day()),
		}
	}

	extraSeats := max(sub.Seats-plan.IncludedSeats, 0)
	seatCents := plan.SeatPriceCents * int64(extraSeats)
	overageMinutes := max(sub.MinutesUsed-plan.IncludedMinutes, 0)
	overageCents := OverageCents(plan, overageMinutes)

	inv := &model.Invoice{
		OrganizationID: sub.OrganizationID,
		SubscriptionID: sub.ID,
		IdempotencyKey: InvoiceKey(sub.ID, sub.CurrentPeriodEnd),
		PeriodStart:    sub.CurrentPeriodStart,
		PeriodEnd:      sub.CurrentPeriodEnd,
		BaseCents:      plan.MonthlyPriceCents,
		SeatCents:      seatCents,
		OverageMinutes: overageMinutes,
		OverageCents:   overageCents,
		TotalCents:     plan.MonthlyPriceCents + seatCents + overageCents,
		Currency:       "usd",
		Status:         model.InvoiceStatusOpen,
	}

	if sub.CancelAtPeriodEnd {
		if sub.Status == model.SubscriptionStatusTrialing {
			inv = nil
		}
		return CycleResult{
			Action:      CycleCancel,
			Status:      model.SubscriptionStatusCanceled,
			PeriodStart: sub.CurrentPeriodStart,
			PeriodEnd:   sub.CurrentPeriodEnd,
			Invoice:     inv,
		}
	}

	return CycleResult{
		Action:      CycleRenew,
		Status:      sub.Status,
		PeriodStart: nextStart,
		PeriodEnd:   NextPeriodEnd(nextStart, anchorDay(sub)),
		Invoice:     inv,
	}
}

// NextPeriodEnd adds one calendar month to start, landing on anchor or the
// last day of the month when the month is shorter.
func NextPeriodEnd(start time.Time, anchor int) time.Time {
	y, m, _ := start.Date()
	first := time.Date(y, m+1, 1, start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), start.Location())
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(anchor, last)-1)
}

// anchorDay recovers the billing day of a monthly period. A clamped boundary
// only ever falls on one side of a period, so the larger day is the anchor.
func anchorDay(sub *model.Subscription) int {
	return max(sub.CurrentPeriodStart.Day(), sub.CurrentPeriodEnd.Day())
}
