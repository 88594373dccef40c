// Package scheduler decides which campaign enrollments may be called now.
// It is pure: the worker supplies state and applies the resulting plan.
package scheduler

import (
	"time"

	"switchyard.app/platform/internal/model"
)

// InWindow reports whether now, in loc, falls inside the campaign's calling
// window on an allowed weekday. Windows whose end precedes their start wrap
// past midnight; equal bounds mean the whole day.
func InWindow(c *model.Campaign, now time.Time, loc *time.Location) bool {
	local := now.In(loc)
	if !c.AllowsDay(local.Weekday()) {
		return false
	}
	minute := int32(local.Hour()*60 + local.Minute())
	start, end := c.WindowStartMinute, c.WindowEndMinute
	switch {
	case start == end:
		return true
	case start < end:
		return minute >= start && minute < end
	default:
		return minute >= start || minute < end
	}
}

// FreeSlots is the number of calls that may start now.
func FreeSlots(c *model.Campaign, inProgress int64) int {
	free := int64(c.MaxConcurrent) - inProgress
	if free < 0 {
		return 0
	}
	return int(free)
}

type Candidate struct {
	Enrollment model.CampaignContact
	Contact    *model.Contact
}

type SkipReason string

const (
	SkipDoNotCall      SkipReason = "do_not_call"
	SkipNoPhone        SkipReason = "no_phone"
	SkipContactMissing SkipReason = "contact_missing"
)

type Skipped struct {
	Candidate
	Reason SkipReason
}

type Plan struct {
	Dispatch []Candidate
	Skip     []Skipped
	// Deferred counts candidates outside their local window this tick.
	Deferred int
}

// Build selects up to slots candidates that are callable at now. Candidates
// that can never be called are returned in Skip regardless of slots.
func Build(c *model.Campaign, candidates []Candidate, slots int, now time.Time) Plan {
	var plan Plan
	for _, cand := range candidates {
		switch {
		case cand.Contact == nil:
			plan.Skip = append(plan.Skip, Skipped{Candidate: cand, Reason: SkipContactMissing})
			continue
		case cand.Contact.DoNotCall:
			plan.Skip = append(plan.Skip, Skipped{Candidate: cand, Reason: SkipDoNotCall})
			continue
		case !cand.Contact.HasPhone():
			plan.Skip = append(plan.Skip, Skipped{Candidate: cand, Reason: SkipNoPhone})
			continue
		}
		if len(plan.Dispatch) >= slots {
			continue
		}
		if !InWindow(c, now, ResolveTimezone(cand.Contact, time.UTC)) {
			plan.Deferred++
			continue
		}
		plan.Dispatch = append(plan.Dispatch, cand)
	}
	return plan
}

// Next is the enrollment state a call result leads to.
type Next struct {
	Status        model.CampaignContactStatus
	NextAttemptAt *time.Time
}

// AfterCall maps a finished call to the enrollment's next state. attempts
// counts the call that just finished.
func AfterCall(c *model.Campaign, attempts int32, status model.CallStatus, now time.Time) Next {
	if status == model.CallStatusCompleted {
		return Next{Status: model.CampaignContactStatusCompleted}
	}
	return retryOrFail(c, attempts, now)
}

// AfterDispatchFailure handles a provider error while placing the call.
func AfterDispatchFailure(c *model.Campaign, attempts int32, now time.Time) Next {
	return retryOrFail(c, attempts, now)
}

func retryOrFail(c *model.Campaign, attempts int32, now time.Time) Next {
	if attempts >= c.MaxAttempts {
		return Next{Status: model.CampaignContactStatusFailed}
	}
	at := now.Add(time.Duration(c.RetryIntervalMinutes) * time.Minute)
	return Next{Status: model.CampaignContactStatusPending, NextAttemptAt: &at}
}
