package dto

import (
	"github.com/shopspring/decimal"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type QuoteRequest struct {
	PlanCode         string                `json:"plan_code" binding:"required"`
	Seats            int32                 `json:"seats"`
	EstimatedMinutes int32                 `json:"estimated_minutes"`
	Interval         model.BillingInterval `json:"interval,omitempty"`
	DiscountPercent  decimal.Decimal       `json:"discount_percent"`
}

func (r QuoteRequest) ToInput() service.QuoteInput {
	return service.QuoteInput{
		PlanCode:         r.PlanCode,
		Seats:            r.Seats,
		EstimatedMinutes: r.EstimatedMinutes,
		Interval:         r.Interval,
		DiscountPercent:  r.DiscountPercent,
	}
}

type CheckoutRequest struct {
	PlanCode string `json:"plan_code" binding:"required"`
	Seats    int32  `json:"seats"`
}
