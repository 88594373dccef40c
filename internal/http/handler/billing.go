package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/dto"
	"switchyard.app/platform/internal/service"
)

type BillingHandler struct {
	billing service.BillingService
}

func NewBillingHandler(billing service.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

func (h *BillingHandler) Plans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": h.billing.Plans()})
}

func (h *BillingHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	quote, err := h.billing.Quote(req.ToInput())
	if err != nil {
		respondError(c, err, "quote plan")
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (h *BillingHandler) Subscription(c *gin.Context) {
	sub, err := h.billing.Current(c.Request.Context(), currentOrgID(c))
	if err != nil {
		respondError(c, err, "get subscription")
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *BillingHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var email string
	if user := currentUser(c); user != nil {
		email = user.Email
	}
	session, err := h.billing.Checkout(c.Request.Context(), currentOrgID(c), req.PlanCode, req.Seats, email)
	if err != nil {
		respondError(c, err, "start checkout")
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *BillingHandler) Cancel(c *gin.Context) {
	sub, err := h.billing.Cancel(c.Request.Context(), currentOrgID(c))
	if err != nil {
		respondError(c, err, "cancel subscription")
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *BillingHandler) Invoices(c *gin.Context) {
	limit, offset := pagination(c)
	invoices, err := h.billing.Invoices(c.Request.Context(), currentOrgID(c), limit, offset)
	if err != nil {
		respondError(c, err, "list invoices")
		return
	}
	c.JSON(http.StatusOK, newList(invoices, limit, offset))
}
