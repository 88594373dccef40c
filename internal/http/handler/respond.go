package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"switchyard.app/platform/internal/billing"
	"switchyard.app/platform/internal/http/middleware"
	"switchyard.app/platform/internal/importer"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// errorStatus maps service errors onto HTTP statuses. Anything unlisted is a 500.
var errorStatus = []struct {
	err    error
	status int
}{
	{service.ErrOrganizationNotFound, http.StatusNotFound},
	{service.ErrMemberNotFound, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrInviteNotFound, http.StatusNotFound},
	{service.ErrContactNotFound, http.StatusNotFound},
	{service.ErrDealNotFound, http.StatusNotFound},
	{service.ErrProjectNotFound, http.StatusNotFound},
	{service.ErrTemplateNotFound, http.StatusNotFound},
	{service.ErrCampaignNotFound, http.StatusNotFound},
	{service.ErrCallNotFound, http.StatusNotFound},
	{service.ErrEmailAccountNotFound, http.StatusNotFound},
	{service.ErrEmailMessageNotFound, http.StatusNotFound},
	{service.ErrSubscriptionNotFound, http.StatusNotFound},
	{service.ErrAutomationNotFound, http.StatusNotFound},
	{service.ErrTicketNotFound, http.StatusNotFound},

	{service.ErrInvitePendingExists, http.StatusConflict},
	{service.ErrLastOwner, http.StatusConflict},
	{service.ErrStageTransition, http.StatusConflict},
	{service.ErrProjectTransition, http.StatusConflict},
	{service.ErrCampaignTransition, http.StatusConflict},
	{service.ErrCampaignNotEditable, http.StatusConflict},
	{service.ErrTicketClosed, http.StatusConflict},

	{service.ErrInviteExpired, http.StatusGone},
	{service.ErrInviteAlreadyUsed, http.StatusGone},
	{service.ErrInviteRevoked, http.StatusGone},

	{service.ErrEmailMismatch, http.StatusForbidden},
	{service.ErrContactLimitReached, http.StatusPaymentRequired},
	{service.ErrEmailAccountExpired, http.StatusFailedDependency},
	{service.ErrAssistantDisabled, http.StatusServiceUnavailable},

	{service.ErrOrganizationName, http.StatusBadRequest},
	{service.ErrInvalidEmail, http.StatusBadRequest},
	{service.ErrContactIdentity, http.StatusBadRequest},
	{service.ErrInvalidPhone, http.StatusBadRequest},
	{service.ErrInvalidStatus, http.StatusBadRequest},
	{service.ErrInvalidTimezone, http.StatusBadRequest},
	{service.ErrInvalidDeal, http.StatusBadRequest},
	{service.ErrInvalidStage, http.StatusBadRequest},
	{service.ErrDealContactMismatch, http.StatusBadRequest},
	{service.ErrProjectName, http.StatusBadRequest},
	{service.ErrProjectStatus, http.StatusBadRequest},
	{service.ErrInvalidTemplate, http.StatusBadRequest},
	{service.ErrInvalidCampaign, http.StatusBadRequest},
	{service.ErrEnrollTarget, http.StatusBadRequest},
	{service.ErrInvalidView, http.StatusBadRequest},
	{service.ErrInvalidDecision, http.StatusBadRequest},
	{service.ErrInvalidSend, http.StatusBadRequest},
	{service.ErrInvalidAutomation, http.StatusBadRequest},
	{service.ErrInvalidTicket, http.StatusBadRequest},
	{service.ErrInvalidPriority, http.StatusBadRequest},
	{service.ErrTicketStatus, http.StatusBadRequest},
	{service.ErrEmptyComment, http.StatusBadRequest},
	{service.ErrPlanNotPurchasable, http.StatusBadRequest},
	{service.ErrInvalidUsage, http.StatusBadRequest},
	{billing.ErrUnknownPlan, http.StatusBadRequest},
	{billing.ErrInvalidQuote, http.StatusBadRequest},
	{importer.ErrUnsupportedFormat, http.StatusBadRequest},
	{importer.ErrEmptyFile, http.StatusBadRequest},
	{importer.ErrTooManyRows, http.StatusRequestEntityTooLarge},
}

// respondError writes the mapped status for known errors and logs the rest.
func respondError(c *gin.Context, err error, action string) {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"error": err.Error()})
			return
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
		return
	}

	slog.ErrorContext(c.Request.Context(), "failed to "+action, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// pathID parses an int64 path parameter and answers 400 when it is malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}

// queryID parses an optional int64 query parameter.
func queryID(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	return &v, true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	offset, _ = strconv.Atoi(c.Query("offset"))
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func currentOrgID(c *gin.Context) int64 {
	return middleware.GetOrganization(c.Request.Context()).ID
}

func currentUser(c *gin.Context) *model.User {
	return middleware.GetUser(c.Request.Context())
}

// actorID is nil for API-key admin calls.
func actorID(c *gin.Context) *int64 {
	if user := currentUser(c); user != nil {
		return &user.ID
	}
	return nil
}

type listResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func newList[T any](items []T, limit, offset int) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Limit: limit, Offset: offset}
}
