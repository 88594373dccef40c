package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/dto"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type EmailHandler struct {
	email service.EmailService
}

func NewEmailHandler(email service.EmailService) *EmailHandler {
	return &EmailHandler{email: email}
}

// Connect returns the hosted auth URL for linking a mailbox.
func (h *EmailHandler) Connect(c *gin.Context) {
	state, err := generateState()
	if err != nil {
		respondError(c, err, "generate state")
		return
	}
	url, err := h.email.ConnectURL(state)
	if err != nil {
		respondError(c, err, "build connect url")
		return
	}
	c.JSON(http.StatusOK, dto.ConnectResponse{URL: url, State: state})
}

func (h *EmailHandler) Callback(c *gin.Context) {
	var req dto.ConnectCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	account, err := h.email.Connect(c.Request.Context(), currentOrgID(c), currentUser(c).ID, req.Code)
	if err != nil {
		respondError(c, err, "connect mailbox")
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *EmailHandler) Accounts(c *gin.Context) {
	accounts, err := h.email.Accounts(c.Request.Context(), currentOrgID(c), currentUser(c).ID)
	if err != nil {
		respondError(c, err, "list mailboxes")
		return
	}
	if accounts == nil {
		accounts = []model.EmailAccount{}
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func (h *EmailHandler) ListMessages(c *gin.Context) {
	limit, offset := pagination(c)
	accountID, ok := queryID(c, "account_id")
	if !ok {
		return
	}
	view := model.EmailView(c.DefaultQuery("view", string(model.EmailViewImbox)))

	page, err := h.email.ListMessages(c.Request.Context(), currentOrgID(c), currentUser(c).ID, accountID, view, limit, offset)
	if err != nil {
		respondError(c, err, "list messages")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *EmailHandler) GetMessage(c *gin.Context) {
	id, ok := pathID(c, "message_id")
	if !ok {
		return
	}
	msg, err := h.email.GetMessage(c.Request.Context(), currentOrgID(c), id)
	if err != nil {
		respondError(c, err, "get message")
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *EmailHandler) UpdateFlags(c *gin.Context) {
	id, ok := pathID(c, "message_id")
	if !ok {
		return
	}
	var req dto.FlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	msg, err := h.email.UpdateFlags(c.Request.Context(), currentOrgID(c), id, req.Unread, req.Starred)
	if err != nil {
		respondError(c, err, "update message")
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *EmailHandler) DraftReply(c *gin.Context) {
	id, ok := pathID(c, "message_id")
	if !ok {
		return
	}
	var req dto.DraftReplyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	draft, err := h.email.DraftReply(c.Request.Context(), currentOrgID(c), id, req.Tone)
	if err != nil {
		respondError(c, err, "draft reply")
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *EmailHandler) Send(c *gin.Context) {
	var req dto.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.email.Send(c.Request.Context(), currentOrgID(c), currentUser(c).ID, req.ToInput()); err != nil {
		respondError(c, err, "send email")
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

func (h *EmailHandler) Screener(c *gin.Context) {
	accountID, ok := queryID(c, "account_id")
	if !ok {
		return
	}
	senders, err := h.email.ScreenerSenders(c.Request.Context(), currentOrgID(c), currentUser(c).ID, accountID)
	if err != nil {
		respondError(c, err, "list screener")
		return
	}
	if senders == nil {
		senders = []model.ScreenerSender{}
	}
	c.JSON(http.StatusOK, gin.H{"senders": senders})
}

func (h *EmailHandler) Decide(c *gin.Context) {
	var req dto.ScreenerDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	moved, err := h.email.DecideSender(c.Request.Context(), currentOrgID(c), currentUser(c).ID, req.AccountID, req.Sender, req.Decision)
	if err != nil {
		respondError(c, err, "decide sender")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sender": req.Sender, "decision": req.Decision, "moved": moved})
}
