package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/dto"
	"switchyard.app/platform/internal/importer"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

// maxImportBytes caps uploaded spreadsheets.
const maxImportBytes = 10 << 20

type ContactHandler struct {
	contacts service.ContactService
}

func NewContactHandler(contacts service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	contact, err := h.contacts.Create(c.Request.Context(), currentOrgID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "create contact")
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "contact_id")
	if !ok {
		return
	}
	contact, err := h.contacts.Get(c.Request.Context(), currentOrgID(c), id)
	if err != nil {
		respondError(c, err, "get contact")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "contact_id")
	if !ok {
		return
	}
	var req dto.ContactPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	contact, err := h.contacts.Update(c.Request.Context(), currentOrgID(c), id, req.ToPatch())
	if err != nil {
		respondError(c, err, "update contact")
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "contact_id")
	if !ok {
		return
	}
	if err := h.contacts.Delete(c.Request.Context(), currentOrgID(c), id); err != nil {
		respondError(c, err, "delete contact")
		return
	}
	c.Status(http.StatusNoContent)
}

// List filters by status, tag, owner and a free-text q.
func (h *ContactHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	filter := model.ContactFilter{Limit: int32(limit), Offset: int32(offset)}

	if s := c.Query("status"); s != "" {
		status := model.ContactStatus(s)
		if !status.Valid() {
			respondError(c, service.ErrInvalidStatus, "list contacts")
			return
		}
		filter.Status = &status
	}
	if tag := strings.TrimSpace(c.Query("tag")); tag != "" {
		filter.Tag = &tag
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		filter.Query = &q
	}
	owner, ok := queryID(c, "owner_user_id")
	if !ok {
		return
	}
	filter.OwnerUserID = owner

	page, err := h.contacts.List(c.Request.Context(), currentOrgID(c), filter)
	if err != nil {
		respondError(c, err, "list contacts")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ContactHandler) Search(c *gin.Context) {
	limit, offset := pagination(c)
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	page, err := h.contacts.Search(c.Request.Context(), currentOrgID(c), query, limit, offset)
	if err != nil {
		respondError(c, err, "search contacts")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ContactHandler) UpdateTags(c *gin.Context) {
	id, ok := pathID(c, "contact_id")
	if !ok {
		return
	}
	var req dto.TagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if len(req.Add) == 0 && len(req.Remove) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "add or remove is required"})
		return
	}

	ctx := c.Request.Context()
	orgID := currentOrgID(c)
	var contact *model.Contact
	var err error
	if len(req.Add) > 0 {
		if contact, err = h.contacts.AddTags(ctx, orgID, id, req.Add); err != nil {
			respondError(c, err, "update tags")
			return
		}
	}
	if len(req.Remove) > 0 {
		if contact, err = h.contacts.RemoveTags(ctx, orgID, id, req.Remove); err != nil {
			respondError(c, err, "update tags")
			return
		}
	}
	c.JSON(http.StatusOK, contact)
}

// Import takes a multipart upload. With commit=true the rows are written,
// otherwise a preview with the inferred mapping is returned.
func (h *ContactHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	overrides, err := parseMapping(c.PostForm("mapping"))
	if err != nil {
		badRequest(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer f.Close()

	ctx := c.Request.Context()
	if c.PostForm("commit") != "true" {
		preview, err := h.contacts.PreviewImport(ctx, fh.Filename, f, overrides)
		if err != nil {
			respondError(c, err, "preview import")
			return
		}
		c.JSON(http.StatusOK, preview)
		return
	}

	result, err := h.contacts.CommitImport(ctx, currentOrgID(c), fh.Filename, f, overrides, actorID(c))
	if err != nil {
		respondError(c, err, "import contacts")
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseMapping(raw string) (map[string]importer.Field, error) {
	if raw == "" {
		return nil, nil
	}
	var overrides map[string]importer.Field
	if err := json.Unmarshal([]byte(raw), &overrides); err != nil {
		return nil, err
	}
	for header, field := range overrides {
		if !field.Valid() {
			return nil, &invalidFieldError{header: header, field: field}
		}
	}
	return overrides, nil
}

type invalidFieldError struct {
	header string
	field  importer.Field
}

func (e *invalidFieldError) Error() string {
	return "column " + e.header + ": unknown field " + string(e.field)
}
