package dto

import (
	"time"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type ContactRequest struct {
	OwnerUserID  *int64              `json:"owner_user_id,string,omitempty"`
	FirstName    string              `json:"first_name" binding:"max=255"`
	LastName     string              `json:"last_name" binding:"max=255"`
	Email        *string             `json:"email,omitempty" binding:"omitempty,max=255"`
	Phone        *string             `json:"phone,omitempty" binding:"omitempty,max=32"`
	Company      *string             `json:"company,omitempty" binding:"omitempty,max=255"`
	Title        *string             `json:"title,omitempty" binding:"omitempty,max=255"`
	State        *string             `json:"state,omitempty" binding:"omitempty,max=64"`
	Timezone     *string             `json:"timezone,omitempty" binding:"omitempty,max=64"`
	Status       model.ContactStatus `json:"status,omitempty"`
	Tags         []string            `json:"tags,omitempty" binding:"max=50"`
	CustomFields map[string]string   `json:"custom_fields,omitempty"`
	DoNotCall    bool                `json:"do_not_call"`
}

func (r ContactRequest) ToInput() service.ContactInput {
	return service.ContactInput{
		OwnerUserID:  r.OwnerUserID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Phone:        r.Phone,
		Company:      r.Company,
		Title:        r.Title,
		State:        r.State,
		Timezone:     r.Timezone,
		Status:       r.Status,
		Tags:         r.Tags,
		CustomFields: r.CustomFields,
		DoNotCall:    r.DoNotCall,
		Source:       "manual",
	}
}

// ContactPatchRequest applies only the fields present. An empty string clears an optional field.
type ContactPatchRequest struct {
	OwnerUserID  *int64               `json:"owner_user_id,string,omitempty"`
	FirstName    *string              `json:"first_name,omitempty"`
	LastName     *string              `json:"last_name,omitempty"`
	Email        *string              `json:"email,omitempty"`
	Phone        *string              `json:"phone,omitempty"`
	Company      *string              `json:"company,omitempty"`
	Title        *string              `json:"title,omitempty"`
	State        *string              `json:"state,omitempty"`
	Timezone     *string              `json:"timezone,omitempty"`
	Status       *model.ContactStatus `json:"status,omitempty"`
	CustomFields map[string]string    `json:"custom_fields,omitempty"`
	DoNotCall    *bool                `json:"do_not_call,omitempty"`
}

func (r ContactPatchRequest) ToPatch() service.ContactPatch {
	return service.ContactPatch{
		OwnerUserID:  r.OwnerUserID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Phone:        r.Phone,
		Company:      r.Company,
		Title:        r.Title,
		State:        r.State,
		Timezone:     r.Timezone,
		Status:       r.Status,
		CustomFields: r.CustomFields,
		DoNotCall:    r.DoNotCall,
	}
}

type TagsRequest struct {
	Add    []string `json:"add,omitempty"`
	Remove []string `json:"remove,omitempty"`
}

type DealRequest struct {
	ContactID       *int64          `json:"contact_id,string,omitempty"`
	OwnerUserID     *int64          `json:"owner_user_id,string,omitempty"`
	Title           string          `json:"title" binding:"required,max=255"`
	Stage           model.DealStage `json:"stage,omitempty"`
	AmountCents     int64           `json:"amount_cents"`
	Currency        string          `json:"currency,omitempty" binding:"omitempty,len=3"`
	ExpectedCloseAt *time.Time      `json:"expected_close_at,omitempty"`
}

func (r DealRequest) ToInput() service.DealInput {
	return service.DealInput{
		ContactID:       r.ContactID,
		OwnerUserID:     r.OwnerUserID,
		Title:           r.Title,
		Stage:           r.Stage,
		AmountCents:     r.AmountCents,
		Currency:        r.Currency,
		ExpectedCloseAt: r.ExpectedCloseAt,
	}
}

type DealPatchRequest struct {
	ContactID       *int64     `json:"contact_id,string,omitempty"`
	OwnerUserID     *int64     `json:"owner_user_id,string,omitempty"`
	Title           *string    `json:"title,omitempty" binding:"omitempty,max=255"`
	AmountCents     *int64     `json:"amount_cents,omitempty"`
	Currency        *string    `json:"currency,omitempty" binding:"omitempty,len=3"`
	ExpectedCloseAt *time.Time `json:"expected_close_at,omitempty"`
}

func (r DealPatchRequest) ToPatch() service.DealPatch {
	return service.DealPatch{
		ContactID:       r.ContactID,
		OwnerUserID:     r.OwnerUserID,
		Title:           r.Title,
		AmountCents:     r.AmountCents,
		Currency:        r.Currency,
		ExpectedCloseAt: r.ExpectedCloseAt,
	}
}

type StageRequest struct {
	Stage model.DealStage `json:"stage" binding:"required"`
}

type ProjectRequest struct {
	DealID      *int64     `json:"deal_id,string,omitempty"`
	Name        string     `json:"name" binding:"required,max=255"`
	Description *string    `json:"description,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty"`
}

func (r ProjectRequest) ToInput() service.ProjectInput {
	return service.ProjectInput{
		DealID:      r.DealID,
		Name:        r.Name,
		Description: r.Description,
		DueAt:       r.DueAt,
	}
}

type ProjectStatusRequest struct {
	Status model.ProjectStatus `json:"status" binding:"required"`
}

type TemplateRequest struct {
	Kind    model.TemplateKind `json:"kind" binding:"required"`
	Name    string             `json:"name" binding:"required,max=255"`
	Subject *string            `json:"subject,omitempty"`
	Body    string             `json:"body" binding:"required"`
}

func (r TemplateRequest) ToInput() service.TemplateInput {
	return service.TemplateInput{
		Kind:    r.Kind,
		Name:    r.Name,
		Subject: r.Subject,
		Body:    r.Body,
	}
}

type PreviewRequest struct {
	ContactID *int64 `json:"contact_id,string,omitempty"`
}
