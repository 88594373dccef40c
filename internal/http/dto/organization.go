package dto

import (
	"time"

	"switchyard.app/platform/internal/model"
)

type CreateOrganizationRequest struct {
	Name string  `json:"name" binding:"required,min=1,max=255"`
	Slug *string `json:"slug,omitempty" binding:"omitempty,min=1,max=255"`
}

type UpdateOrganizationRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type OrganizationResponse struct {
	ID          int64                    `json:"id,string"`
	Name        string                   `json:"name"`
	Slug        string                   `json:"slug"`
	Status      model.OrganizationStatus `json:"status"`
	OwnerUserID int64                    `json:"owner_user_id,string"`
	Role        model.Role               `json:"role,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

func ToOrganizationResponse(org *model.Organization, role model.Role) *OrganizationResponse {
	return &OrganizationResponse{
		ID:          org.ID,
		Name:        org.Name,
		Slug:        org.Slug,
		Status:      org.Status,
		OwnerUserID: org.OwnerUserID,
		Role:        role,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
}

type UpdateMemberRequest struct {
	Role model.Role `json:"role" binding:"required"`
}

type CreateInvitationRequest struct {
	Email string     `json:"email" binding:"required,email"`
	Role  model.Role `json:"role,omitempty"`
}

type AdminCreateInvitationRequest struct {
	OrganizationID int64      `json:"organization_id,string" binding:"required"`
	Email          string     `json:"email" binding:"required,email"`
	Role           model.Role `json:"role,omitempty"`
}

type RevokeInvitationRequest struct {
	ID int64 `json:"id,string" binding:"required"`
}

type InvitationResponse struct {
	ID             int64                  `json:"id,string"`
	OrganizationID int64                  `json:"organization_id,string"`
	Email          string                 `json:"email"`
	Role           model.Role             `json:"role"`
	Status         model.InvitationStatus `json:"status"`
	InviteURL      string                 `json:"invite_url,omitempty"`
	ExpiresAt      time.Time              `json:"expires_at"`
	CreatedAt      time.Time              `json:"created_at"`
	AcceptedAt     *time.Time             `json:"accepted_at,omitempty"`
}

// ToInvitationResponse never exposes the token itself; only the invite URL carries it.
func ToInvitationResponse(inv *model.Invitation, inviteURL string) InvitationResponse {
	return InvitationResponse{
		ID:             inv.ID,
		OrganizationID: inv.OrganizationID,
		Email:          inv.Email,
		Role:           inv.Role,
		Status:         inv.Status,
		InviteURL:      inviteURL,
		ExpiresAt:      inv.ExpiresAt,
		CreatedAt:      inv.CreatedAt,
		AcceptedAt:     inv.AcceptedAt,
	}
}

func ToInvitationResponses(invs []model.Invitation) []InvitationResponse {
	out := make([]InvitationResponse, len(invs))
	for i := range invs {
		out[i] = ToInvitationResponse(&invs[i], "")
	}
	return out
}
