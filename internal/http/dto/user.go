package dto

import (
	"time"

	"switchyard.app/platform/internal/model"
)

type UserResponse struct {
	ID              int64     `json:"id,string"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	AvatarURL       *string   `json:"avatar_url,omitempty"`
	IsPlatformAdmin bool      `json:"is_platform_admin"`
	CreatedAt       time.Time `json:"created_at"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		AvatarURL:       u.AvatarURL,
		IsPlatformAdmin: u.IsPlatformAdmin,
		CreatedAt:       u.CreatedAt,
	}
}

type OrganizationBrief struct {
	ID     int64                    `json:"id,string"`
	Name   string                   `json:"name"`
	Slug   string                   `json:"slug"`
	Status model.OrganizationStatus `json:"status"`
}

func ToOrganizationBrief(org model.Organization) OrganizationBrief {
	return OrganizationBrief{
		ID:     org.ID,
		Name:   org.Name,
		Slug:   org.Slug,
		Status: org.Status,
	}
}

func ToOrganizationBriefs(orgs []model.Organization) []OrganizationBrief {
	out := make([]OrganizationBrief, len(orgs))
	for i, org := range orgs {
		out[i] = ToOrganizationBrief(org)
	}
	return out
}

type SessionResponse struct {
	User            *UserResponse       `json:"user"`
	Organizations   []OrganizationBrief `json:"organizations"`
	HasOrganization bool                `json:"has_organization"`
	IsPlatformAdmin bool                `json:"is_platform_admin"`
}

type ExchangeRequest struct {
	Code        string  `json:"code" binding:"required"`
	InviteToken *string `json:"invite_token,omitempty"`
}

type ExchangeResponse struct {
	User      *UserResponse `json:"user"`
	SessionID string        `json:"session_id"`
	ExpiresIn int           `json:"expires_in"`
}

type LogoutRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	ReturnTo  string `json:"return_to,omitempty"`
}

type LogoutResponse struct {
	Message   string `json:"message"`
	LogoutURL string `json:"logout_url,omitempty"`
}
