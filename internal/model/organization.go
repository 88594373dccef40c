package model

import "time"

type OrganizationStatus string

const (
	OrganizationStatusActive    OrganizationStatus = "active"
	OrganizationStatusSuspended OrganizationStatus = "suspended"
)

func (s OrganizationStatus) Valid() bool {
	return s == OrganizationStatusActive || s == OrganizationStatusSuspended
}

type Organization struct {
	ID          int64              `json:"id,string"`
	OwnerUserID int64              `json:"owner_user_id,string"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Status      OrganizationStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	IsDeleted   bool               `json:"-"`
}

func (o *Organization) IsSuspended() bool {
	return o.Status == OrganizationStatusSuspended
}
