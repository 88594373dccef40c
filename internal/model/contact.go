package model

import (
	"encoding/json"
	"strings"
	"time"
)

type ContactStatus string

const (
	ContactStatusLead     ContactStatus = "lead"
	ContactStatusActive   ContactStatus = "active"
	ContactStatusCustomer ContactStatus = "customer"
	ContactStatusChurned  ContactStatus = "churned"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusLead, ContactStatusActive, ContactStatusCustomer, ContactStatusChurned:
		return true
	}
	return false
}

type Contact struct {
	ID             int64             `json:"id,string"`
	OrganizationID int64             `json:"organization_id,string"`
	OwnerUserID    *int64            `json:"owner_user_id,string,omitempty"`
	FirstName      string            `json:"first_name"`
	LastName       string            `json:"last_name"`
	Email          *string           `json:"email,omitempty"`
	Phone          *string           `json:"phone,omitempty"`
	Company        *string           `json:"company,omitempty"`
	Title          *string           `json:"title,omitempty"`
	State          *string           `json:"state,omitempty"`
	Timezone       *string           `json:"timezone,omitempty"`
	Status         ContactStatus     `json:"status"`
	Tags           []string          `json:"tags"`
	CustomFields   map[string]string `json:"custom_fields"`
	DoNotCall      bool              `json:"do_not_call"`
	Source         string            `json:"source"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func (c *Contact) HasPhone() bool {
	return c.Phone != nil && *c.Phone != ""
}

func (c *Contact) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Document is the JSON shape condition trees are evaluated against.
func (c *Contact) Document() []byte {
	b, _ := json.Marshal(struct {
		*Contact
		Name string `json:"name"`
	}{Contact: c, Name: c.FullName()})
	return b
}

type ContactFilter struct {
	Status      *ContactStatus
	Tag         *string
	OwnerUserID *int64
	Query       *string
	Limit       int32
	Offset      int32
}
