package model

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleViewer Role = "viewer"
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RoleOwner  Role = "owner"
)

var roleRank = map[Role]int{
	RoleViewer: 1,
	RoleMember: 2,
	RoleAdmin:  3,
	RoleOwner:  4,
}

// ParseRole rejects anything outside the four known roles.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleRank[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// AtLeast reports whether r grants everything min grants.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min] && roleRank[r] > 0
}

type Membership struct {
	ID             int64     `json:"id,string"`
	OrganizationID int64     `json:"organization_id,string"`
	UserID         int64     `json:"user_id,string"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// Member is a membership joined with its user.
type Member struct {
	UserID    int64     `json:"user_id,string"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Role      Role      `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
}
