package model

import "time"

type Session struct {
	ID              int64     `json:"id,string"`
	UserID          int64     `json:"user_id,string"`
	WorkOSSessionID *string   `json:"-"`
	ExpiresAt       time.Time `json:"expires_at"`
	CreatedAt       time.Time `json:"created_at"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
