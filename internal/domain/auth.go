package domain

import "time"

// Session describes an issued session token.
type Session struct {
	Token     string
	StaffID   string
	Roles     Roles
	IssuedAt  time.Time
	ExpiresAt time.Time
}
