package dto

import "github.com/agate-ltd/agency-crm/internal/domain"

// SignUpRequest payload for creating a staff account.
type SignUpRequest struct {
	StaffID   string `json:"staffId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	domain.RoleFlags
}

// SignInRequest payload for sign-in.
type SignInRequest struct {
	StaffID  string `json:"staffId"`
	Password string `json:"password"`
}

// SignInResponse is the staff profile plus the absolute session expiry in epoch milliseconds.
type SignInResponse struct {
	Success bool `json:"success"`
	StaffResponse
	SessionExpiresAt int64 `json:"sessionExpiresAt"`
}

// RefreshResponse carries the new absolute session expiry in epoch milliseconds.
type RefreshResponse struct {
	Success          bool  `json:"success"`
	SessionExpiresAt int64 `json:"sessionExpiresAt"`
}
