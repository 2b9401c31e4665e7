package dto

import (
	"time"

	"github.com/agate-ltd/agency-crm/internal/domain"
)

// StaffResponse is a staff profile with the password hash stripped.
type StaffResponse struct {
	ID             string   `json:"id"`
	StaffID        string   `json:"staffId"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	ProfilePicture string   `json:"profilePicture"`
	Roles          []string `json:"roles"`
	domain.RoleFlags
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewStaffResponse maps a staff member.
func NewStaffResponse(staff *domain.StaffMember) StaffResponse {
	return StaffResponse{
		ID:             staff.ID,
		StaffID:        staff.StaffID,
		FirstName:      staff.FirstName,
		LastName:       staff.LastName,
		ProfilePicture: staff.ProfilePicture,
		Roles:          staff.Roles.Names(),
		RoleFlags:      staff.Roles.Flags(),
		CreatedAt:      staff.CreatedAt,
		UpdatedAt:      staff.UpdatedAt,
	}
}

// StaffAvatar is the trimmed projection used by avatar pickers.
type StaffAvatar struct {
	ID             string `json:"id"`
	StaffID        string `json:"staffId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	ProfilePicture string `json:"profilePicture"`
	domain.RoleFlags
}

// StaffListResponse is one page of staff with totals.
type StaffListResponse struct {
	Users          []StaffResponse `json:"users"`
	TotalUsers     int             `json:"totalUsers"`
	LastMonthUsers int             `json:"lastMonthUsers"`
}

// UpdatePermissionsRequest replaces a staff member's role flags. Missing flags are false.
type UpdatePermissionsRequest struct {
	domain.RoleFlags
}

// UpdateStaffRequest payload for profile updates. Role flags are replaced only when at least one is sent.
type UpdateStaffRequest struct {
	StaffID        *string `json:"staffId"`
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Password       *string `json:"password"`
	ProfilePicture *string `json:"profilePicture"`
	domain.RoleFlags
}

// HasRoleFlags reports whether any role flag was present in the payload.
func (r UpdateStaffRequest) HasRoleFlags() bool {
	f := r.RoleFlags
	return f.IsAdmin != nil || f.IsManager != nil || f.IsAccountant != nil ||
		f.IsCreativeStaff != nil || f.IsWaiter != nil || f.IsReception != nil
}
