package domain

import (
	"regexp"
	"time"
)

// DefaultProfilePicture is assigned when a staff account is created without one.
const DefaultProfilePicture = "https://static.vecteezy.com/system/resources/previews/005/544/718/non_2x/profile-icon-design-free-vector.jpg"

var staffIDPattern = regexp.MustCompile(`^\d{6}$`)

// ValidStaffID reports whether id is exactly six digits.
func ValidStaffID(id string) bool {
	return staffIDPattern.MatchString(id)
}

// StaffMember models an agency employee who can sign in.
type StaffMember struct {
	ID             string
	StaffID        string
	FirstName      string
	LastName       string
	PasswordHash   string
	ProfilePicture string
	Roles          Roles
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
