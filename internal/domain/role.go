package domain

import (
	"sort"
	"strings"
)

// Role is a single staff permission flag.
type Role uint8

const (
	RoleAdmin Role = 1 << iota
	RoleManager
	RoleAccountant
	RoleCreativeStaff
	RoleWaiter
	RoleReception
)

// allRoles lists every known flag in display order.
var allRoles = []Role{RoleAdmin, RoleManager, RoleAccountant, RoleCreativeStaff, RoleWaiter, RoleReception}

var roleNames = map[Role]string{
	RoleAdmin:         "admin",
	RoleManager:       "manager",
	RoleAccountant:    "accountant",
	RoleCreativeStaff: "creative_staff",
	RoleWaiter:        "waiter",
	RoleReception:     "reception",
}

// String returns the lowercase name of the flag.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Roles is a set of Role flags stored as a bitmask.
type Roles uint8

// RoleSet builds a set from individual flags.
func RoleSet(roles ...Role) Roles {
	var set Roles
	for _, r := range roles {
		set |= Roles(r)
	}
	return set
}

// Has reports whether the set contains r.
func (s Roles) Has(r Role) bool {
	return s&Roles(r) != 0
}

// HasAny reports whether the set contains at least one of roles.
func (s Roles) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Empty reports whether no known flag is set.
func (s Roles) Empty() bool {
	return s&RoleSet(allRoles...) == 0
}

// With returns a copy of the set with r added or removed.
func (s Roles) With(r Role, enabled bool) Roles {
	if enabled {
		return s | Roles(r)
	}
	return s &^ Roles(r)
}

// Names lists the flag names in display order.
func (s Roles) Names() []string {
	names := make([]string, 0, len(allRoles))
	for _, r := range allRoles {
		if s.Has(r) {
			names = append(names, r.String())
		}
	}
	return names
}

// ParseRoles converts role names into a set, rejecting unknown names.
func ParseRoles(names []string) (Roles, []string) {
	var (
		set     Roles
		unknown []string
	)
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		matched := false
		for role, roleName := range roleNames {
			if roleName == name {
				set |= Roles(role)
				matched = true
				break
			}
		}
		if !matched {
			unknown = append(unknown, raw)
		}
	}
	sort.Strings(unknown)
	return set, unknown
}

// RoleFlags mirrors the boolean flags used by dashboard clients.
type RoleFlags struct {
	IsAdmin         *bool `json:"isAdmin,omitempty"`
	IsManager       *bool `json:"isManager,omitempty"`
	IsAccountant    *bool `json:"isAccountant,omitempty"`
	IsCreativeStaff *bool `json:"isCreativeStaff,omitempty"`
	IsWaiter        *bool `json:"isWaiter,omitempty"`
	IsReception     *bool `json:"isReception,omitempty"`
}

// Roles converts the flags to a set. Missing flags count as false.
func (f RoleFlags) Roles() Roles {
	var set Roles
	pairs := []struct {
		flag *bool
		role Role
	}{
		{f.IsAdmin, RoleAdmin},
		{f.IsManager, RoleManager},
		{f.IsAccountant, RoleAccountant},
		{f.IsCreativeStaff, RoleCreativeStaff},
		{f.IsWaiter, RoleWaiter},
		{f.IsReception, RoleReception},
	}
	for _, p := range pairs {
		if p.flag != nil && *p.flag {
			set |= Roles(p.role)
		}
	}
	return set
}

// Flags expands the set into dashboard boolean flags.
func (s Roles) Flags() RoleFlags {
	flag := func(r Role) *bool {
		v := s.Has(r)
		return &v
	}
	return RoleFlags{
		IsAdmin:         flag(RoleAdmin),
		IsManager:       flag(RoleManager),
		IsAccountant:    flag(RoleAccountant),
		IsCreativeStaff: flag(RoleCreativeStaff),
		IsWaiter:        flag(RoleWaiter),
		IsReception:     flag(RoleReception),
	}
}
