package models

import "strings"

// EntityType identifies which backend resource family a view operates on
type EntityType string

const (
	EntityTypeTask        EntityType = "task"
	EntityTypeTicket      EntityType = "ticket"
	EntityTypeContact     EntityType = "contact"
	EntityTypeLead        EntityType = "lead"
	EntityTypeOpportunity EntityType = "opportunity"
	EntityTypeBusiness    EntityType = "business"
	EntityTypeInvitation  EntityType = "invitation"
	EntityTypeUser        EntityType = "user"
	EntityTypeCompany     EntityType = "company"
	EntityTypeSystem      EntityType = "system"
	EntityTypeSecurity    EntityType = "security"
)

// EntityTypes lists every known entity type
func EntityTypes() []EntityType {
	return []EntityType{
		EntityTypeTicket, EntityTypeTask, EntityTypeContact, EntityTypeLead,
		EntityTypeOpportunity, EntityTypeBusiness, EntityTypeInvitation,
		EntityTypeUser, EntityTypeCompany, EntityTypeSystem, EntityTypeSecurity,
	}
}

// ParseEntityType normalizes a URL or flag value into an EntityType
func ParseEntityType(s string) EntityType {
	return EntityType(strings.ToLower(strings.TrimSpace(s)))
}

func (e EntityType) String() string { return string(e) }

// Label returns a human-readable name used in rendered sentences
func (e EntityType) Label() string {
	if e == "" {
		return "record"
	}
	return string(e)
}

// Role is the authorization level carried by the session user
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleManager       Role = "Manager"
	RoleUser          Role = "User"
)

func (r Role) String() string { return string(r) }

// IsAdmin reports whether the role carries administrator capability
func (r Role) IsAdmin() bool {
	return r == RoleAdministrator
}

// User is the authenticated session user
type User struct {
	ID          string
	Username    string
	Role        Role
	AccessToken string
	TokenExpiry int64
}

// IsAuthenticated returns false for a nil or anonymous user
func (u *User) IsAuthenticated() bool {
	return u != nil && u.ID != ""
}

// RoleOrNone returns the user's role, or the empty role when unauthenticated
func (u *User) RoleOrNone() Role {
	if !u.IsAuthenticated() {
		return ""
	}
	return u.Role
}
