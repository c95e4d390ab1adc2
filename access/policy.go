// Package access holds the capability checks shared by every view. The list
// of high-security entity types lives here and nowhere else.
package access

import "github.com/blogem/crm-web/models"

var highSecurity = map[models.EntityType]struct{}{
	models.EntityTypeUser:     {},
	models.EntityTypeCompany:  {},
	models.EntityTypeSystem:   {},
	models.EntityTypeSecurity: {},
}

// IsHighSecurity reports whether an entity type's audit trail is restricted
// to administrators.
func IsHighSecurity(entityType models.EntityType) bool {
	_, ok := highSecurity[entityType]
	return ok
}

// CanViewAuditHistory decides whether a caller with the given role may read
// the audit history of an entity type. The empty role means unauthenticated.
func CanViewAuditHistory(role models.Role, entityType models.EntityType) bool {
	if role == "" {
		return false
	}
	if IsHighSecurity(entityType) {
		return role.IsAdmin()
	}
	return true
}

// SupportsComments reports whether an entity type carries a comment thread.
func SupportsComments(entityType models.EntityType) bool {
	return entityType == models.EntityTypeTicket
}

// CanViewActivityJournal reports whether a role may read the local request journal.
func CanViewActivityJournal(role models.Role) bool {
	return role.IsAdmin()
}
