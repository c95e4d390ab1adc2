package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blogem/crm-web/models"
)

func TestCanViewAuditHistory_HighSecurityRequiresAdmin(t *testing.T) {
	highSecurityTypes := []models.EntityType{
		models.EntityTypeUser,
		models.EntityTypeCompany,
		models.EntityTypeSystem,
		models.EntityTypeSecurity,
	}
	nonAdmins := []models.Role{models.RoleUser, models.RoleManager, models.Role("Sales")}

	for _, entityType := range highSecurityTypes {
		assert.True(t, IsHighSecurity(entityType), "%s should be high security", entityType)
		assert.True(t, CanViewAuditHistory(models.RoleAdministrator, entityType), "admin should see %s", entityType)
		for _, role := range nonAdmins {
			assert.False(t, CanViewAuditHistory(role, entityType), "%s should not see %s", role, entityType)
		}
	}
}

func TestCanViewAuditHistory_OrdinaryTypesOpenToAuthenticated(t *testing.T) {
	ordinary := []models.EntityType{
		models.EntityTypeTask,
		models.EntityTypeTicket,
		models.EntityTypeContact,
		models.EntityTypeLead,
		models.EntityTypeOpportunity,
		models.EntityTypeBusiness,
		models.EntityTypeInvitation,
	}
	roles := []models.Role{models.RoleAdministrator, models.RoleManager, models.RoleUser, models.Role("Sales")}

	for _, entityType := range ordinary {
		assert.False(t, IsHighSecurity(entityType))
		for _, role := range roles {
			assert.True(t, CanViewAuditHistory(role, entityType), "%s should see %s", role, entityType)
		}
	}
}

func TestCanViewAuditHistory_Unauthenticated(t *testing.T) {
	assert.False(t, CanViewAuditHistory("", models.EntityTypeTask))
	assert.False(t, CanViewAuditHistory("", models.EntityTypeUser))
}

func TestSupportsComments(t *testing.T) {
	assert.True(t, SupportsComments(models.EntityTypeTicket))
	assert.False(t, SupportsComments(models.EntityTypeTask))
	assert.False(t, SupportsComments(models.EntityTypeContact))
}

func TestCanViewActivityJournal(t *testing.T) {
	assert.True(t, CanViewActivityJournal(models.RoleAdministrator))
	assert.False(t, CanViewActivityJournal(models.RoleManager))
	assert.False(t, CanViewActivityJournal(""))
}
