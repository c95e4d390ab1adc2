package repositories

import (
	"context"
	"fmt"

	"github.com/blogem/crm-web/crmapi"
	"github.com/blogem/crm-web/models"
)

// AuditLogRepository reads entity audit history from the CRM backend
type AuditLogRepository interface {
	ListForEntity(ctx context.Context, entityType models.EntityType, entityID string, query models.AuditQuery) (*models.AuditPage, error)
}

// apiAuditLogRepository implements AuditLogRepository over the backend API
type apiAuditLogRepository struct {
	api *crmapi.Client
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(api *crmapi.Client) AuditLogRepository {
	return &apiAuditLogRepository{api: api}
}

// ListForEntity retrieves one page of audit entries for an entity
func (r *apiAuditLogRepository) ListForEntity(ctx context.Context, entityType models.EntityType, entityID string, query models.AuditQuery) (*models.AuditPage, error) {
	page, err := r.api.EntityAuditLogs(ctx, entityType, entityID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs for %s %s: %w", entityType, entityID, err)
	}
	return page, nil
}
