package repositories

import (
	"database/sql"

	"github.com/blogem/crm-web/crmapi"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	AuditLog   AuditLogRepository
	Comment    CommentRepository
	RequestLog RequestLogRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(api *crmapi.Client, db *sql.DB) *Repositories {
	return &Repositories{
		AuditLog:   NewAuditLogRepository(api),
		Comment:    NewCommentRepository(api),
		RequestLog: NewRequestLogRepository(db),
	}
}
