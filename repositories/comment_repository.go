package repositories

import (
	"context"
	"fmt"

	"github.com/blogem/crm-web/crmapi"
	"github.com/blogem/crm-web/models"
)

// CommentRepository reads and appends ticket comments on the CRM backend
type CommentRepository interface {
	ListForTicket(ctx context.Context, ticketID string) ([]models.Comment, error)
	Create(ctx context.Context, ticketID string, input models.CommentInput) (*models.Comment, error)
}

// apiCommentRepository implements CommentRepository over the backend API
type apiCommentRepository struct {
	api *crmapi.Client
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(api *crmapi.Client) CommentRepository {
	return &apiCommentRepository{api: api}
}

// ListForTicket retrieves all comments of a ticket
func (r *apiCommentRepository) ListForTicket(ctx context.Context, ticketID string) ([]models.Comment, error) {
	comments, err := r.api.TicketComments(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for ticket %s: %w", ticketID, err)
	}
	return comments, nil
}

// Create posts a new comment on a ticket
func (r *apiCommentRepository) Create(ctx context.Context, ticketID string, input models.CommentInput) (*models.Comment, error) {
	comment, err := r.api.AddTicketComment(ctx, ticketID, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment on ticket %s: %w", ticketID, err)
	}
	return comment, nil
}
