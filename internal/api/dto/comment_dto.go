package dto

import (
	"time"

	"github.com/helpdesk-io/helpdesk-api/internal/domain"
)

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Message string `json:"message"`
}

// CommentResponse is the comment shape; author carries name and email only.
type CommentResponse struct {
	ID        string              `json:"id"`
	TicketID  string              `json:"ticket_id"`
	Message   string              `json:"message"`
	Author    *AccountRefResponse `json:"author,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// NewCommentResponse maps a domain comment.
func NewCommentResponse(comment *domain.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		TicketID:  comment.TicketID,
		Message:   comment.Message,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author != nil {
		resp.Author = &AccountRefResponse{
			ID:    comment.Author.ID,
			Name:  comment.Author.Name,
			Email: comment.Author.Email,
		}
	}
	return resp
}
