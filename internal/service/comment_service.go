package service

import (
	"context"
	"strings"

	"github.com/helpdesk-io/helpdesk-api/internal/auth"
	"github.com/helpdesk-io/helpdesk-api/internal/domain"
	"github.com/helpdesk-io/helpdesk-api/internal/events"
	"github.com/helpdesk-io/helpdesk-api/internal/repository"
	"github.com/helpdesk-io/helpdesk-api/internal/validate"
	apperrors "github.com/helpdesk-io/helpdesk-api/pkg/util"
)

const commentPreviewLen = 80

// CommentService coordinates ticket comments. Authorization is always checked
// against the parent ticket's owner, never the comment author.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(comments repository.CommentRepository, tickets repository.TicketRepository, dispatcher events.Dispatcher) *CommentService {
	return &CommentService{comments: comments, tickets: tickets, dispatcher: dispatcher}
}

// Add appends a comment to a ticket the requester may access.
func (s *CommentService) Add(ctx context.Context, requester *domain.Account, ticketID, message string) (*domain.Comment, error) {
	ticket, err := s.loadParent(ctx, requester, ticketID)
	if err != nil {
		return nil, err
	}
	if !validate.CommentMessage(message) {
		return nil, apperrors.NewValidationError("Message must be 1-5000 characters", nil)
	}

	comment := &domain.Comment{
		TicketID:  ticket.ID,
		Message:   strings.TrimSpace(message),
		CreatedBy: requester.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = &domain.AccountRef{ID: requester.ID, Name: requester.Name, Email: requester.Email}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			Type:     events.EventCommentAdded,
			TicketID: ticket.ID,
			ActorID:  requester.ID,
			Payload: events.CommentAddedPayload{
				CommentID:      comment.ID,
				MessagePreview: preview(comment.Message),
			},
		})
	}
	return comment, nil
}

// ListByTicket returns a ticket's comments ascending by creation time.
func (s *CommentService) ListByTicket(ctx context.Context, requester *domain.Account, ticketID string) ([]domain.Comment, error) {
	ticket, err := s.loadParent(ctx, requester, ticketID)
	if err != nil {
		return nil, err
	}
	return s.comments.ListByTicket(ctx, ticket.ID)
}

func (s *CommentService) loadParent(ctx context.Context, requester *domain.Account, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == repository.ErrNoRows {
			return nil, apperrors.NewNotFound("Ticket")
		}
		return nil, err
	}
	if !auth.CanAccess(requester, ticket.CreatedBy) {
		return nil, apperrors.NewForbidden("Access denied")
	}
	return ticket, nil
}

func preview(message string) string {
	if len(message) <= commentPreviewLen {
		return message
	}
	return message[:commentPreviewLen]
}
