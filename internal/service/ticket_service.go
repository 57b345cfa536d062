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

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Status      string
}

// TicketUpdateInput carries the fields present in a partial update. Only the
// five mutable fields are representable; ownership and timestamps cannot be
// supplied.
type TicketUpdateInput struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string
	Status      *string
}

// TicketListInput describes listing filters.
type TicketListInput struct {
	Status   string
	Priority string
	Category string
	Query    string
	Page     int
	Limit    int
}

// TicketPage is one page of listing results.
type TicketPage struct {
	Items      []domain.Ticket
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// Create validates and persists a new ticket owned by the requester.
func (s *TicketService) Create(ctx context.Context, requester *domain.Account, input TicketCreateInput) (*domain.Ticket, error) {
	if !validate.TicketTitle(input.Title) {
		return nil, apperrors.NewValidationError("Title must be 3-100 characters", nil)
	}
	if !validate.TicketDescription(input.Description) {
		return nil, apperrors.NewValidationError("Description must be 5-5000 characters", nil)
	}
	if !validate.TicketCategory(input.Category) {
		return nil, apperrors.NewValidationError("Category must be one of Billing, Technical, General", nil)
	}

	priority := domain.TicketPriorityLow
	if input.Priority != "" {
		if !validate.TicketPriority(input.Priority) {
			return nil, apperrors.NewValidationError("Priority must be one of Low, Medium, High", nil)
		}
		priority = domain.TicketPriority(input.Priority)
	}
	status := domain.TicketStatusOpen
	if input.Status != "" {
		if !validate.TicketStatus(input.Status) {
			return nil, apperrors.NewValidationError("Status must be one of Open, In Progress, Resolved", nil)
		}
		status = domain.TicketStatus(input.Status)
	}

	ticket := &domain.Ticket{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    domain.TicketCategory(input.Category),
		Priority:    priority,
		Status:      status,
		CreatedBy:   requester.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	ticket.Owner = &domain.AccountRef{ID: requester.ID, Name: requester.Name, Email: requester.Email}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  requester.ID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Category: ticket.Category,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// List returns one page of tickets. Non-admin requesters are scoped to their
// own tickets in the query itself rather than post-filtered.
func (s *TicketService) List(ctx context.Context, requester *domain.Account, input TicketListInput) (*TicketPage, error) {
	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	filter := repository.TicketFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if !requester.IsAdmin() {
		filter.OwnerID = &requester.ID
	}
	if input.Status != "" {
		status := domain.TicketStatus(input.Status)
		filter.Status = &status
	}
	if input.Priority != "" {
		priority := domain.TicketPriority(input.Priority)
		filter.Priority = &priority
	}
	if input.Category != "" {
		category := domain.TicketCategory(input.Category)
		filter.Category = &category
	}
	if input.Query != "" {
		query := input.Query
		filter.TitleQuery = &query
	}

	items, total, err := s.tickets.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages == 0 {
		totalPages = 1
	}
	return &TicketPage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Get fetches a ticket the requester is allowed to see.
func (s *TicketService) Get(ctx context.Context, requester *domain.Account, id string) (*domain.Ticket, error) {
	return s.loadAuthorized(ctx, requester, id)
}

// Update applies a partial update. Only validated mutable fields are merged
// onto the stored ticket; ownership is never touched.
func (s *TicketService) Update(ctx context.Context, requester *domain.Account, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.loadAuthorized(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	oldStatus := ticket.Status

	if input.Title != nil {
		if !validate.TicketTitle(*input.Title) {
			return nil, apperrors.NewValidationError("Title must be 3-100 characters", nil)
		}
		ticket.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		if !validate.TicketDescription(*input.Description) {
			return nil, apperrors.NewValidationError("Description must be 5-5000 characters", nil)
		}
		ticket.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		if !validate.TicketCategory(*input.Category) {
			return nil, apperrors.NewValidationError("Category must be one of Billing, Technical, General", nil)
		}
		ticket.Category = domain.TicketCategory(*input.Category)
	}
	if input.Priority != nil {
		if !validate.TicketPriority(*input.Priority) {
			return nil, apperrors.NewValidationError("Priority must be one of Low, Medium, High", nil)
		}
		ticket.Priority = domain.TicketPriority(*input.Priority)
	}
	if input.Status != nil {
		if !validate.TicketStatus(*input.Status) {
			return nil, apperrors.NewValidationError("Status must be one of Open, In Progress, Resolved", nil)
		}
		ticket.Status = domain.TicketStatus(*input.Status)
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		ActorID:  requester.ID,
		Payload: events.TicketUpdatedPayload{
			OldStatus: oldStatus,
			NewStatus: ticket.Status,
		},
	})
	return ticket, nil
}

// Delete removes a ticket permanently.
func (s *TicketService) Delete(ctx context.Context, requester *domain.Account, id string) error {
	ticket, err := s.loadAuthorized(ctx, requester, id)
	if err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, ticket.ID); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticket.ID,
		ActorID:  requester.ID,
	})
	return nil
}

// loadAuthorized fetches a ticket and applies the owner-or-admin rule.
// Missing tickets report 404 before authorization runs.
func (s *TicketService) loadAuthorized(ctx context.Context, requester *domain.Account, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
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

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
