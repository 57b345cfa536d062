package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-io/helpdesk-api/internal/domain"
)

var (
	testUser  = &domain.Account{ID: "acc-1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser}
	testOther = &domain.Account{ID: "acc-2", Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser}
	testAdmin = &domain.Account{ID: "acc-9", Name: "Root", Email: "root@example.com", Role: domain.RoleAdmin}
)

func newTicketService() (*TicketService, *fakeTicketRepo) {
	repo := newFakeTicketRepo()
	return NewTicketService(repo, nil), repo
}

func validCreateInput() TicketCreateInput {
	return TicketCreateInput{
		Title:       "Printer jam",
		Description: "The office printer keeps jamming",
		Category:    "Technical",
	}
}

func TestCreateTicketDefaults(t *testing.T) {
	svc, _ := newTicketService()

	ticket, err := svc.Create(context.Background(), testUser, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, domain.TicketPriorityLow, ticket.Priority)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, testUser.ID, ticket.CreatedBy)
	require.NotNil(t, ticket.Owner)
	assert.Equal(t, testUser.Email, ticket.Owner.Email)
}

func TestCreateTicketTrimsFields(t *testing.T) {
	svc, _ := newTicketService()

	input := validCreateInput()
	input.Title = "  Printer jam  "
	input.Description = "  It is broken  "
	ticket, err := svc.Create(context.Background(), testUser, input)
	require.NoError(t, err)
	assert.Equal(t, "Printer jam", ticket.Title)
	assert.Equal(t, "It is broken", ticket.Description)
}

func TestCreateTicketValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*TicketCreateInput)
		message string
	}{
		{"short title", func(in *TicketCreateInput) { in.Title = "ab" }, "Title must be 3-100 characters"},
		{"short description", func(in *TicketCreateInput) { in.Description = "1234" }, "Description must be 5-5000 characters"},
		{"bad category", func(in *TicketCreateInput) { in.Category = "Other" }, "Category must be one of Billing, Technical, General"},
		{"bad priority", func(in *TicketCreateInput) { in.Priority = "Urgent" }, "Priority must be one of Low, Medium, High"},
		{"bad status", func(in *TicketCreateInput) { in.Status = "Closed" }, "Status must be one of Open, In Progress, Resolved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTicketService()
			input := validCreateInput()
			tt.mutate(&input)
			_, err := svc.Create(context.Background(), testUser, input)
			domainErr := asDomainError(t, err)
			assert.Equal(t, 400, domainErr.HTTPStatus)
			assert.Equal(t, tt.message, domainErr.Message)
		})
	}
}

func TestGetTicketAuthorization(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()

	ticket, err := svc.Create(ctx, testUser, validCreateInput())
	require.NoError(t, err)

	t.Run("owner can read", func(t *testing.T) {
		got, err := svc.Get(ctx, testUser, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, ticket.ID, got.ID)
	})

	t.Run("other user gets 403", func(t *testing.T) {
		_, err := svc.Get(ctx, testOther, ticket.ID)
		domainErr := asDomainError(t, err)
		assert.Equal(t, 403, domainErr.HTTPStatus)
		assert.Equal(t, "Access denied", domainErr.Message)
	})

	t.Run("admin can read", func(t *testing.T) {
		_, err := svc.Get(ctx, testAdmin, ticket.ID)
		assert.NoError(t, err)
	})

	t.Run("missing ticket gets 404", func(t *testing.T) {
		_, err := svc.Get(ctx, testUser, "tic-missing")
		domainErr := asDomainError(t, err)
		assert.Equal(t, 404, domainErr.HTTPStatus)
	})

	t.Run("missing ticket is 404 even for non-owner", func(t *testing.T) {
		_, err := svc.Get(ctx, testOther, "tic-missing")
		domainErr := asDomainError(t, err)
		assert.Equal(t, 404, domainErr.HTTPStatus)
	})
}

func TestUpdateTicketPartialMerge(t *testing.T) {
	svc, repo := newTicketService()
	ctx := context.Background()

	ticket, err := svc.Create(ctx, testUser, validCreateInput())
	require.NoError(t, err)

	status := "Resolved"
	updated, err := svc.Update(ctx, testUser, ticket.ID, TicketUpdateInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusResolved, updated.Status)
	assert.Equal(t, ticket.Title, updated.Title)
	assert.Equal(t, ticket.Description, updated.Description)
	assert.Equal(t, ticket.Category, updated.Category)
	assert.Equal(t, ticket.Priority, updated.Priority)

	stored, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, testUser.ID, stored.CreatedBy, "owner must never change on update")
}

func TestUpdateTicketValidatesOnlyProvidedFields(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()

	ticket, err := svc.Create(ctx, testUser, validCreateInput())
	require.NoError(t, err)

	bad := "Urgent"
	_, err = svc.Update(ctx, testUser, ticket.ID, TicketUpdateInput{Priority: &bad})
	domainErr := asDomainError(t, err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "Priority must be one of Low, Medium, High", domainErr.Message)

	title := "  New printer issue  "
	updated, err := svc.Update(ctx, testUser, ticket.ID, TicketUpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New printer issue", updated.Title)
}

func TestUpdateTicketAuthorization(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()

	ticket, err := svc.Create(ctx, testUser, validCreateInput())
	require.NoError(t, err)

	status := "Resolved"
	_, err = svc.Update(ctx, testOther, ticket.ID, TicketUpdateInput{Status: &status})
	domainErr := asDomainError(t, err)
	assert.Equal(t, 403, domainErr.HTTPStatus)

	_, err = svc.Update(ctx, testAdmin, ticket.ID, TicketUpdateInput{Status: &status})
	assert.NoError(t, err)
}

func TestDeleteTicket(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()

	ticket, err := svc.Create(ctx, testUser, validCreateInput())
	require.NoError(t, err)

	err = svc.Delete(ctx, testOther, ticket.ID)
	domainErr := asDomainError(t, err)
	assert.Equal(t, 403, domainErr.HTTPStatus)

	require.NoError(t, svc.Delete(ctx, testUser, ticket.ID))

	_, err = svc.Get(ctx, testUser, ticket.ID)
	domainErr = asDomainError(t, err)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestListTicketsScopedByRole(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, testUser, validCreateInput())
		require.NoError(t, err)
	}
	bobTicket, err := svc.Create(ctx, testOther, validCreateInput())
	require.NoError(t, err)

	alicePage, err := svc.List(ctx, testUser, TicketListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), alicePage.Total)
	for _, ticket := range alicePage.Items {
		assert.Equal(t, testUser.ID, ticket.CreatedBy)
		assert.NotEqual(t, bobTicket.ID, ticket.ID)
	}

	adminPage, err := svc.List(ctx, testAdmin, TicketListInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), adminPage.Total)
}

func TestListTicketsPagination(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		input := validCreateInput()
		input.Title = fmt.Sprintf("Ticket number %d", i)
		_, err := svc.Create(ctx, testUser, input)
		require.NoError(t, err)
	}

	page1, err := svc.List(ctx, testUser, TicketListInput{})
	require.NoError(t, err)
	assert.Len(t, page1.Items, 10)
	assert.Equal(t, int64(15), page1.Total)
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, "Ticket number 14", page1.Items[0].Title, "newest first")

	page2, err := svc.List(ctx, testUser, TicketListInput{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Items, 5)
	assert.Equal(t, "Ticket number 0", page2.Items[4].Title)
}

func TestListTicketsFilters(t *testing.T) {
	svc, _ := newTicketService()
	ctx := context.Background()

	input := validCreateInput()
	input.Title = "VPN connection drops"
	input.Priority = "High"
	_, err := svc.Create(ctx, testUser, input)
	require.NoError(t, err)

	input = validCreateInput()
	input.Title = "Invoice question"
	input.Category = "Billing"
	_, err = svc.Create(ctx, testUser, input)
	require.NoError(t, err)

	byPriority, err := svc.List(ctx, testUser, TicketListInput{Priority: "High"})
	require.NoError(t, err)
	require.Len(t, byPriority.Items, 1)
	assert.Equal(t, "VPN connection drops", byPriority.Items[0].Title)

	byCategory, err := svc.List(ctx, testUser, TicketListInput{Category: "Billing"})
	require.NoError(t, err)
	require.Len(t, byCategory.Items, 1)

	bySearch, err := svc.List(ctx, testUser, TicketListInput{Query: "vpn"})
	require.NoError(t, err)
	require.Len(t, bySearch.Items, 1)
	assert.Equal(t, "VPN connection drops", bySearch.Items[0].Title)
}

func TestListTicketsLimitCap(t *testing.T) {
	svc, _ := newTicketService()
	page, err := svc.List(context.Background(), testUser, TicketListInput{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Limit)
}
