package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentService() (*CommentService, *TicketService) {
	ticketRepo := newFakeTicketRepo()
	return NewCommentService(newFakeCommentRepo(), ticketRepo, nil), NewTicketService(ticketRepo, nil)
}

func TestAddComment(t *testing.T) {
	comments, tickets := newCommentService()
	ctx := context.Background()

	ticket, err := tickets.Create(ctx, testUser, validCreateInput())
	require.NoError(t, err)

	comment, err := comments.Add(ctx, testUser, ticket.ID, "  Any update on this?  ")
	require.NoError(t, err)
	assert.Equal(t, "Any update on this?", comment.Message)
	assert.Equal(t, testUser.ID, comment.CreatedBy)
	require.NotNil(t, comment.Author)
	assert.Equal(t, testUser.Name, comment.Author.Name)
}

func TestAddCommentInheritsTicketAuthorization(t *testing.T) {
	comments, tickets := newCommentService()
	ctx := context.Background()

	ticket, err := tickets.Create(ctx, testUser, validCreateInput())
	require.NoError(t, err)

	_, err = comments.Add(ctx, testOther, ticket.ID, "Let me in")
	domainErr := asDomainError(t, err)
	assert.Equal(t, 403, domainErr.HTTPStatus)
	assert.Equal(t, "Access denied", domainErr.Message)

	_, err = comments.Add(ctx, testAdmin, ticket.ID, "Looking into it")
	assert.NoError(t, err)
}

func TestAddCommentMissingTicket(t *testing.T) {
	comments, _ := newCommentService()
	_, err := comments.Add(context.Background(), testUser, "tic-missing", "Hello")
	domainErr := asDomainError(t, err)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestAddCommentValidatesMessage(t *testing.T) {
	comments, tickets := newCommentService()
	ctx := context.Background()

	ticket, err := tickets.Create(ctx, testUser, validCreateInput())
	require.NoError(t, err)

	_, err = comments.Add(ctx, testUser, ticket.ID, "   ")
	domainErr := asDomainError(t, err)
	assert.Equal(t, 400, domainErr.HTTPStatus)
	assert.Equal(t, "Message must be 1-5000 characters", domainErr.Message)
}

func TestListCommentsAscending(t *testing.T) {
	comments, tickets := newCommentService()
	ctx := context.Background()

	ticket, err := tickets.Create(ctx, testUser, validCreateInput())
	require.NoError(t, err)

	for _, msg := range []string{"first", "second", "third"} {
		_, err := comments.Add(ctx, testUser, ticket.ID, msg)
		require.NoError(t, err)
	}

	list, err := comments.ListByTicket(ctx, testUser, ticket.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Message)
	assert.Equal(t, "third", list[2].Message)
}

func TestListCommentsInheritsTicketAuthorization(t *testing.T) {
	comments, tickets := newCommentService()
	ctx := context.Background()

	ticket, err := tickets.Create(ctx, testUser, validCreateInput())
	require.NoError(t, err)

	_, err = comments.ListByTicket(ctx, testOther, ticket.ID)
	domainErr := asDomainError(t, err)
	assert.Equal(t, 403, domainErr.HTTPStatus)

	_, err = comments.ListByTicket(ctx, testAdmin, ticket.ID)
	assert.NoError(t, err)
}
