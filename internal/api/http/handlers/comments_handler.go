package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/helpdesk-io/helpdesk-api/internal/api/dto"
	"github.com/helpdesk-io/helpdesk-api/internal/auth"
	"github.com/helpdesk-io/helpdesk-api/internal/service"
	apperrors "github.com/helpdesk-io/helpdesk-api/pkg/util"
)

// CommentsHandler manages per-ticket comment endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// Add POST /tickets/:id/comments.
func (h *CommentsHandler) Add(c *fiber.Ctx) error {
	requester, ok := auth.AccountFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.service.Add(c.Context(), requester, c.Params("id"), req.Message)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Comment added successfully",
		"data":    dto.NewCommentResponse(comment),
	})
}

// ListByTicket GET /tickets/:id/comments.
func (h *CommentsHandler) ListByTicket(c *fiber.Ctx) error {
	requester, ok := auth.AccountFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	comments, err := h.service.ListByTicket(c.Context(), requester, c.Params("id"))
	if err != nil {
		return err
	}

	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, dto.NewCommentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
