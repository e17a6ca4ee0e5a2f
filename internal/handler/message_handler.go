package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/middleware"
	"github.com/BjornOnGit/adec-web/internal/service"
)

// MessageHandler handles portal messaging requests
type MessageHandler struct {
	service service.ConversationService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(service service.ConversationService) *MessageHandler {
	return &MessageHandler{service: service}
}

// StartConversationRequest body for POST /portal/conversations
type StartConversationRequest struct {
	MemberID uint `json:"member_id" binding:"required"`
}

// ListConversations handles GET /api/v1/portal/conversations
// @Summary List the member's conversations
// @Tags messages
// @Router /portal/conversations [get]
func (h *MessageHandler) ListConversations(c *gin.Context) {
	conversations, err := h.service.ListConversations(middleware.GetMemberID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load conversations", err)
		return
	}
	common.SuccessResponse(c, conversations, nil)
}

// StartConversation handles POST /api/v1/portal/conversations.
// Starting a conversation that already exists returns the existing one.
func (h *MessageHandler) StartConversation(c *gin.Context) {
	var req StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	conv, err := h.service.CreateOrGetConversation(middleware.GetMemberID(c), req.MemberID)
	if errors.Is(err, common.ErrSelfConversation) {
		common.ErrorResponse(c, 400, "Cannot start a conversation with yourself", err)
		return
	}
	if errors.Is(err, common.ErrMemberNotFound) {
		common.ErrorResponse(c, 404, "Member not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to start conversation", err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: conv})
}

// ListMessages handles GET /api/v1/portal/conversations/:id/messages
func (h *MessageHandler) ListMessages(c *gin.Context) {
	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid conversation ID", err)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	messages, err := h.service.ListMessages(uint(conversationID), middleware.GetMemberID(c), limit)
	if h.conversationError(c, err) {
		return
	}
	common.SuccessResponse(c, messages, nil)
}

// SendMessage handles POST /api/v1/portal/conversations/:id/messages.
// The response confirms acceptance; clients render the message when it
// arrives on their subscription.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid conversation ID", err)
		return
	}

	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	msg, err := h.service.SendMessage(uint(conversationID), middleware.GetMemberID(c), req.Content)
	if errors.Is(err, common.ErrEmptyMessage) {
		common.ErrorResponse(c, 400, "Message text is empty", err)
		return
	}
	if h.conversationError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: msg})
}

// MarkRead handles POST /api/v1/portal/conversations/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid conversation ID", err)
		return
	}

	err = h.service.MarkRead(uint(conversationID), middleware.GetMemberID(c))
	if h.conversationError(c, err) {
		return
	}
	common.SuccessResponse(c, gin.H{"message": "Conversation marked read"}, nil)
}

// conversationError writes the response for shared conversation errors
// and reports whether one was written
func (h *MessageHandler) conversationError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, common.ErrConversationNotFound):
		common.ErrorResponse(c, 404, "Conversation not found", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, 403, "Not a participant of this conversation", err)
	default:
		common.ErrorResponse(c, 500, "Messaging operation failed", err)
	}
	return true
}
