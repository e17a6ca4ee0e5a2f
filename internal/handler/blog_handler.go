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

// BlogHandler handles blog requests, public listing and member authoring
type BlogHandler struct {
	service service.BlogService
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(service service.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// ListPublished handles GET /api/v1/blog
func (h *BlogHandler) ListPublished(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.service.ListPublished(c.Request.Context(), page, limit)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load posts", err)
		return
	}

	common.SuccessResponse(c, result.Posts, common.PageMeta(result.Page, result.Limit, result.Total))
}

// GetPublished handles GET /api/v1/blog/:id
func (h *BlogHandler) GetPublished(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	post, err := h.service.GetPublished(uint(id))
	if errors.Is(err, common.ErrPostNotFound) {
		common.ErrorResponse(c, 404, "Post not found", err)
		return
	}
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load post", err)
		return
	}
	common.SuccessResponse(c, post, nil)
}

// ListMine handles GET /api/v1/portal/blog (drafts included)
func (h *BlogHandler) ListMine(c *gin.Context) {
	posts, err := h.service.ListByAuthor(middleware.GetMemberID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load posts", err)
		return
	}
	common.SuccessResponse(c, posts, nil)
}

// CreatePost handles POST /api/v1/portal/blog
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req domain.SavePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	post, err := h.service.CreatePost(middleware.GetMemberID(c), &req)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to create post", err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: post})
}

// UpdatePost handles PUT /api/v1/portal/blog/:id
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	var req domain.SavePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	post, err := h.service.UpdatePost(uint(id), middleware.GetMemberID(c), &req)
	if h.blogError(c, err) {
		return
	}
	common.SuccessResponse(c, post, nil)
}

// DeletePost handles DELETE /api/v1/portal/blog/:id
func (h *BlogHandler) DeletePost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID", err)
		return
	}

	if err := h.service.DeletePost(uint(id), middleware.GetMemberID(c)); h.blogError(c, err) {
		return
	}
	common.SuccessResponse(c, gin.H{"message": "Post deleted"}, nil)
}

func (h *BlogHandler) blogError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, common.ErrPostNotFound):
		common.ErrorResponse(c, 404, "Post not found", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, 403, "Only the author may do this", err)
	default:
		common.ErrorResponse(c, 500, "Blog operation failed", err)
	}
	return true
}
