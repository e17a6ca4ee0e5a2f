package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/middleware"
	"github.com/BjornOnGit/adec-web/internal/service"
)

const maxDocumentSize = 25 << 20 // 25 MB

// DocumentHandler handles member document requests
type DocumentHandler struct {
	service service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(service service.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// ListDocuments handles GET /api/v1/portal/documents
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	docs, err := h.service.ListDocuments(middleware.GetMemberID(c))
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to load documents", err)
		return
	}
	common.SuccessResponse(c, docs, nil)
}

// Upload handles POST /api/v1/portal/documents (multipart)
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, 400, "Missing file", err)
		return
	}
	if fileHeader.Size > maxDocumentSize {
		common.ErrorResponse(c, 400, "File too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.ErrorResponse(c, 400, "Failed to read file", err)
		return
	}
	defer file.Close()

	name := c.PostForm("name")
	if name == "" {
		name = fileHeader.Filename
	}
	category := c.PostForm("category")
	contentType := fileHeader.Header.Get("Content-Type")

	doc, err := h.service.Upload(c.Request.Context(), middleware.GetMemberID(c),
		name, category, contentType, file, fileHeader.Size)
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to upload document", err)
		return
	}

	c.JSON(http.StatusCreated, common.APIResponse{Data: doc})
}

// Delete handles DELETE /api/v1/portal/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid document ID", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uint(id), middleware.GetMemberID(c)); h.documentError(c, err) {
		return
	}
	common.SuccessResponse(c, gin.H{"message": "Document deleted"}, nil)
}

// Download handles GET /api/v1/portal/documents/:id/download.
// Returns a short-lived presigned URL rather than proxying the bytes.
func (h *DocumentHandler) Download(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid document ID", err)
		return
	}

	url, err := h.service.DownloadURL(c.Request.Context(), uint(id), middleware.GetMemberID(c))
	if h.documentError(c, err) {
		return
	}
	common.SuccessResponse(c, gin.H{"url": url}, nil)
}

func (h *DocumentHandler) documentError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, common.ErrDocumentNotFound):
		common.ErrorResponse(c, 404, "Document not found", err)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, 403, "Not the owner of this document", err)
	case errors.Is(err, common.ErrStorageDisabled):
		common.ErrorResponse(c, 503, "File storage is not available", err)
	default:
		common.ErrorResponse(c, 500, "Document operation failed", err)
	}
	return true
}
