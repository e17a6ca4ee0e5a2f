package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/BjornOnGit/adec-web/internal/common"
	"github.com/BjornOnGit/adec-web/internal/domain"
	"github.com/BjornOnGit/adec-web/internal/repository"
	"github.com/BjornOnGit/adec-web/pkg/logger"
	"github.com/BjornOnGit/adec-web/pkg/storage"
)

// download links stay valid long enough for a browser to follow them
const downloadURLExpiry = 15 * time.Minute

// DocumentService member document business logic
type DocumentService interface {
	ListDocuments(memberID uint) ([]*domain.Document, error)
	Upload(ctx context.Context, memberID uint, name, category, contentType string, body io.Reader, size int64) (*domain.Document, error)
	Delete(ctx context.Context, id, memberID uint) error
	DownloadURL(ctx context.Context, id, memberID uint) (string, error)
}

type documentService struct {
	docRepo repository.DocumentRepository
	storage *storage.S3Client
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(docRepo repository.DocumentRepository, s3Client *storage.S3Client) DocumentService {
	return &documentService{
		docRepo: docRepo,
		storage: s3Client,
	}
}

// ListDocuments returns the member's documents newest first
func (s *documentService) ListDocuments(memberID uint) ([]*domain.Document, error) {
	docs, err := s.docRepo.FindByOwner(memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// Upload stores the file and records its metadata for the member
func (s *documentService) Upload(ctx context.Context, memberID uint, name, category, contentType string, body io.Reader, size int64) (*domain.Document, error) {
	if s.storage == nil {
		return nil, common.ErrStorageDisabled
	}

	key := storage.GenerateKey(storage.PrefixDocuments, name)
	result, err := s.storage.Upload(ctx, key, body, contentType, size)
	if err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	doc := &domain.Document{
		MemberID: memberID,
		Name:     name,
		FileKey:  result.Key,
		FileURL:  result.URL,
		FileSize: size,
		FileType: contentType,
		Category: category,
	}
	if err := s.docRepo.Create(doc); err != nil {
		// metadata write failed, try not to leak the object
		if delErr := s.storage.Delete(ctx, result.Key); delErr != nil {
			logger.Get().Warn().Err(delErr).Str("key", result.Key).Msg("failed to clean up orphaned upload")
		}
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	return doc, nil
}

// Delete removes the stored file and then the metadata row. Only the
// owner may delete. The object goes first: a row without an object is
// a broken download, an object without a row is only leaked storage.
func (s *documentService) Delete(ctx context.Context, id, memberID uint) error {
	doc, err := s.ownedDocument(id, memberID)
	if err != nil {
		return err
	}
	if s.storage == nil {
		return common.ErrStorageDisabled
	}

	if err := s.storage.Delete(ctx, doc.FileKey); err != nil {
		return fmt.Errorf("failed to delete document object: %w", err)
	}

	if err := s.docRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return nil
}

// DownloadURL returns a short-lived presigned link for the file
func (s *documentService) DownloadURL(ctx context.Context, id, memberID uint) (string, error) {
	doc, err := s.ownedDocument(id, memberID)
	if err != nil {
		return "", err
	}
	if s.storage == nil {
		return "", common.ErrStorageDisabled
	}
	return s.storage.GetPresignedURL(ctx, doc.FileKey, downloadURLExpiry)
}

func (s *documentService) ownedDocument(id, memberID uint) (*domain.Document, error) {
	doc, err := s.docRepo.FindByID(id)
	if err != nil {
		return nil, common.ErrDocumentNotFound
	}
	if doc.MemberID != memberID {
		return nil, common.ErrForbidden
	}
	return doc, nil
}
