package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMemberNotFound     = errors.New("member not found")
	ErrEmailTaken         = errors.New("email already registered")

	// Messaging errors
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyMessage         = errors.New("message text is empty")
	ErrSelfConversation     = errors.New("cannot start a conversation with yourself")

	// Event errors
	ErrEventNotFound     = errors.New("event not found")
	ErrAlreadyRegistered = errors.New("already registered for event")
	ErrEventFull         = errors.New("event is at capacity")

	// Document errors
	ErrDocumentNotFound = errors.New("document not found")
	ErrStorageDisabled  = errors.New("file storage is not configured")

	// Blog errors
	ErrPostNotFound = errors.New("blog post not found")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
