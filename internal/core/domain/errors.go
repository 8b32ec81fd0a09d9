package domain

import "errors"

// Validation errors
var (
	ErrMissingCredentials  = errors.New("username and password are required")
	ErrMissingNoticeFields = errors.New("title and content are required")
	ErrInvalidPriority     = errors.New("invalid priority")
)

// Auth errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenMissing       = errors.New("token missing")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Upload errors
var (
	ErrNoFiles           = errors.New("no files to upload")
	ErrMissingFields     = errors.New("category and title are required")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrUnsupportedType   = errors.New("unsupported file type")
	ErrTooManyFiles      = errors.New("too many files")
	ErrFileTooLarge      = errors.New("file too large")
	ErrPersistenceFailed = errors.New("upload persistence failed")
)
