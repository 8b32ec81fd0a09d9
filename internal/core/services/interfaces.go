package services

import (
	"context"
	"io"
	"time"
)

// Note: AuthService implementation is in auth_service.go
// Note: GalleryService implementation is in gallery_service.go

// FileStore stores uploaded photo files
type FileStore interface {
	// Save writes the file and returns the path or URL it is served from
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, name string) error
}

// TokenDenylist records session tokens revoked before their expiry
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// UploadFile is one file part of an upload request
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}
