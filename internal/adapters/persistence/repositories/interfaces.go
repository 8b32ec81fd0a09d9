package repositories

import (
	"context"

	"jangja-school/internal/core/domain"
)

// AccountRepository defines the credential store interface
// Accounts are read-only at runtime
type AccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	Count(ctx context.Context) (int64, error)
}

// GalleryRepository defines gallery document access
type GalleryRepository interface {
	Get(ctx context.Context) (domain.GalleryDocument, error)
	Raw(ctx context.Context) ([]byte, error)
	AddPhotos(ctx context.Context, category domain.Category, photos []domain.Photo) error
}

// NoticeRepository defines notices document access
type NoticeRepository interface {
	Get(ctx context.Context) (*domain.NoticesDocument, error)
	Add(ctx context.Context, notice domain.Notice) error
}
