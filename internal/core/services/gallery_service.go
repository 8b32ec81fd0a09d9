package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"jangja-school/internal/adapters/persistence/repositories"
	"jangja-school/internal/core/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Accepted upload types. Both the extension and the declared MIME type must match.
var (
	allowedExtensions = map[string]bool{
		".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
	}
	allowedMIMETypes = map[string]bool{
		"image/jpeg": true, "image/jpg": true, "image/png": true, "image/gif": true, "image/webp": true,
	}
)

// GalleryService handles gallery reads and photo uploads
type GalleryService struct {
	galleryRepo repositories.GalleryRepository
	files       FileStore
	now         func() time.Time
}

// NewGalleryService creates a new gallery service
func NewGalleryService(galleryRepo repositories.GalleryRepository, files FileStore) *GalleryService {
	return &GalleryService{
		galleryRepo: galleryRepo,
		files:       files,
		now:         time.Now,
	}
}

// WithClock replaces the time source (tests)
func (s *GalleryService) WithClock(now func() time.Time) *GalleryService {
	s.now = now
	return s
}

// UploadInput represents a photo upload request
type UploadInput struct {
	Files       []UploadFile
	Category    string
	Title       string
	Description string
	UploadedBy  string
}

// UploadResult represents the records created by an upload
type UploadResult struct {
	Photos   []domain.Photo  `json:"photos"`
	Category domain.Category `json:"category"`
}

// GetGallery returns the gallery document as stored
func (s *GalleryService) GetGallery(ctx context.Context) (json.RawMessage, error) {
	return s.galleryRepo.Raw(ctx)
}

// GetStats counts photos per category from the current document
func (s *GalleryService) GetStats(ctx context.Context) (*domain.GalleryStats, error) {
	g, err := s.galleryRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	stats := g.Stats()
	return &stats, nil
}

// Upload validates the request, stores every file and prepends one record
// per file to the category. Nothing is written unless all checks pass.
func (s *GalleryService) Upload(ctx context.Context, input *UploadInput) (*UploadResult, error) {
	category, err := validateUpload(input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	names := s.fileNames(now, input.Files)

	// 1. Write files in parallel
	images := make([]string, len(input.Files))
	saved := make([]bool, len(input.Files))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range input.Files {
		g.Go(func() error {
			image, err := s.saveFile(gctx, names[i], f)
			if err != nil {
				return err
			}
			images[i] = image
			saved[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("❌ Photo upload failed while writing files: %v", err)
		s.cleanup(names, saved)
		return nil, domain.ErrPersistenceFailed
	}

	// 2. Build records
	photos := make([]domain.Photo, len(input.Files))
	for i, f := range input.Files {
		photos[i] = domain.Photo{
			ID:           uuid.New().String(),
			Title:        input.Title,
			Description:  input.Description,
			Image:        images[i],
			OriginalName: f.Filename,
			FileSize:     f.Size,
			Date:         now.Format(domain.DateLayout),
			UploadedBy:   input.UploadedBy,
			UploadedAt:   now.UTC(),
		}
	}

	// 3. Persist
	if err := s.galleryRepo.AddPhotos(ctx, category, photos); err != nil {
		log.Printf("❌ Photo upload failed while saving gallery: %v", err)
		s.cleanup(names, saved)
		return nil, domain.ErrPersistenceFailed
	}

	log.Printf("✅ %d photo(s) uploaded to %s by %s", len(photos), category, input.UploadedBy)

	return &UploadResult{
		Photos:   photos,
		Category: category,
	}, nil
}

// validateUpload applies the checks in order; the first failure wins
func validateUpload(input *UploadInput) (domain.Category, error) {
	if input == nil || len(input.Files) == 0 {
		return "", domain.ErrNoFiles
	}
	if strings.TrimSpace(input.Category) == "" || strings.TrimSpace(input.Title) == "" {
		return "", domain.ErrMissingFields
	}

	category, ok := domain.ParseCategory(input.Category)
	if !ok {
		return "", domain.ErrInvalidCategory
	}

	for _, f := range input.Files {
		if !AllowedImage(f.Filename, f.ContentType) {
			return "", domain.ErrUnsupportedType
		}
	}
	return category, nil
}

// AllowedImage reports whether a file with this name and declared type may be uploaded
func AllowedImage(filename, contentType string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	return allowedExtensions[ext] && allowedMIMETypes[mediaType]
}

// fileNames generates a distinct stored name per file
func (s *GalleryService) fileNames(now time.Time, files []UploadFile) []string {
	names := make([]string, len(files))
	seen := make(map[string]bool, len(files))
	for i, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Filename))
		for {
			name := fmt.Sprintf("photo-%d-%d%s", now.UnixMilli(), 100000000+rand.IntN(900000000), ext)
			if !seen[name] {
				seen[name] = true
				names[i] = name
				break
			}
		}
	}
	return names
}

func (s *GalleryService) saveFile(ctx context.Context, name string, f UploadFile) (string, error) {
	if f.Open == nil {
		return "", errors.New("upload file has no content")
	}
	r, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.Filename, err)
	}
	defer r.Close()

	return s.files.Save(ctx, name, r, f.Size, f.ContentType)
}

// cleanup removes files written before a failure. Errors are only logged.
func (s *GalleryService) cleanup(names []string, saved []bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for i, name := range names {
		if !saved[i] {
			continue
		}
		if err := s.files.Remove(ctx, name); err != nil {
			log.Printf("⚠️ Failed to remove uploaded file %s: %v", name, err)
		}
	}
}
