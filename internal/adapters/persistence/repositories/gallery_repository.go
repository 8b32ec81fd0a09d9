package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"jangja-school/internal/adapters/persistence/jsonstore"
	"jangja-school/internal/core/domain"
)

// galleryRepository implements GalleryRepository over gallery.json
type galleryRepository struct {
	doc *jsonstore.Document[domain.GalleryDocument]
}

// NewGalleryRepository creates a gallery repository backed by the file at path
func NewGalleryRepository(path string) (GalleryRepository, bool, error) {
	doc := jsonstore.New(path, domain.NewGalleryDocument)
	created, err := doc.EnsureExists()
	if err != nil {
		return nil, false, err
	}
	return &galleryRepository{doc: doc}, created, nil
}

// Get reads the whole gallery document
func (r *galleryRepository) Get(_ context.Context) (domain.GalleryDocument, error) {
	g, err := r.doc.Load()
	if err != nil {
		return nil, err
	}
	if g == nil {
		g = domain.GalleryDocument{}
	}
	return g, nil
}

// Raw returns the stored document as compact JSON, values untouched
func (r *galleryRepository) Raw(_ context.Context) ([]byte, error) {
	raw, err := r.doc.Raw()
	if errors.Is(err, fs.ErrNotExist) {
		return json.Marshal(domain.NewGalleryDocument())
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.doc.Path(), err)
	}

	var out bytes.Buffer
	if err := json.Compact(&out, raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.doc.Path(), err)
	}
	return out.Bytes(), nil
}

// AddPhotos prepends photos to category and rewrites the document. Other
// categories and existing records are written back as they were read.
func (r *galleryRepository) AddPhotos(_ context.Context, category domain.Category, photos []domain.Photo) error {
	return r.doc.Update(func(g *domain.GalleryDocument) error {
		if *g == nil {
			*g = domain.GalleryDocument{}
		}
		return g.Prepend(category, photos)
	})
}
