package repositories

import (
	"context"

	"jangja-school/internal/adapters/persistence/jsonstore"
	"jangja-school/internal/core/domain"
)

// noticeRepository implements NoticeRepository over notices.json
type noticeRepository struct {
	doc *jsonstore.Document[domain.NoticesDocument]
}

// NewNoticeRepository creates a notice repository backed by the file at path
func NewNoticeRepository(path string) (NoticeRepository, bool, error) {
	doc := jsonstore.New(path, domain.NewNoticesDocument)
	created, err := doc.EnsureExists()
	if err != nil {
		return nil, false, err
	}
	return &noticeRepository{doc: doc}, created, nil
}

// Get reads the whole notices document
func (r *noticeRepository) Get(_ context.Context) (*domain.NoticesDocument, error) {
	n, err := r.doc.Load()
	if err != nil {
		return nil, err
	}
	n.Normalize()
	return &n, nil
}

// Add prepends notice and rewrites the document
func (r *noticeRepository) Add(_ context.Context, notice domain.Notice) error {
	return r.doc.Update(func(n *domain.NoticesDocument) error {
		n.Notices = append([]domain.Notice{notice}, n.Notices...)
		return nil
	})
}
