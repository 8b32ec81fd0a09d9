package services

import (
	"context"
	"log"
	"strings"
	"time"

	"jangja-school/internal/adapters/persistence/repositories"
	"jangja-school/internal/core/domain"

	"github.com/google/uuid"
)

// NoticeService handles the notice board
type NoticeService struct {
	noticeRepo repositories.NoticeRepository
	now        func() time.Time
}

// NewNoticeService creates a new notice service
func NewNoticeService(noticeRepo repositories.NoticeRepository) *NoticeService {
	return &NoticeService{
		noticeRepo: noticeRepo,
		now:        time.Now,
	}
}

// WithClock replaces the time source (tests)
func (s *NoticeService) WithClock(now func() time.Time) *NoticeService {
	s.now = now
	return s
}

// CreateNoticeInput represents a new notice
type CreateNoticeInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Priority string `json:"priority"`
	PostedBy string `json:"-"`
}

// List returns a page of notices, newest first, and the total count
func (s *NoticeService) List(ctx context.Context, offset, limit int) ([]domain.Notice, int64, error) {
	doc, err := s.noticeRepo.Get(ctx)
	if err != nil {
		return nil, 0, err
	}

	total := len(doc.Notices)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	return doc.Notices[offset:end], int64(total), nil
}

// Create validates and prepends a notice
func (s *NoticeService) Create(ctx context.Context, input *CreateNoticeInput) (*domain.Notice, error) {
	if input == nil || strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return nil, domain.ErrMissingNoticeFields
	}

	priority := domain.PriorityNormal
	if input.Priority != "" {
		priority = domain.Priority(input.Priority)
		if !priority.Valid() {
			return nil, domain.ErrInvalidPriority
		}
	}

	notice := domain.Notice{
		ID:       uuid.New().String(),
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		Priority: priority,
		Date:     s.now().Format(domain.DateLayout),
		PostedBy: input.PostedBy,
	}

	if err := s.noticeRepo.Add(ctx, notice); err != nil {
		return nil, err
	}

	log.Printf("✅ Notice posted: %q by %s", notice.Title, notice.PostedBy)
	return &notice, nil
}
