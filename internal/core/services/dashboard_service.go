package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"jangja-school/internal/adapters/persistence/repositories"
	"jangja-school/internal/core/domain"
)

// RecentLimit is the number of recent items shown on the admin page
const RecentLimit = 5

// DashboardService builds the admin page summary
type DashboardService struct {
	galleryRepo repositories.GalleryRepository
	noticeRepo  repositories.NoticeRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(galleryRepo repositories.GalleryRepository, noticeRepo repositories.NoticeRepository) *DashboardService {
	return &DashboardService{
		galleryRepo: galleryRepo,
		noticeRepo:  noticeRepo,
	}
}

// DashboardData represents the admin page summary
type DashboardData struct {
	Photos     int                 `json:"photos"`
	Notices    int                 `json:"notices"`
	Categories domain.GalleryStats `json:"categories"`

	// Recent Activity
	RecentPhotos  []RecentPhoto   `json:"recentPhotos"`
	RecentNotices []domain.Notice `json:"recentNotices"`
}

// RecentPhoto is a photo with the category it was filed under
type RecentPhoto struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Image      string          `json:"image"`
	Category   domain.Category `json:"category"`
	UploadedBy string          `json:"uploadedBy"`
	UploadedAt time.Time       `json:"uploadedAt,omitzero"`
}

// storedPhoto is the part of a stored record the admin page reads. The id
// may be a string or a number depending on what wrote the record.
type storedPhoto struct {
	ID         json.RawMessage `json:"id"`
	Title      string          `json:"title"`
	Image      string          `json:"image"`
	UploadedBy string          `json:"uploadedBy"`
	UploadedAt string          `json:"uploadedAt"`
}

// GetDashboard returns totals and the most recent uploads and notices
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	gallery, err := s.galleryRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	notices, err := s.noticeRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	stats := gallery.Stats()
	data := &DashboardData{
		Photos:        stats.Total,
		Notices:       len(notices.Notices),
		Categories:    stats,
		RecentPhotos:  recentPhotos(gallery, RecentLimit),
		RecentNotices: notices.Notices[:min(RecentLimit, len(notices.Notices))],
	}
	return data, nil
}

// recentPhotos merges the categories newest first. Records without a
// readable upload time keep their document order after the timed ones and
// records that are not objects are skipped.
func recentPhotos(doc domain.GalleryDocument, limit int) []RecentPhoto {
	all := make([]RecentPhoto, 0, limit)
	for _, c := range domain.Categories {
		records, err := doc.Records(c)
		if err != nil {
			log.Printf("⚠️ Dashboard skipped category %s: %v", c, err)
			continue
		}
		for _, raw := range records {
			var p storedPhoto
			if err := json.Unmarshal(raw, &p); err != nil {
				continue
			}
			uploadedAt, _ := time.Parse(time.RFC3339Nano, p.UploadedAt)
			all = append(all, RecentPhoto{
				ID:         recordID(p.ID),
				Title:      p.Title,
				Image:      p.Image,
				Category:   c,
				UploadedBy: p.UploadedBy,
				UploadedAt: uploadedAt,
			})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UploadedAt.After(all[j].UploadedAt)
	})

	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// recordID renders a stored id as text: strings unquoted, numbers as written
func recordID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
