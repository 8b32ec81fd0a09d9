package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"jangja-school/internal/adapters/persistence/repositories"
	"jangja-school/internal/adapters/storage"
	"jangja-school/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockFileStore is a testify mock of FileStore
type mockFileStore struct {
	mock.Mock
}

func (m *mockFileStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, name, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockFileStore) Remove(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// failingGalleryRepo reads normally but cannot persist
type failingGalleryRepo struct {
	repositories.GalleryRepository
}

func (failingGalleryRepo) AddPhotos(context.Context, domain.Category, []domain.Photo) error {
	return errors.New("disk full")
}

func uploadFile(name, contentType, content string) UploadFile {
	return UploadFile{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

type galleryFixture struct {
	svc         *GalleryService
	repo        repositories.GalleryRepository
	galleryPath string
	uploadDir   string
	now         time.Time
}

func newGalleryFixture(t *testing.T) *galleryFixture {
	t.Helper()
	root := t.TempDir()
	galleryPath := filepath.Join(root, "data", "gallery.json")
	uploadDir := filepath.Join(root, "public", "images", "uploads")

	repo, _, err := repositories.NewGalleryRepository(galleryPath)
	require.NoError(t, err)

	now := time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)
	svc := NewGalleryService(repo, storage.NewDiskStore(uploadDir, "/images/uploads")).
		WithClock(func() time.Time { return now })

	return &galleryFixture{svc: svc, repo: repo, galleryPath: galleryPath, uploadDir: uploadDir, now: now}
}

// storedGallery decodes a gallery file written only by this service
type storedGallery struct {
	Moments    []domain.Photo `json:"moments"`
	Works      []domain.Photo `json:"works"`
	Events     []domain.Photo `json:"events"`
	Facilities []domain.Photo `json:"facilities"`
}

func readGalleryFile(t *testing.T, path string) storedGallery {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var g storedGallery
	require.NoError(t, json.Unmarshal(raw, &g))
	return g
}

func TestGalleryService_UploadThreeJPEGs(t *testing.T) {
	f := newGalleryFixture(t)
	ctx := context.Background()

	_, err := f.svc.Upload(ctx, &UploadInput{
		Files:    []UploadFile{uploadFile("old.png", "image/png", "old")},
		Category: "works",
		Title:    "earlier",
	})
	require.NoError(t, err)

	result, err := f.svc.Upload(ctx, &UploadInput{
		Files: []UploadFile{
			uploadFile("a.jpg", "image/jpeg", "aaa"),
			uploadFile("b.JPG", "image/jpeg", "bbbb"),
			uploadFile("c.jpeg", "image/jpeg", "ccccc"),
		},
		Category:    "works",
		Title:       "미술 시간",
		Description: "학생 작품",
		UploadedBy:  "teacher1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryWorks, result.Category)
	require.Len(t, result.Photos, 3)

	namePattern := regexp.MustCompile(`^/images/uploads/photo-\d+-\d{9}\.(jpg|jpeg)$`)
	for i, p := range result.Photos {
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "미술 시간", p.Title)
		assert.Equal(t, "학생 작품", p.Description)
		assert.Equal(t, "teacher1", p.UploadedBy)
		assert.Equal(t, "2026-05-04", p.Date)
		assert.True(t, f.now.Equal(p.UploadedAt))
		assert.Regexp(t, namePattern, p.Image)

		raw, err := os.ReadFile(filepath.Join(f.uploadDir, filepath.Base(p.Image)))
		require.NoError(t, err)
		assert.Equal(t, p.FileSize, int64(len(raw)), "record %d", i)
	}
	assert.Equal(t, "a.jpg", result.Photos[0].OriginalName)
	assert.Equal(t, "b.JPG", result.Photos[1].OriginalName)
	assert.Equal(t, "c.jpeg", result.Photos[2].OriginalName)

	onDisk := readGalleryFile(t, f.galleryPath)
	require.Len(t, onDisk.Works, 4)
	for i := range result.Photos {
		assert.Equal(t, result.Photos[i].ID, onDisk.Works[i].ID)
		assert.Equal(t, result.Photos[i].Image, onDisk.Works[i].Image)
	}
	assert.Equal(t, "earlier", onDisk.Works[3].Title)
	assert.Empty(t, onDisk.Moments)

	entries, err := os.ReadDir(f.uploadDir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestGalleryService_RejectsExecutableBeforeWriting(t *testing.T) {
	f := newGalleryFixture(t)
	before, err := os.ReadFile(f.galleryPath)
	require.NoError(t, err)

	files := &mockFileStore{}
	svc := NewGalleryService(f.repo, files)

	_, err = svc.Upload(context.Background(), &UploadInput{
		Files: []UploadFile{
			uploadFile("photo.jpg", "image/jpeg", "ok"),
			uploadFile("virus.exe", "application/octet-stream", "MZ"),
		},
		Category: "moments",
		Title:    "수업",
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	files.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	after, err := os.ReadFile(f.galleryPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	_, err = os.Stat(f.uploadDir)
	assert.True(t, os.IsNotExist(err), "upload dir is never created")
}

func TestGalleryService_InvalidCategoryLeavesDocument(t *testing.T) {
	f := newGalleryFixture(t)
	before, err := os.ReadFile(f.galleryPath)
	require.NoError(t, err)

	_, err = f.svc.Upload(context.Background(), &UploadInput{
		Files:    []UploadFile{uploadFile("a.png", "image/png", "png")},
		Category: "secrets",
		Title:    "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	after, err := os.ReadFile(f.galleryPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestGalleryService_ValidationOrder(t *testing.T) {
	f := newGalleryFixture(t)
	ctx := context.Background()
	exe := uploadFile("run.exe", "application/x-msdownload", "x")
	jpg := uploadFile("a.jpg", "image/jpeg", "x")

	tests := []struct {
		name  string
		input *UploadInput
		want  error
	}{
		{"no files beats everything", &UploadInput{Category: "bogus"}, domain.ErrNoFiles},
		{"missing title beats bad category", &UploadInput{Files: []UploadFile{exe}, Category: "bogus"}, domain.ErrMissingFields},
		{"missing category", &UploadInput{Files: []UploadFile{jpg}, Title: "t"}, domain.ErrMissingFields},
		{"bad category beats bad type", &UploadInput{Files: []UploadFile{exe}, Category: "bogus", Title: "t"}, domain.ErrInvalidCategory},
		{"category is case sensitive", &UploadInput{Files: []UploadFile{jpg}, Category: "Works", Title: "t"}, domain.ErrInvalidCategory},
		{"bad type", &UploadInput{Files: []UploadFile{jpg, exe}, Category: "events", Title: "t"}, domain.ErrUnsupportedType},
		{"image extension with wrong mime", &UploadInput{Files: []UploadFile{uploadFile("a.png", "text/plain", "x")}, Category: "events", Title: "t"}, domain.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Upload(ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	stats, err := f.svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
}

func TestAllowedImage(t *testing.T) {
	assert.True(t, AllowedImage("a.webp", "image/webp"))
	assert.True(t, AllowedImage("A.GIF", "IMAGE/GIF"))
	assert.True(t, AllowedImage("a.jpg", "image/jpg"))
	assert.True(t, AllowedImage("a.jpeg", "image/jpeg; charset=binary"))
	assert.False(t, AllowedImage("a", "image/jpeg"))
	assert.False(t, AllowedImage("a.svg", "image/svg+xml"))
	assert.False(t, AllowedImage("a.jpg.exe", "image/jpeg"))
	assert.False(t, AllowedImage("a.jpg", ""))
}

func TestGalleryService_CleansUpWhenAWriteFails(t *testing.T) {
	f := newGalleryFixture(t)
	before, err := os.ReadFile(f.galleryPath)
	require.NoError(t, err)

	files := &mockFileStore{}
	files.On("Save", mock.Anything, mock.Anything, mock.Anything, int64(2), "image/png").
		Return("/images/uploads/ok.png", nil).Once()
	files.On("Save", mock.Anything, mock.Anything, mock.Anything, int64(3), "image/png").
		Return("", errors.New("no space left")).Once()
	files.On("Remove", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()

	svc := NewGalleryService(f.repo, files)
	_, err = svc.Upload(context.Background(), &UploadInput{
		Files: []UploadFile{
			uploadFile("ok.png", "image/png", "ok"),
			uploadFile("bad.png", "image/png", "bad"),
		},
		Category: "events",
		Title:    "운동회",
	})
	assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
	files.AssertExpectations(t)

	after, err := os.ReadFile(f.galleryPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestGalleryService_CleansUpWhenDocumentWriteFails(t *testing.T) {
	f := newGalleryFixture(t)

	files := &mockFileStore{}
	files.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything, "image/gif").
		Return("/images/uploads/x.gif", nil).Twice()
	files.On("Remove", mock.Anything, mock.Anything).Return(errors.New("already gone")).Twice()

	svc := NewGalleryService(failingGalleryRepo{f.repo}, files)
	_, err := svc.Upload(context.Background(), &UploadInput{
		Files: []UploadFile{
			uploadFile("1.gif", "image/gif", "1"),
			uploadFile("2.gif", "image/gif", "2"),
		},
		Category: "facilities",
		Title:    "도서관",
	})
	assert.ErrorIs(t, err, domain.ErrPersistenceFailed)
	files.AssertExpectations(t)

	names := map[string]bool{}
	for _, call := range files.Calls {
		if call.Method == "Remove" {
			names[call.Arguments.String(1)] = true
		}
	}
	assert.Len(t, names, 2, "each written file is removed once")
}

func TestGalleryService_StatsAndEmptyGallery(t *testing.T) {
	f := newGalleryFixture(t)
	ctx := context.Background()

	g, err := f.svc.GetGallery(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"moments":[],"works":[],"events":[],"facilities":[]}`, string(g))

	_, err = f.svc.Upload(ctx, &UploadInput{
		Files:    []UploadFile{uploadFile("a.png", "image/png", "a"), uploadFile("b.png", "image/png", "b")},
		Category: "moments",
		Title:    "t",
	})
	require.NoError(t, err)
	_, err = f.svc.Upload(ctx, &UploadInput{
		Files:    []UploadFile{uploadFile("c.webp", "image/webp", "c")},
		Category: "facilities",
		Title:    "t",
	})
	require.NoError(t, err)

	stats, err := f.svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.GalleryStats{Total: 3, Moments: 2, Facilities: 1}, *stats)

	// stats follow the file, not a cached copy
	require.NoError(t, os.WriteFile(f.galleryPath, []byte(`{"works":[{"id":"x"}]}`), 0o644))
	stats, err = f.svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.GalleryStats{Total: 1, Works: 1}, *stats)
}
