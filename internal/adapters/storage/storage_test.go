package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images", "uploads")
	s := NewDiskStore(dir, "images/uploads/")

	p, err := s.Save(context.Background(), "photo-1.jpg", strings.NewReader("jpeg-bytes"), 10, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "/images/uploads/photo-1.jpg", p)

	raw, err := os.ReadFile(filepath.Join(dir, "photo-1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(raw))
}

func TestDiskStore_SaveRefusesOverwrite(t *testing.T) {
	s := NewDiskStore(t.TempDir(), "/images/uploads")
	ctx := context.Background()

	_, err := s.Save(ctx, "photo.png", strings.NewReader("first"), 5, "image/png")
	require.NoError(t, err)

	_, err = s.Save(ctx, "photo.png", strings.NewReader("second"), 6, "image/png")
	assert.Error(t, err)

	raw, err := os.ReadFile(filepath.Join(s.Dir(), "photo.png"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(raw))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }

func TestDiskStore_SaveRemovesPartialFile(t *testing.T) {
	s := NewDiskStore(t.TempDir(), "/images/uploads")

	_, err := s.Save(context.Background(), "broken.gif", failingReader{}, 1, "image/gif")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(s.Dir(), "broken.gif"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDiskStore_RejectsPathNames(t *testing.T) {
	s := NewDiskStore(t.TempDir(), "/images/uploads")
	ctx := context.Background()

	for _, name := range []string{"", "..", "../escape.jpg", `a\b.jpg`, "sub/dir.jpg"} {
		_, err := s.Save(ctx, name, bytes.NewReader(nil), 0, "image/jpeg")
		assert.ErrorIs(t, err, ErrInvalidName, name)
		assert.ErrorIs(t, s.Remove(ctx, name), ErrInvalidName, name)
	}
}

func TestDiskStore_Remove(t *testing.T) {
	s := NewDiskStore(t.TempDir(), "/images/uploads")
	ctx := context.Background()

	_, err := s.Save(ctx, "photo.webp", strings.NewReader("x"), 1, "image/webp")
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, "photo.webp"))
	require.NoError(t, s.Remove(ctx, "photo.webp"), "removing a missing file is not an error")
}

func TestDiskStore_SaveHonoursCancelledContext(t *testing.T) {
	s := NewDiskStore(t.TempDir(), "/images/uploads")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Save(ctx, "photo.jpg", strings.NewReader("x"), 1, "image/jpeg")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNormaliseEndpoint(t *testing.T) {
	tests := []struct {
		raw      string
		endpoint string
		secure   bool
		wantErr  bool
	}{
		{raw: "minio:9000", endpoint: "minio:9000"},
		{raw: "http://minio:9000", endpoint: "minio:9000"},
		{raw: "https://s3.example.com/", endpoint: "s3.example.com", secure: true},
		{raw: "https://s3.example.com/bucket", wantErr: true},
		{raw: "http://", wantErr: true},
		{raw: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			endpoint, secure, err := NormaliseEndpoint(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.endpoint, endpoint)
			assert.Equal(t, tt.secure, secure)
		})
	}
}

func TestMinioStore_RoundTrip(t *testing.T) {
	endpoint := os.Getenv("TEST_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("TEST_MINIO_ENDPOINT not set")
	}

	s, err := NewMinioStore(context.Background(), MinioConfig{
		Endpoint:  endpoint,
		AccessKey: os.Getenv("TEST_MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("TEST_MINIO_SECRET_KEY"),
		Bucket:    os.Getenv("TEST_MINIO_BUCKET"),
		Prefix:    "test-uploads",
	})
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	ctx := context.Background()
	url, err := s.Save(ctx, "photo-test.jpg", strings.NewReader("jpeg"), 4, "image/jpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, "/test-uploads/photo-test.jpg"))
	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Remove(ctx, "photo-test.jpg"))
}
