package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"jangja-school/internal/adapters/http/middleware"
	"jangja-school/internal/core/domain"
	"jangja-school/internal/core/services"
	"jangja-school/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Multipart field names accepted for photo files
var photoFields = []string{"photos", "photos[]"}

// GalleryHandler handles gallery and upload endpoints
type GalleryHandler struct {
	galleryService *services.GalleryService
	maxFiles       int
	maxFileSize    int64
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(galleryService *services.GalleryService, maxFiles int, maxFileSize int64) *GalleryHandler {
	return &GalleryHandler{
		galleryService: galleryService,
		maxFiles:       maxFiles,
		maxFileSize:    maxFileSize,
	}
}

// GetGallery returns the gallery document as stored
// @Summary Gallery
// @Description All photos grouped by category
// @Tags Gallery
// @Produce json
// @Success 200 {object} domain.GalleryDocument
// @Failure 500 {object} response.Response
// @Router /gallery [get]
func (h *GalleryHandler) GetGallery(c *fiber.Ctx) error {
	gallery, err := h.galleryService.GetGallery(c.UserContext())
	if err != nil {
		log.Printf("❌ Gallery read error: %v", err)
		return response.InternalServerError(c, "갤러리 데이터를 불러올 수 없습니다.")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(gallery)
}

// GetStats returns photo counts per category
// @Summary Gallery stats
// @Tags Gallery
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /gallery/stats [get]
func (h *GalleryHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.galleryService.GetStats(c.UserContext())
	if err != nil {
		log.Printf("❌ Gallery stats error: %v", err)
		return response.InternalServerError(c, "통계 데이터를 불러올 수 없습니다.")
	}
	return response.Success(c, "", fiber.Map{"stats": stats})
}

// UploadPhotos stores one or more photos under a category
// @Summary Upload photos
// @Tags Gallery
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param photos formData file true "Image files (jpg, png, gif, webp)"
// @Param category formData string true "moments | works | events | facilities"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 413 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /upload/photos [post]
func (h *GalleryHandler) UploadPhotos(c *fiber.Ctx) error {
	username, _ := c.Locals(middleware.LocalUsername).(string)
	input := &services.UploadInput{UploadedBy: username}

	// A request that is not multipart simply carries no files
	if form, err := c.MultipartForm(); err == nil {
		input.Category = formValue(form, "category")
		input.Title = formValue(form, "title")
		input.Description = formValue(form, "description")

		var headers []*multipart.FileHeader
		for _, field := range photoFields {
			headers = append(headers, form.File[field]...)
		}

		if len(headers) > h.maxFiles {
			return h.uploadError(c, domain.ErrTooManyFiles)
		}
		for _, fh := range headers {
			if fh.Size > h.maxFileSize {
				return h.uploadError(c, domain.ErrFileTooLarge)
			}
			input.Files = append(input.Files, uploadFile(fh))
		}
	}

	result, err := h.galleryService.Upload(c.UserContext(), input)
	if err != nil {
		return h.uploadError(c, err)
	}

	return response.Success(c, fmt.Sprintf("%d개 사진이 성공적으로 업로드되었습니다.", len(result.Photos)), fiber.Map{
		"photos":   result.Photos,
		"category": result.Category,
	})
}

func (h *GalleryHandler) uploadError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNoFiles):
		return response.BadRequest(c, "업로드할 파일이 없습니다.")
	case errors.Is(err, domain.ErrMissingFields):
		return response.BadRequest(c, "카테고리와 제목은 필수 입력사항입니다.")
	case errors.Is(err, domain.ErrInvalidCategory):
		return response.BadRequest(c, "올바르지 않은 카테고리입니다.")
	case errors.Is(err, domain.ErrUnsupportedType):
		return response.BadRequest(c, "이미지 파일만 업로드 가능합니다. (jpg, png, gif, webp)")
	case errors.Is(err, domain.ErrTooManyFiles):
		return response.BadRequest(c, fmt.Sprintf("한 번에 최대 %d개 파일까지 업로드할 수 있습니다.", h.maxFiles))
	case errors.Is(err, domain.ErrFileTooLarge):
		return response.RequestEntityTooLarge(c, fmt.Sprintf("파일 크기는 %dMB 이하여야 합니다.", h.maxFileSize>>20))
	default:
		if !errors.Is(err, domain.ErrPersistenceFailed) {
			log.Printf("❌ Upload error: %v", err)
		}
		return response.InternalServerError(c, "업로드 처리 중 오류가 발생했습니다.")
	}
}

func formValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func uploadFile(fh *multipart.FileHeader) services.UploadFile {
	return services.UploadFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
