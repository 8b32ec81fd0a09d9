package handlers

import (
	"errors"
	"log"

	"jangja-school/internal/adapters/http/middleware"
	"jangja-school/internal/core/domain"
	"jangja-school/internal/core/services"
	"jangja-school/internal/pkg/pagination"
	"jangja-school/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NoticeHandler handles notice board endpoints
type NoticeHandler struct {
	noticeService *services.NoticeService
}

// NewNoticeHandler creates a new notice handler
func NewNoticeHandler(noticeService *services.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

// ListNotices returns notices, newest first
// @Summary Notices
// @Tags Notices
// @Produce json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Items per page (default 20, max 100)"
// @Success 200 {object} map[string]interface{}
// @Router /notices [get]
func (h *NoticeHandler) ListNotices(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	notices, total, err := h.noticeService.List(c.UserContext(), params.Offset, params.Limit)
	if err != nil {
		log.Printf("❌ Notice read error: %v", err)
		return response.InternalServerError(c, "공지사항을 불러올 수 없습니다.")
	}

	return response.Success(c, "", fiber.Map{
		"notices": notices,
		"meta":    pagination.GetMeta(params, total),
	})
}

// CreateNotice posts a notice
// @Summary Post notice
// @Tags Notices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateNoticeInput true "Notice"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /notices [post]
func (h *NoticeHandler) CreateNotice(c *fiber.Ctx) error {
	var input services.CreateNoticeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "제목과 내용을 입력해주세요.")
	}
	input.PostedBy, _ = c.Locals(middleware.LocalUsername).(string)

	notice, err := h.noticeService.Create(c.UserContext(), &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingNoticeFields):
			return response.BadRequest(c, "제목과 내용을 입력해주세요.")
		case errors.Is(err, domain.ErrInvalidPriority):
			return response.BadRequest(c, "올바르지 않은 중요도입니다.")
		default:
			log.Printf("❌ Notice create error: %v", err)
			return response.InternalServerError(c, "공지사항 작성 중 오류가 발생했습니다.")
		}
	}

	return response.Created(c, "공지사항이 게시되었습니다.", fiber.Map{"notice": notice})
}
