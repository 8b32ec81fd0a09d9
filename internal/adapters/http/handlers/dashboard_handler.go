package handlers

import (
	"log"

	"jangja-school/internal/adapters/http/middleware"
	"jangja-school/internal/core/services"
	"jangja-school/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles the admin page summary
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard returns the signed-in account with totals and recent activity
// @Summary Dashboard
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return response.Unauthorized(c, "액세스 토큰이 필요합니다.")
	}

	data, err := h.dashboardService.GetDashboard(c.UserContext())
	if err != nil {
		log.Printf("❌ Dashboard error: %v", err)
		return response.InternalServerError(c, "서버 오류가 발생했습니다.")
	}

	return response.Success(c, "관리자 페이지에 접근했습니다.", fiber.Map{
		"user": fiber.Map{
			"id":       claims.AccountID,
			"username": claims.Username,
			"role":     claims.Role,
		},
		"stats": data,
	})
}
