package handlers

import (
	"errors"
	"log"
	"strings"

	"jangja-school/internal/adapters/http/middleware"
	"jangja-school/internal/core/domain"
	"jangja-school/internal/core/services"
	"jangja-school/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles teacher/admin login
// @Summary Login
// @Description Authenticate a teacher or admin and return a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "아이디와 비밀번호를 입력해주세요.")
	}

	input := &services.LoginInput{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
	}

	result, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingCredentials):
			return response.BadRequest(c, "아이디와 비밀번호를 입력해주세요.")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "아이디 또는 비밀번호가 올바르지 않습니다.")
		default:
			log.Printf("❌ Login error: %v", err)
			return response.InternalServerError(c, "서버 오류가 발생했습니다.")
		}
	}

	return response.Success(c, "로그인 성공", fiber.Map{
		"token": result.Token,
		"user":  result.User,
	})
}

// VerifyToken returns the identity carried by a valid token
// @Summary Verify token
// @Description Check the bearer token and return its identity
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /verify-token [get]
func (h *AuthHandler) VerifyToken(c *fiber.Ctx) error {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return response.Unauthorized(c, "액세스 토큰이 필요합니다.")
	}

	return response.Success(c, "", fiber.Map{
		"user": fiber.Map{
			"id":       claims.AccountID,
			"username": claims.Username,
			"role":     claims.Role,
		},
	})
}

// Logout ends the session. The client drops its token; when revocation is
// enabled the token is also denylisted until it expires.
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), middleware.BearerToken(c)); err != nil {
		log.Printf("❌ Logout error: %v", err)
		return response.InternalServerError(c, "서버 오류가 발생했습니다.")
	}

	return response.Success(c, "로그아웃 되었습니다.", nil)
}
