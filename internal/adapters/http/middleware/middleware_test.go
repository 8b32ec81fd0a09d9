package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jangja-school/internal/core/domain"
	"jangja-school/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifierFunc func(ctx context.Context, token string) (*jwt.Claims, error)

func (f verifierFunc) VerifyToken(ctx context.Context, token string) (*jwt.Claims, error) {
	return f(ctx, token)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer", ""},
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer   spaced  ", "spaced"},
		{"Token xyz", "xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return c.SendString(BearerToken(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.want, string(body))
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	claims := &jwt.Claims{AccountID: 7, Username: "teacher1", Role: "teacher"}
	verifier := verifierFunc(func(_ context.Context, token string) (*jwt.Claims, error) {
		switch token {
		case "good":
			return claims, nil
		case "expired":
			return nil, domain.ErrTokenExpired
		case "revoked":
			return nil, domain.ErrTokenRevoked
		case "down":
			return nil, errors.New("redis: connection refused")
		}
		return nil, domain.ErrTokenInvalid
	})

	app := fiber.New()
	app.Get("/", AuthMiddleware(verifier), RoleMiddleware(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/any", AuthMiddleware(verifier), func(c *fiber.Ctx) error {
		got := ClaimsFrom(c)
		require.NotNil(t, got)
		return c.JSON(fiber.Map{"id": c.Locals(LocalAccountID), "username": got.Username})
	})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"no header", "/any", "", http.StatusUnauthorized},
		{"scheme only", "/any", "Bearer", http.StatusUnauthorized},
		{"invalid", "/any", "Bearer junk", http.StatusForbidden},
		{"expired", "/any", "Bearer expired", http.StatusForbidden},
		{"revoked", "/any", "Bearer revoked", http.StatusForbidden},
		{"lookup failure", "/any", "Bearer down", http.StatusInternalServerError},
		{"valid", "/any", "Bearer good", http.StatusOK},
		{"wrong role", "/", "Bearer good", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tt.want == http.StatusOK {
				assert.Equal(t, "teacher1", body["username"])
				assert.Equal(t, float64(7), body["id"])
			} else {
				assert.Equal(t, false, body["success"])
			}
		})
	}
}

func TestCustomErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "없음")
	})
	app.Get("/big", func(c *fiber.Ctx) error {
		return fiber.ErrRequestEntityTooLarge
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("disk on fire")
	})

	tests := []struct {
		path    string
		code    int
		message string
	}{
		{"/missing", http.StatusNotFound, "없음"},
		{"/big", http.StatusRequestEntityTooLarge, "요청 크기가 너무 큽니다."},
		{"/boom", http.StatusInternalServerError, "서버 내부 오류가 발생했습니다."},
	}

	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tt.code, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, tt.message, body["message"], "internal details stay out of the body")
	}
}

func TestCacheHeaders(t *testing.T) {
	app := fiber.New()
	app.Get("/static", CacheControl(7*24*time.Hour), func(c *fiber.Ctx) error {
		return c.SendString("img")
	})
	app.Get("/api", NoCacheHeaders(), func(c *fiber.Ctx) error {
		return c.SendString("{}")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/static", nil))
	require.NoError(t, err)
	assert.Equal(t, "public, max-age=604800", resp.Header.Get("Cache-Control"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api", nil))
	require.NoError(t, err)
	assert.Equal(t, "no-store, no-cache, must-revalidate", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "no-cache", resp.Header.Get("Pragma"))
}
