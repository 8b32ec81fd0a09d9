package routes

import (
	"time"

	"jangja-school/internal/adapters/http/handlers"
	"jangja-school/internal/adapters/http/middleware"
	"jangja-school/internal/adapters/persistence/repositories"
	"jangja-school/internal/config"
	"jangja-school/internal/core/domain"
	"jangja-school/internal/core/services"
	"jangja-school/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Dependencies are the adapters the routes are built on
type Dependencies struct {
	Accounts repositories.AccountRepository
	Gallery  repositories.GalleryRepository
	Notices  repositories.NoticeRepository
	Files    services.FileStore

	// Optional
	Denylist     services.TokenDenylist
	HealthChecks map[string]handlers.Pinger
}

// NewApp creates the Fiber app with the global error handler and middlewares
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Jangja School API v1.0",
		BodyLimit:    cfg.Storage.BodyLimit(),
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg)
	return app
}

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, deps Dependencies) {
	// Initialize services
	tokens := jwt.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	authService := services.NewAuthService(deps.Accounts, tokens, deps.Denylist)
	galleryService := services.NewGalleryService(deps.Gallery, deps.Files)
	noticeService := services.NewNoticeService(deps.Notices)
	dashboardService := services.NewDashboardService(deps.Gallery, deps.Notices)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode,
		[]string{cfg.Storage.GalleryFile(), cfg.Storage.NoticesFile()}, deps.HealthChecks)
	authHandler := handlers.NewAuthHandler(authService)
	galleryHandler := handlers.NewGalleryHandler(galleryService, cfg.Storage.MaxFiles, cfg.Storage.MaxFileSize)
	noticeHandler := handlers.NewNoticeHandler(noticeService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	pageHandler := handlers.NewPageHandler(cfg.Storage.PublicDir)

	// Health check
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API group
	api := app.Group("/api", middleware.APIRateLimiter(cfg.RateLimit.Max), middleware.NoCacheHeaders())
	setupAPIRoutes(api, authService, authHandler, galleryHandler, noticeHandler, dashboardHandler, cfg)

	// Uploaded photos
	app.Use(cfg.Storage.UploadURLPrefix, middleware.CacheControl(7*24*time.Hour))
	app.Static(cfg.Storage.UploadURLPrefix, cfg.Storage.UploadDir, fiber.Static{ByteRange: true})

	// HTML pages
	app.Get("/", pageHandler.Page("index.html"))
	app.Get("/teacher-login", pageHandler.Page("teacher-login.html"))
	app.Get("/teacher-admin", pageHandler.Page("teacher-admin.html"))
	app.Get("/school-life", pageHandler.Page("school-life.html"))

	// Other public assets
	app.Static("/", cfg.Storage.PublicDir)

	// Soft 404
	app.Use(pageHandler.NotFound)
}

// setupAPIRoutes configures the JSON API
func setupAPIRoutes(
	router fiber.Router,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	galleryHandler *handlers.GalleryHandler,
	noticeHandler *handlers.NoticeHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	requireAuth := middleware.AuthMiddleware(authService)
	staffOnly := middleware.RoleMiddleware(domain.RoleTeacher, domain.RoleAdmin)

	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(cfg.RateLimit.LoginMax), authHandler.Login)
	router.Post("/logout", authHandler.Logout)
	router.Get("/gallery", galleryHandler.GetGallery)
	router.Get("/notices", noticeHandler.ListNotices)

	// Protected routes
	router.Get("/verify-token", requireAuth, staffOnly, authHandler.VerifyToken)
	router.Get("/dashboard", requireAuth, staffOnly, dashboardHandler.GetDashboard)
	router.Get("/gallery/stats", requireAuth, staffOnly, galleryHandler.GetStats)
	router.Post("/upload/photos", requireAuth, staffOnly, galleryHandler.UploadPhotos)
	router.Post("/notices", requireAuth, staffOnly, noticeHandler.CreateNotice)
}
