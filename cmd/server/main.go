package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jangja-school/internal/adapters/http/handlers"
	"jangja-school/internal/adapters/http/routes"
	"jangja-school/internal/adapters/persistence/repositories"
	redisadapter "jangja-school/internal/adapters/redis"
	"jangja-school/internal/adapters/storage"
	"jangja-school/internal/config"
	"jangja-school/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "jangja-school/docs" // Swagger docs
)

// @title Jangja School API
// @version 1.0
// @description 장자기독학교 홈페이지 API: 교사 로그인, 갤러리, 공지사항

// @contact.name API Support
// @contact.email admin@jangjachristian.edu

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Load accounts
	accounts, err := config.LoadAccounts(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to load accounts: %v", err)
	}

	deps := routes.Dependencies{
		Accounts:     repositories.NewAccountRepository(accounts),
		HealthChecks: map[string]handlers.Pinger{},
	}

	// Optional MySQL account store
	if cfg.Database.Enabled() {
		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to connect to database: %v", err)
		}
		defer config.CloseDatabase(db)

		if err := config.NewSeeder(db).Run(accounts); err != nil {
			log.Fatalf("❌ Failed to seed database: %v", err)
		}

		deps.Accounts = repositories.NewGormAccountRepository(db)
		deps.HealthChecks["database"] = handlers.PingFunc(func(context.Context) error {
			return config.PingDatabase(db)
		})
	}

	// Data documents
	galleryRepo, created, err := repositories.NewGalleryRepository(cfg.Storage.GalleryFile())
	if err != nil {
		log.Fatalf("❌ Failed to initialise gallery data: %v", err)
	}
	if created {
		log.Printf("✅ Created default gallery data file: %s", cfg.Storage.GalleryFile())
	}
	deps.Gallery = galleryRepo

	noticeRepo, created, err := repositories.NewNoticeRepository(cfg.Storage.NoticesFile())
	if err != nil {
		log.Fatalf("❌ Failed to initialise notices data: %v", err)
	}
	if created {
		log.Printf("✅ Created default notices data file: %s", cfg.Storage.NoticesFile())
	}
	deps.Notices = noticeRepo

	// Upload storage
	if cfg.MinIO.Enabled() {
		store, err := storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			PublicURL: cfg.MinIO.PublicURL,
			Prefix:    "uploads",
		})
		if err != nil {
			log.Fatalf("❌ Failed to connect to MinIO: %v", err)
		}
		deps.Files = store
		deps.HealthChecks["storage"] = store
		log.Printf("✅ Uploads stored in MinIO bucket %s", cfg.MinIO.Bucket)
	} else {
		if err := os.MkdirAll(cfg.Storage.UploadDir, 0o755); err != nil {
			log.Fatalf("❌ Failed to create upload directory: %v", err)
		}
		deps.Files = storage.NewDiskStore(cfg.Storage.UploadDir, cfg.Storage.UploadURLPrefix)
		log.Printf("✅ Uploads stored in %s", cfg.Storage.UploadDir)
	}

	// Optional token revocation
	if cfg.Redis.Enabled() {
		client, err := redisadapter.Connect(ctx, redisadapter.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatalf("❌ Failed to connect to Redis: %v", err)
		}
		defer client.Close()

		denylist := redisadapter.NewDenylist(client)
		deps.Denylist = denylist
		deps.HealthChecks["redis"] = denylist
		log.Println("✅ Token revocation enabled (Redis)")
	}

	// Scheduled data backups
	if cfg.Backup.Enabled {
		backupService := services.NewBackupService(cfg.Backup.Schedule, cfg.Backup.Dir, cfg.Backup.Retain,
			cfg.Storage.GalleryFile(), cfg.Storage.NoticesFile())
		if err := backupService.Start(); err != nil {
			log.Fatalf("❌ Failed to start backups: %v", err)
		}
		defer backupService.Stop()
	}

	// Create Fiber app
	app := routes.NewApp(cfg)

	// Setup routes
	routes.Setup(app, cfg, deps)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
