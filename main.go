package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"host-engagement-system/handlers"
	"host-engagement-system/middleware"
	"host-engagement-system/models"
	"host-engagement-system/services"
	"host-engagement-system/storage"
	"host-engagement-system/utils"
	"host-engagement-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // photo evidence uploads
	})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-User-ID, X-User-Roles, X-Service-Token",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if os.Getenv("R2_ACCESS_KEY_ID") != "" {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
	} else {
		log.Println("⚠️  R2 not configured — evidence photos will be stored locally under ./uploads")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.ChallengeProgress{},
		&models.VerificationSubmission{},
		&models.AdminNotification{},
		&models.UserNotification{},
		&models.Site{},
		&models.HostProfile{},
		&models.SubscriptionMirror{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	store := storage.NewStore(db)
	challengeService := services.NewChallengeService(store)
	verificationService := services.NewVerificationService(store)
	notificationService := services.NewNotificationService(store)
	siteService := services.NewSiteService(store, challengeService)

	syncServiceURL := os.Getenv("SYNC_SERVICE_URL")
	if syncServiceURL == "" {
		log.Fatal("SYNC_SERVICE_URL environment variable not set")
	}
	serviceToken := os.Getenv("ENGAGEMENT_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Fatal("ENGAGEMENT_SERVICE_TOKEN environment variable not set")
	}

	hostSyncWorker := workers.NewHostSyncWorker(db, notificationService, syncServiceURL, "/api/v1/public/hosts", serviceToken)

	subscriptionSyncClient := workers.NewSubscriptionSyncClient(db, notificationService)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go workers.PollSubscriptions(ctx, subscriptionSyncClient, 30*time.Second)

	go func() {
		log.Println("Starting Host Sync Worker...")
		hostSyncWorker.Start(ctx)
	}()

	siteService.StartPublishScheduler()
	notificationService.StartRetentionScheduler()

	// ✅ Setup routes — enforced Gateway auth, user context per group
	handlers.SetupChallengeRoutes(app, challengeService, verificationService)
	handlers.SetupNotificationRoutes(app, notificationService)
	handlers.SetupAdminRoutes(app, verificationService, notificationService)
	handlers.SetupSiteRoutes(app, siteService)

	app.Static("/uploads", "./uploads")

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Host Sync Worker running")
	log.Println("✅ Subscription polling running (every 30s)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
