package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/crystalpower/wa-property-matcher/internal/core/events"
	"github.com/crystalpower/wa-property-matcher/internal/core/extract"
	"github.com/crystalpower/wa-property-matcher/internal/core/insights"
	"github.com/crystalpower/wa-property-matcher/internal/core/match"
	"github.com/crystalpower/wa-property-matcher/internal/core/patterns"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/handlers"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/repositories"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/services"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/stores"
	"github.com/crystalpower/wa-property-matcher/internal/shared/config"
	"github.com/crystalpower/wa-property-matcher/internal/shared/database"
	"github.com/crystalpower/wa-property-matcher/internal/shared/utils"

	_ "github.com/crystalpower/wa-property-matcher/docs"
)

// @title Crystal Power Supply-Demand Matcher API
// @version 1.0
// @description Matches real-estate demand extracted from WhatsApp messages against the property inventory.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg := config.LoadConfig()
	utils.InitLogger()
	log.Printf("🚀 Starting matcher api on port %s", cfg.Port)

	// Persistence is optional: without DATABASE_URL the service runs
	// memory-only and reload becomes a no-op.
	var propertyRepo repositories.PropertyRepo
	var requirementRepo repositories.RequirementRepo
	if cfg.DatabaseURL != "" {
		db, err := database.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Failed to connect database: %v", err)
		}
		defer db.Close()
		propertyRepo = repositories.NewPropertyRepo(db.GORM)
		requirementRepo = repositories.NewRequirementRepo(db.GORM)
	} else {
		log.Println("⚠️ DATABASE_URL not set, running with in-memory inventory only")
	}

	bus := events.NewBus()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("❌ Invalid REDIS_URL: %v", err)
		}
		bus.WithRedis(redis.NewClient(opts), events.DefaultChannel)
		log.Println("🔔 Matching updates mirrored to redis pub/sub")
	}

	inventory := stores.NewInventoryStore()
	demands := stores.NewRequirementStore()
	extractor := extract.NewExtractor(patterns.Default())
	engine := match.NewEngine(match.DefaultWeights(), cfg.MatchThreshold, cfg.MatchTopN)

	processor := services.NewProcessorService(
		extractor, engine, inventory, demands, bus,
		propertyRepo, requirementRepo, cfg.RematchDebounce,
	)
	defer processor.Close()

	// Seed the inventory; a failed initial load is not fatal, matching starts
	// against an empty snapshot and recovers on the next reload.
	if count, err := processor.ReloadInventory(context.Background()); err != nil {
		log.Printf("⚠️ Initial inventory load failed: %v", err)
	} else {
		log.Printf("📦 Loaded %d properties into inventory", count)
	}

	// Scheduled reload keeps the snapshot fresh.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReloadCron, func() {
		if _, err := processor.ReloadInventory(context.Background()); err != nil {
			log.Printf("⚠️ Scheduled inventory reload failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("❌ Invalid INVENTORY_RELOAD_CRON %q: %v", cfg.ReloadCron, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	insightsService := insights.NewService(cfg.OpenAIKey)
	if insightsService != nil {
		log.Println("🤖 Agent brief generation enabled")
	}

	// Handlers
	webhookHandler := handlers.NewWebhookHandler(processor, cfg.WebhookVerifyToken)
	inventoryHandler := handlers.NewInventoryHandler(processor)
	requirementsHandler := handlers.NewRequirementsHandler(processor, insightsService)
	analyticsHandler := handlers.NewAnalyticsHandler(processor)
	healthHandler := handlers.NewHealthHandler(cfg.Env)

	app := fiber.New(fiber.Config{
		AppName: "Crystal Power Supply-Demand Matcher",
	})
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Webhook routes
	app.Get("/webhook", webhookHandler.Verify)
	app.Post("/webhook", webhookHandler.Receive)

	// Inventory routes
	app.Get("/api/properties", inventoryHandler.List)
	app.Post("/api/properties", inventoryHandler.Upsert)
	app.Post("/api/properties/reload", inventoryHandler.Reload)
	app.Put("/api/properties/:id", inventoryHandler.Update)
	app.Delete("/api/properties/:id", inventoryHandler.Remove)

	// Requirement routes
	app.Get("/api/requirements", requirementsHandler.List)
	app.Get("/api/requirements/:customerId", requirementsHandler.Get)
	app.Get("/api/requirements/:customerId/matches", requirementsHandler.Matches)
	app.Post("/api/requirements/:customerId/brief", requirementsHandler.Brief)

	// Analytics
	app.Get("/api/analytics/summary", analyticsHandler.Summary)

	go func() {
		log.Printf("✅ matcher-api running at :%s", cfg.Port)
		log.Printf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("🛑 Shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Printf("⚠️ Shutdown error: %v", err)
	}
}
