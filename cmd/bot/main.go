package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/crystalpower/wa-property-matcher/internal/core/events"
	"github.com/crystalpower/wa-property-matcher/internal/core/extract"
	"github.com/crystalpower/wa-property-matcher/internal/core/match"
	"github.com/crystalpower/wa-property-matcher/internal/core/patterns"
	"github.com/crystalpower/wa-property-matcher/internal/core/whatsapp"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/repositories"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/services"
	"github.com/crystalpower/wa-property-matcher/internal/modules/matcher/stores"
	"github.com/crystalpower/wa-property-matcher/internal/shared/config"
	"github.com/crystalpower/wa-property-matcher/internal/shared/database"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.LoadConfig()
	log.Info().Str("env", cfg.Env).Msg("Starting matcher bot")

	var propertyRepo repositories.PropertyRepo
	var requirementRepo repositories.RequirementRepo
	if cfg.DatabaseURL != "" {
		db, err := database.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect database")
		}
		defer db.Close()
		propertyRepo = repositories.NewPropertyRepo(db.GORM)
		requirementRepo = repositories.NewRequirementRepo(db.GORM)
	} else {
		log.Warn().Msg("DATABASE_URL not set, analysis is memory-only")
	}

	inventory := stores.NewInventoryStore()
	demands := stores.NewRequirementStore()
	extractor := extract.NewExtractor(patterns.Default())
	engine := match.NewEngine(match.DefaultWeights(), cfg.MatchThreshold, cfg.MatchTopN)

	processor := services.NewProcessorService(
		extractor, engine, inventory, demands, events.NewBus(),
		propertyRepo, requirementRepo, cfg.RematchDebounce,
	)
	defer processor.Close()

	if count, err := processor.ReloadInventory(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Initial inventory load failed, matching against empty inventory")
	} else {
		log.Info().Int("properties", count).Msg("Inventory loaded")
	}

	waService, err := whatsapp.NewService(cfg.WhatsAppStoreURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init WhatsApp session store")
	}

	if err := waService.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect WhatsApp client")
	}

	err = waService.Listen(func(msg whatsapp.InboundMessage) {
		result, err := processor.ProcessMessage(context.Background(), msg.Content, msg.SenderID)
		if err != nil {
			log.Error().Err(err).Str("sender", msg.SenderID).Msg("Message processing failed")
			return
		}
		intent := "unknown"
		if result.Requirement.Intent != nil {
			intent = string(result.Requirement.Intent.Intent)
		}
		log.Info().
			Str("sender", msg.SenderID).
			Str("intent", intent).
			Int("matches", len(result.Matches)).
			Str("lead", result.LeadQuality.Band).
			Msg("Analyzed inbound message")
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to start listening")
		return
	}
	log.Info().Msg("Listening for inbound messages...")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("Shutting down...")
	waService.Disconnect()
	log.Info().Msg("Goodbye 👋")
}
