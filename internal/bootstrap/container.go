package bootstrap

import (
	"context"
	"log"
	"net/http"
	"time"

	"ai-artpoet-be/internal/config"
	"ai-artpoet-be/internal/controller"
	"ai-artpoet-be/internal/pkg/logger"
	"ai-artpoet-be/internal/repository/contract"
	"ai-artpoet-be/internal/repository/implementation"
	"ai-artpoet-be/internal/repository/memory"
	"ai-artpoet-be/internal/service"
	"ai-artpoet-be/pkg/analytics"
	"ai-artpoet-be/pkg/artprovider"
	"ai-artpoet-be/pkg/database"
	"ai-artpoet-be/pkg/genai"
	pktNats "ai-artpoet-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const analyticsTopic = "analytics.events"

type Container struct {
	// Controllers
	SessionController     controller.ISessionController
	PersistenceController controller.IPersistenceController

	// Background services (exposed for main.go to run)
	AnalyticsConsumer *service.AnalyticsConsumer

	Logger  logger.ILogger
	NatsPub *pktNats.Publisher
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	tracker := analytics.NewBusTracker(pubSub, analyticsTopic)

	// 2.5 Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Persistence: Postgres when configured, in-memory otherwise.
	var bookmarkRepo contract.BookmarkRepository
	var likedPoemRepo contract.LikedPoemRepository
	if cfg.Database.Connection != "" {
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Fatalf("[FATAL] Failed to connect to database: %v", err)
		}
		bookmarkRepo = implementation.NewBookmarkRepository(db)
		likedPoemRepo = implementation.NewLikedPoemRepository(db)
	} else {
		log.Printf("[WARN] No database configured, collections are in-memory only")
		bookmarkRepo = memory.NewBookmarkRepository()
		likedPoemRepo = memory.NewLikedPoemRepository()
	}

	sessionRepo := memory.NewSessionRepository()

	// 3. Domain clients
	httpClient := &http.Client{Timeout: 30 * time.Second}
	registry := artprovider.NewRegistry(
		artprovider.NewAICProvider(httpClient),
		artprovider.NewVAMProvider(httpClient),
	)
	imageFetcher := artprovider.NewHTTPImageFetcher(httpClient)
	generator := genai.NewGeminiGenerator(cfg.Keys.GoogleGemini, cfg.Poem.GeminiModel, httpClient)
	apiKeySet := cfg.Keys.GoogleGemini != ""
	if !apiKeySet {
		log.Printf("[WARN] GOOGLE_GEMINI_API_KEY is not set, generation intents will fail fast")
	}

	// 4. Services
	artService := service.NewArtService(registry, imageFetcher, tracker)
	inspirationService := service.NewInspirationService(generator, apiKeySet, tracker)
	poemService := service.NewPoemService(generator, apiKeySet, cfg.Poem, tracker)
	sessionService := service.NewSessionService(sessionRepo, likedPoemRepo, artService, tracker)
	persistenceService := service.NewPersistenceService(bookmarkRepo, likedPoemRepo, tracker)

	analyticsLogger := logger.NewIsolatedLogger("logs/analytics.log")
	analyticsConsumer := service.NewAnalyticsConsumer(pubSub, analyticsTopic, analyticsLogger, natsPub)
	if err := analyticsConsumer.Start(context.Background()); err != nil {
		log.Printf("[WARN] Failed to start analytics consumer: %v", err)
	}

	// 5. Controllers
	return &Container{
		SessionController:     controller.NewSessionController(sessionService, artService, inspirationService, poemService),
		PersistenceController: controller.NewPersistenceController(persistenceService),
		AnalyticsConsumer:     analyticsConsumer,
		Logger:                sysLogger,
		NatsPub:               natsPub,
	}
}
