package bootstrap

import (
	"context"
	"log"

	"github.com/byndl-mvp/PoC-sub002/internal/config"
	"github.com/byndl-mvp/PoC-sub002/internal/controller"
	"github.com/byndl-mvp/PoC-sub002/internal/pkg/logger"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/contract"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/memory"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/redisstore"
	"github.com/byndl-mvp/PoC-sub002/internal/repository/unitofwork"
	"github.com/byndl-mvp/PoC-sub002/internal/service"
	"github.com/byndl-mvp/PoC-sub002/pkg/catalog"
	"github.com/byndl-mvp/PoC-sub002/pkg/docevents"
	"github.com/byndl-mvp/PoC-sub002/pkg/llm/factory"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/pricing"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/summary"
	"github.com/byndl-mvp/PoC-sub002/pkg/lv/validate"
	"github.com/byndl-mvp/PoC-sub002/pkg/session"

	pkgNats "github.com/byndl-mvp/PoC-sub002/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

// documentTopicName is the in-process topic between generation and the
// audit consumer.
const documentTopicName = "SPEC_DOCUMENT_GENERATED"

type Container struct {
	// Controllers
	SessionController       controller.ISessionController
	SpecificationController controller.ISpecificationController
	CatalogController       controller.ICatalogController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	EventLogService service.IEventLogService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Session Storage
	var sessionRepo contract.SessionRepository
	if cfg.Session.Store == "redis" {
		redisRepo, err := redisstore.NewSessionRepository(cfg.App.RedisURL, cfg.Session.TTL)
		if err != nil {
			log.Printf("[WARN] Redis session store unavailable, falling back to memory: %v", err)
			sessionRepo = memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.SweepInterval)
		} else {
			sessionRepo = redisRepo
		}
	} else {
		sessionRepo = memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.SweepInterval)
	}

	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	eventPublisher := docevents.NewNatsPublisher(natsPub, sysLogger)

	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Catalog: snapshot first, rebuild from raw resources when empty.
	built, err := catalog.Load(cfg.Catalog.SnapshotPath)
	if err != nil {
		log.Printf("[WARN] Failed to load catalog snapshot: %v", err)
		built = catalog.Catalog{}
	}
	builder := catalog.NewBuilder(cfg.Catalog.ResourceDir, sysLogger)
	if len(built) == 0 {
		if fresh, err := builder.Build(); err != nil {
			log.Printf("[WARN] Catalog build failed, running with fallback pricing: %v", err)
		} else {
			built = fresh
			if err := catalog.Save(built, cfg.Catalog.SnapshotPath); err != nil {
				log.Printf("[WARN] Failed to persist catalog snapshot: %v", err)
			}
		}
	}
	holder := catalog.NewHolder(built)

	// Pricing & Validation
	fallback := pricing.FallbackPrice{
		EP:    cfg.Pricing.FallbackEP,
		MinEP: cfg.Pricing.FallbackMinEP,
		MaxEP: cfg.Pricing.FallbackMaxEP,
	}
	resolver := pricing.NewResolver(pricing.NewWordOverlapScorer(), cfg.Pricing.MatchThreshold, fallback)
	validateCfg := validate.DefaultConfig()
	pipeline := validate.NewPipeline(validateCfg, sysLogger)
	calculator := summary.NewCalculator(cfg.Pricing.RiskBufferMin, cfg.Pricing.RiskBufferMax)

	detector := session.NewDetector(llmProvider, cfg.Pricing.GenerationTimeout, sysLogger)

	batchCfg := session.DefaultBatchConfig()
	batchCfg.ComplexFirst = cfg.Session.BatchComplexFirst
	batchCfg.ComplexNext = cfg.Session.BatchComplexNext
	batchCfg.DefaultFirst = cfg.Session.BatchDefaultFirst
	batchCfg.DefaultNext = cfg.Session.BatchDefaultNext

	// 3. Services
	publisherService := service.NewPublisherService(documentTopicName, pubSub)
	consumerService := service.NewConsumerService(pubSub, documentTopicName, uowFactory, eventPublisher)
	eventLogService := service.NewEventLogService(natsSub, sysLogger)

	sessionService := service.NewSessionService(
		sessionRepo,
		detector,
		batchCfg,
		eventPublisher,
		sysLogger,
	)
	specificationService := service.NewSpecificationService(
		uowFactory,
		sessionRepo,
		holder,
		llmProvider,
		resolver,
		pipeline,
		validateCfg,
		calculator,
		fallback,
		cfg.Pricing.GenerationTimeout,
		publisherService,
		sysLogger,
	)
	catalogService := service.NewCatalogService(
		holder,
		builder,
		cfg.Catalog.SnapshotPath,
		eventPublisher,
		sysLogger,
	)

	// 4. Controllers
	return &Container{
		SessionController:       controller.NewSessionController(sessionService),
		SpecificationController: controller.NewSpecificationController(specificationService),
		CatalogController:       controller.NewCatalogController(catalogService),

		ConsumerService: consumerService,
		EventLogService: eventLogService,
		Logger:          sysLogger,
	}
}

// Shutdown flushes buffered log output.
func (c *Container) Shutdown(ctx context.Context) {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
