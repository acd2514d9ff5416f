package bootstrap

import (
	"context"
	"log"
	"math/rand"
	"time"

	"livelabs-be/internal/config"
	"livelabs-be/internal/controller"
	"livelabs-be/internal/pkg/logger"
	"livelabs-be/internal/pkg/mailer"
	"livelabs-be/internal/pkg/serverutils"
	"livelabs-be/internal/repository/artifact"
	"livelabs-be/internal/repository/contract"
	"livelabs-be/internal/repository/memory"
	"livelabs-be/internal/repository/redisstore"
	"livelabs-be/internal/repository/unitofwork"
	"livelabs-be/internal/service"

	pktNats "livelabs-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const notifyTopic = "run-notifications"

type Container struct {
	// Controllers
	SiteController        controller.ISiteController
	ParticipantController controller.IParticipantController
	AdminController       controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	LifecycleService service.ILifecycleService
	ExportService    service.IExportService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis backs the per-site session id counter; the in-process allocator
	// is the fallback when Redis is unreachable.
	var allocator contract.SessionAllocator
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis, using memory session allocator: %v", err)
		allocator = memory.NewSessionAllocator()
	} else {
		allocator = redisstore.NewSessionAllocator(rdb)
	}

	artifactStore, err := artifact.NewFileStore(cfg.App.ExportDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to create export dir: %v", err)
	}

	// 3. Services
	publisherService := service.NewPublisherService(notifyTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		notifyTopic,
		uowFactory,
		emailService,
		cfg.Challenge,
	)

	queryService := service.NewQueryService(uowFactory)
	runService := service.NewRunService(uowFactory, cfg.Challenge, natsPub)
	feedbackService := service.NewFeedbackService(uowFactory, cfg.Challenge)
	servingService := service.NewServingService(
		uowFactory,
		allocator,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
	lifecycleService := service.NewLifecycleService(
		uowFactory,
		cfg.Challenge,
		publisherService,
		natsPub,
		sysLogger,
	)
	exportService := service.NewExportService(uowFactory, artifactStore, cfg.Challenge)
	adminService := service.NewAdminService(uowFactory)

	// 4. Auth middleware (repo-backed key lookups)
	uow := uowFactory.NewUnitOfWork(context.Background())
	siteAuth := serverutils.SiteAuthMiddleware(uow.SiteRepository())
	participantAuth := serverutils.ParticipantAuthMiddleware(uow.ParticipantRepository())

	// 5. Controllers
	siteController := controller.NewSiteController(queryService, servingService, feedbackService, siteAuth)
	participantController := controller.NewParticipantController(
		queryService, runService, lifecycleService, feedbackService, participantAuth)
	adminController := controller.NewAdminController(adminService, lifecycleService, exportService)

	return &Container{
		SiteController:        siteController,
		ParticipantController: participantController,
		AdminController:       adminController,
		ConsumerService:       consumerService,
		LifecycleService:      lifecycleService,
		ExportService:         exportService,
		Logger:                sysLogger,
	}
}
