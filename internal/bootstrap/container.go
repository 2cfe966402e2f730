package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/Peterleoo/Livora/internal/config"
	"github.com/Peterleoo/Livora/internal/controller"
	"github.com/Peterleoo/Livora/internal/pkg/logger"
	"github.com/Peterleoo/Livora/internal/repository/memory"
	"github.com/Peterleoo/Livora/internal/service"
	"github.com/Peterleoo/Livora/pkg/catalog"
	"github.com/Peterleoo/Livora/pkg/completion"
	"github.com/Peterleoo/Livora/pkg/kv"
	"github.com/Peterleoo/Livora/pkg/profile"
	"github.com/Peterleoo/Livora/pkg/session"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	SessionController   controller.ISessionController
	ProfileController   controller.IProfileController

	// Background Services (Exposed for main.go to run)
	SigningConsumerService service.ISigningConsumerService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Durable Storage
	var storage kv.Store
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		storage = kv.NewRedisStore(rdb)
		log.Printf("[INFO] Using Storage: REDIS")
	} else {
		storage = kv.NewMemoryStore()
		log.Printf("[INFO] Using Storage: IN-MEMORY (no REDIS_URL configured)")
	}

	// 4. Domain Facades
	listings := catalog.New(catalog.Seed())
	sessionStore := session.NewStore(storage)
	profileStore := profile.NewStore(storage, cfg.Assistant.DefaultCity)
	conversationRepo := memory.NewConversationRepository()

	// Completion Gateway with its own request log
	llmLogger := logger.NewIsolatedLogger("logs/completion.log")
	provider := completion.NewOpenAIProvider(
		cfg.Ai.CompletionAPIKey,
		cfg.Ai.CompletionBaseURL,
		cfg.Ai.CompletionModel,
		time.Duration(cfg.Ai.TimeoutSeconds)*time.Second,
	)
	gateway := completion.NewGateway(provider, completion.DefaultRetryPolicy(), llmLogger)
	log.Printf("[INFO] Using Completion Model: %s", cfg.Ai.CompletionModel)

	// 5. Services
	assistantService := service.NewAssistantService(
		conversationRepo,
		sessionStore,
		profileStore,
		listings,
		gateway,
		sysLogger,
	)
	sessionService := service.NewSessionService(sessionStore)
	profileService := service.NewProfileService(profileStore)
	signingService := service.NewSigningService(pubSub, listings)
	signingConsumerService := service.NewSigningConsumerService(
		pubSub,
		conversationRepo,
		sessionStore,
		listings,
		sysLogger,
	)

	// 6. Controllers
	assistantController := controller.NewAssistantController(assistantService, signingService)
	sessionController := controller.NewSessionController(sessionService)
	profileController := controller.NewProfileController(profileService)

	return &Container{
		AssistantController:    assistantController,
		SessionController:      sessionController,
		ProfileController:      profileController,
		SigningConsumerService: signingConsumerService,
	}
}
