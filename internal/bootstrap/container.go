package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"notes-repository-be/internal/catalog"
	"notes-repository-be/internal/config"
	"notes-repository-be/internal/controller"
	"notes-repository-be/internal/handler"
	"notes-repository-be/internal/ingestion"
	"notes-repository-be/internal/pkg/logger"
	"notes-repository-be/internal/pkg/serverutils"
	"notes-repository-be/internal/repository/cache"
	"notes-repository-be/internal/repository/memory"
	"notes-repository-be/internal/repository/unitofwork"
	"notes-repository-be/internal/service"
	"notes-repository-be/internal/session"
	"notes-repository-be/internal/websocket"
	"notes-repository-be/pkg/events"
	pktNats "notes-repository-be/pkg/nats"
	"notes-repository-be/pkg/ocr"
	"notes-repository-be/pkg/ocr/ocrspace"
	"notes-repository-be/pkg/ocr/proxyclient"
	"notes-repository-be/pkg/ocr/tesseract"
	"notes-repository-be/pkg/ocr/vision"
	"notes-repository-be/pkg/storage"
	"notes-repository-be/pkg/storage/gcs"
	"notes-repository-be/pkg/storage/local"
	"notes-repository-be/pkg/storage/s3"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	CatalogController     controller.ICatalogController
	SubjectController     controller.ISubjectController
	NoteController        controller.INoteController
	ExtractTextController controller.IExtractTextController
	RealtimeHandler       *handler.RealtimeHandler

	// JwtMiddleware guards every signed-in route.
	JwtMiddleware fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	WebSocketHub *websocket.Hub
	Logger       logger.ILogger

	closers []func() error
}

var newEventBus = func() *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
}

func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	pubSub := newEventBus()
	c.closers = append(c.closers, pubSub.Close)

	// 3. Infrastructure
	rdb := newRedisClient(ctx, cfg.App.RedisURL)
	if rdb != nil {
		c.closers = append(c.closers, rdb.Close)
	}

	var eventPublisher events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}

	objects, err := newObjectStore(ctx, cfg.Storage)
	if err != nil {
		c.Close()
		return nil, err
	}
	if closer, ok := objects.(io.Closer); ok {
		c.closers = append(c.closers, closer.Close)
	}

	engine, err := newOCREngine(ctx, cfg.OCR)
	if err != nil {
		c.Close()
		return nil, err
	}
	if closer, ok := engine.(io.Closer); ok {
		c.closers = append(c.closers, closer.Close)
	}
	log.Printf("[INFO] Using OCR engine: %s", engine.Name())

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/realtime.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()
	c.closers = append(c.closers, func() error { wsHub.Stop(); return nil })
	c.WebSocketHub = wsHub

	// 4. Sessions
	sessions := session.NewManager(
		uowFactory,
		newSessionRegistry(cfg.Auth, rdb),
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL,
		sysLogger,
	)
	sessions.Subscribe(service.NewSessionEventListener(eventPublisher, wsHub, sysLogger))
	c.JwtMiddleware = serverutils.JwtMiddleware(sessions)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.CatalogTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.App.CatalogTopic,
		wsHub,
		eventPublisher,
		sysLogger,
	)

	stores := ingestion.NewRepositoryStores(uowFactory)
	catalogService := service.NewCatalogService(
		catalog.NewLoader(catalog.NewRepositoryReader(uowFactory), sysLogger),
	)
	subjectService := service.NewSubjectService(uowFactory, publisherService, sysLogger)
	noteService := service.NewNoteService(
		stores,
		stores,
		objects,
		proxyclient.New(cfg.OCR.ProxyURL, cfg.OCR.ProxyKey, cfg.OCR.Timeout),
		publisherService,
		catalogService,
		sysLogger,
	)
	authService := service.NewAuthService(sessions)
	extractTextService := service.NewExtractTextService(engine, sysLogger)

	// 6. Controllers
	c.AuthController = controller.NewAuthController(authService)
	c.CatalogController = controller.NewCatalogController(catalogService)
	c.SubjectController = controller.NewSubjectController(subjectService)
	c.NoteController = controller.NewNoteController(noteService)
	c.ExtractTextController = controller.NewExtractTextController(extractTextService, cfg.OCR.ProxyKey)
	c.RealtimeHandler = handler.NewRealtimeHandler(sessions, wsHub, wsLogger)

	return c, nil
}

// Close releases infrastructure in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			log.Printf("[WARN] Shutdown step failed: %v", err)
		}
	}
	_ = c.Logger.Sync()
}

// newRedisClient returns nil when Redis is not configured or not reachable;
// callers fall back to single-instance behaviour.
func newRedisClient(ctx context.Context, url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb.Close()
		return nil
	}
	return rdb
}

func newSessionRegistry(cfg config.AuthConfig, rdb *redis.Client) session.Registry {
	if cfg.SessionBackend == "redis" {
		if rdb != nil {
			return cache.NewRedisSessionRepository(rdb, cfg.SessionKeySpace)
		}
		log.Printf("[WARN] SESSION_BACKEND=redis but Redis is unavailable, using in-memory sessions")
	}
	return memory.NewSessionRepository()
}

func newObjectStore(ctx context.Context, cfg config.StorageConfig) (storage.ObjectStore, error) {
	switch cfg.Backend {
	case "", "local":
		return local.New(cfg.LocalDir, cfg.Bucket, cfg.PublicBaseURL), nil
	case "s3":
		store, err := s3.New(ctx, cfg.S3Region, cfg.Bucket, cfg.S3Prefix, publicOverride(cfg))
		if err != nil {
			return nil, err
		}
		return store, nil
	case "gcs":
		store, err := gcs.New(ctx, cfg.Bucket, publicOverride(cfg))
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Backend)
	}
}

// publicOverride drops the local default so cloud buckets use their own URLs
// unless STORAGE_PUBLIC_BASE_URL was set explicitly.
func publicOverride(cfg config.StorageConfig) string {
	if cfg.PublicBaseURLExplicit {
		return cfg.PublicBaseURL
	}
	return ""
}

func newOCREngine(ctx context.Context, cfg config.OCRConfig) (ocr.Engine, error) {
	switch cfg.Engine {
	case "", "ocrspace":
		return ocrspace.New(ocrspace.Config{
			URL:       cfg.ProviderURL,
			APIKey:    cfg.APIKey,
			Language:  cfg.Language,
			OCREngine: cfg.EngineVariant,
			Timeout:   cfg.Timeout,
		}), nil
	case "vision":
		engine, err := vision.New(ctx, cfg.VisionLanguage)
		if err != nil {
			return nil, err
		}
		return engine, nil
	case "tesseract":
		engine, err := tesseract.New(cfg.Language, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return engine, nil
	default:
		return nil, fmt.Errorf("unknown OCR_ENGINE %q", cfg.Engine)
	}
}
