package app

import (
	"context"
	"edutrack_backend/internal/config"
	"edutrack_backend/internal/controller"
	"edutrack_backend/internal/repository"
	"edutrack_backend/internal/repository/inmem"
	"edutrack_backend/internal/service"
	"edutrack_backend/internal/util"
	"edutrack_backend/pkg/configwatcher"
	"edutrack_backend/pkg/database"
	"edutrack_backend/pkg/logger"
	"edutrack_backend/pkg/monitoring"
	"edutrack_backend/pkg/security"
	"edutrack_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	ConfigPath      string
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	quiz     service.QuizStore
	attempt  service.AttemptStore
	resource service.ResourceStore
}

type services struct {
	storage   *service.StorageService
	quiz      *service.QuizService
	attempt   *service.AttemptService
	analytics *service.AnalyticsService
	resource  *service.ResourceService
	ai        *service.AIService
}

type controllers struct {
	quiz      *controller.QuizController
	attempt   *controller.AttemptController
	analytics *controller.AnalyticsController
	resource  *controller.ResourceController
	ai        *controller.AIController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// initRepositories uses the in-memory store when db is nil.
func (a *App) initRepositories(db *gorm.DB) *repositories {
	if db == nil {
		mem := inmem.Open()
		return &repositories{
			quiz:     inmem.NewQuizRepository(mem),
			attempt:  inmem.NewQuizAttemptRepository(mem),
			resource: inmem.NewResourceRepository(mem),
		}
	}
	return &repositories{
		quiz:     repository.NewQuizRepository(db),
		attempt:  repository.NewQuizAttemptRepository(db),
		resource: repository.NewResourceRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	cache := service.NewNoopCatalogCache()
	if rdb != nil {
		cache = service.NewRedisCatalogCache(rdb, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
	}

	s := &services{}
	s.storage = service.NewStorageService(cfg)
	s.quiz = service.NewQuizService(repos.quiz, repos.attempt, cache, cfg)
	s.attempt = service.NewAttemptService(repos.quiz, repos.attempt, cache)
	s.analytics = service.NewAnalyticsService(repos.quiz, repos.attempt, cfg)
	s.resource = service.NewResourceService(repos.resource, s.storage)
	s.ai = service.NewAIService(cfg.AI)

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.ai.UpdateConfig(newCfg.AI)
	})
	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		quiz:      controller.NewQuizController(s.quiz),
		attempt:   controller.NewAttemptController(s.attempt),
		analytics: controller.NewAnalyticsController(s.analytics),
		resource:  controller.NewResourceController(s.resource),
		ai:        controller.NewAIController(s.ai),
		health:    controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if a.tracerProvider != nil {
		router.Use(tracing.GinMiddleware(a.tracerProvider))
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")
	gin.SetMode(cfg.Server.Mode)

	app := &App{
		Config:     cfg,
		ConfigPath: filepath.Join("configs", "config.yaml"),
	}

	if cfg.Database.Driver != util.DriverMemory {
		db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
		if err != nil {
			logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		}
		if cfg.ForceMigrate {
			if err := database.Migrate(db); err != nil {
				logger.Log.Fatal("Failed to migrate database", zap.Error(err))
			}
		}
		app.DB = db
	} else {
		logger.Log.Warn("Using in-memory store, data is lost on restart")
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Error("Failed to initialize redis, catalog cache disabled", zap.Error(err))
		} else {
			app.Redis = rdb
		}
	}

	repos := app.initRepositories(app.DB)
	app.services = app.initServices(repos, cfg, app.Redis)
	controllers := app.initControllers(app.services)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("edutrack", cfg.Tracing.CollectorEndpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// watchConfig fans reloaded configuration out to the registered callbacks.
func (a *App) watchConfig(ctx context.Context) {
	err := configwatcher.WatchConfig(ctx, a.ConfigPath, func(cfg *config.Config) {
		for _, cb := range a.configCallbacks {
			cb(cfg)
		}
	})
	if err != nil {
		logger.Log.Warn("Config hot reload disabled", zap.Error(err))
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go a.watchConfig(watchCtx)

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT/SIGTERM, then give in-flight requests 5 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
