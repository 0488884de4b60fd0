package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/yigit/learnhub/internal/app/auth"
	appControllers "github.com/yigit/learnhub/internal/app/controllers"
	appMigrations "github.com/yigit/learnhub/internal/app/migrations"
	"github.com/yigit/learnhub/internal/app/models/dto"
	appRepos "github.com/yigit/learnhub/internal/app/repositories"
	"github.com/yigit/learnhub/internal/app/repositories/memory"
	appRoutes "github.com/yigit/learnhub/internal/app/routes"
	appServices "github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/config"
	"github.com/yigit/learnhub/internal/db"
	appMiddleware "github.com/yigit/learnhub/internal/middleware"
	pkgAuth "github.com/yigit/learnhub/internal/pkg/auth"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
	"github.com/yigit/learnhub/internal/pkg/logger"
	"github.com/yigit/learnhub/internal/pkg/websocket"
	"github.com/yigit/learnhub/internal/seed"
)

// Storage is the selected persistence backend
type Storage struct {
	Store appRepos.Store
	DB    *db.PostgresDB // nil for the memory driver
}

// Ping reports whether the backend can serve requests
func (s *Storage) Ping(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Ping(ctx)
}

// Close releases the database pool, if any
func (s *Storage) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Storage     *Storage
	Objects     filestorage.ObjectStorage // nil when storage.driver is none
	Local       *filestorage.LocalStorage // set only for the local driver
	Hub         *websocket.Hub
	JWTService  *pkgAuth.JWTService
	Controllers *appRoutes.Controllers

	AuthMiddleware *appMiddleware.AuthMiddleware
	Metrics        *appMiddleware.Metrics
	Registry       *prometheus.Registry
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := config.GetEnv("CONFIG_PATH", ""); p != "" {
		configPath = p
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  prettyLog,
		Service: "learnhub",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured store. For postgres it connects and
// applies the migrations directory.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Storage, error) {
	if cfg.Database.Driver == "memory" {
		lgr.Warn().Msg("Using in-memory store, data is lost on restart")
		return &Storage{Store: memory.NewStore()}, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return &Storage{Store: appRepos.NewPostgresStore(database), DB: database}, nil
}

// setupObjectStorage builds the media backend named by storage.driver
func setupObjectStorage(cfg *config.Config) (filestorage.ObjectStorage, *filestorage.LocalStorage, error) {
	switch cfg.Storage.Driver {
	case "local":
		local, err := filestorage.NewLocalStorage(cfg.Storage.Path, cfg.UploadsURL(), cfg.Storage.SigningKey)
		if err != nil {
			return nil, nil, err
		}
		return local, local, nil
	case "oss":
		oss, err := filestorage.NewOSSStorage(filestorage.OSSConfig{
			Endpoint:        cfg.Storage.OSS.Endpoint,
			AccessKeyID:     cfg.Storage.OSS.AccessKeyID,
			AccessKeySecret: cfg.Storage.OSS.AccessKeySecret,
			Bucket:          cfg.Storage.OSS.Bucket,
			Prefix:          cfg.Storage.OSS.Prefix,
			PublicBaseURL:   cfg.Storage.OSS.PublicBaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return oss, nil, nil
	default:
		return nil, nil, nil
	}
}

// BuildDependencies initializes storage backends, services and controllers.
func BuildDependencies(cfg *config.Config, storage *Storage, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Storage: storage, Logger: lgr}

	objects, local, err := setupObjectStorage(cfg)
	if err != nil {
		lgr.Error().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.Objects, deps.Local = objects, local
	if objects == nil {
		lgr.Warn().Msg("Object storage disabled, presigned uploads are unavailable")
	}

	deps.Hub = websocket.NewHub(lgr)
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Auth.JWTSecret,
		TokenIssuer: cfg.Auth.Issuer,
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, cfg.Auth.Enabled)
	if !cfg.Auth.Enabled {
		lgr.Warn().Msg("Authentication disabled, every request acts as admin")
	}

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Metrics = appMiddleware.NewMetrics(deps.Registry)

	store := storage.Store
	courseService := appServices.NewCourseService(store, objects, deps.Hub)
	moduleService := appServices.NewModuleService(store, objects, deps.Hub)
	lessonService := appServices.NewLessonService(store, objects, deps.Hub)
	quizService := appServices.NewQuizService(store, deps.Hub)
	objectiveService := appServices.NewObjectiveService(store)

	deps.Controllers = &appRoutes.Controllers{
		Course:    appControllers.NewCourseController(courseService, appServices.NewFeedbackService(store)),
		Structure: appControllers.NewStructureController(appServices.NewStructureService(store, deps.Hub)),
		Module:    appControllers.NewModuleController(moduleService, lessonService),
		Media:     appControllers.NewMediaController(appServices.NewMediaService(store, objects, cfg.PresignTTL(), deps.Hub), local),
		Quiz:      appControllers.NewQuizController(quizService),
		Objective: appControllers.NewObjectiveController(objectiveService),
		Websocket: websocket.NewHandler(deps.Hub, store.Courses(), lgr),
		Authz:     appAuth.NewAuthorizationService(store.Courses()),
	}

	if cfg.Database.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := seed.CreateDemoCourse(ctx, seed.Services{
			Courses:    courseService,
			Modules:    moduleService,
			Lessons:    lessonService,
			Quizzes:    quizService,
			Objectives: objectiveService,
		}, lgr)
		if err != nil {
			// Seeding is best effort
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(),
		deps.Metrics.Handler(),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	if deps.Local != nil {
		appRoutes.SetupUploads(router, deps.Controllers.Media, deps.Local.Root())
		lgr.Info().Str("path", deps.Local.Root()).Msg("Upload endpoint and static file serving configured")
	}

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := deps.Storage.Ping(ctx); err != nil {
			lgr.Warn().Err(err).Msg("Health check failed")
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(dto.ErrorCodeExternalServiceError, "Database unavailable"))
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok", "realtimeClients": deps.Hub.TotalClients()}, ""))
	})

	return router
}
