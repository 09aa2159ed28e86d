package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/eminekt/campuslib/internal/app/controllers"
	appMigrations "github.com/eminekt/campuslib/internal/app/migrations"
	appRepos "github.com/eminekt/campuslib/internal/app/repositories"
	appRoutes "github.com/eminekt/campuslib/internal/app/routes"
	appServices "github.com/eminekt/campuslib/internal/app/services"
	"github.com/eminekt/campuslib/internal/config"
	"github.com/eminekt/campuslib/internal/db"
	appMiddleware "github.com/eminekt/campuslib/internal/middleware"
	"github.com/eminekt/campuslib/internal/pkg/helpers"
	"github.com/eminekt/campuslib/internal/pkg/logger"
	"github.com/eminekt/campuslib/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	BookService       appServices.BookService
	StudentService    appServices.StudentService
	IssueService      appServices.IssueService
	ReportService     appServices.ReportService
	ChatService       appServices.ChatService
	BookController    *appControllers.BookController
	StudentController *appControllers.StudentController
	IssueController   *appControllers.IssueController
	ChatController    *appControllers.ChatController
	Repos             *appRepos.Repositories
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// optionally seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Pool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Seed default data (after migrations)
	if cfg.Seed.Enabled {
		repos := appRepos.NewRepositories(database.Pool)
		if err := seed.CreateDefaultData(context.Background(), database, repos); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	// Initialize services
	deps.BookService = appServices.NewBookService(deps.Repos.BookRepository)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository)
	deps.IssueService = appServices.NewIssueService(
		deps.Repos.BookRepository,
		deps.Repos.StudentRepository,
		deps.Repos.IssueRepository,
		database,
	)
	deps.ReportService = appServices.NewReportService(deps.Repos.ReportRepository)
	deps.ChatService = appServices.NewChatService(deps.ReportService, lgr)

	// Initialize controllers
	streamDelay := helpers.ParseDuration(cfg.Chat.StreamDelay, 10*time.Millisecond)
	deps.BookController = appControllers.NewBookController(deps.BookService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.IssueController = appControllers.NewIssueController(deps.IssueService)
	deps.ChatController = appControllers.NewChatController(deps.ChatService, streamDelay)

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
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS())

	// Setup Swagger
	appRoutes.SetupSwagger(router)

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.BookController,
		deps.StudentController,
		deps.IssueController,
		deps.ChatController,
	)

	return router
}
