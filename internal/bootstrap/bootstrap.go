package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/studentsvc/internal/app/controllers"
	appMigrations "github.com/yigit/studentsvc/internal/app/migrations"
	appRepos "github.com/yigit/studentsvc/internal/app/repositories"
	appRoutes "github.com/yigit/studentsvc/internal/app/routes"
	appServices "github.com/yigit/studentsvc/internal/app/services"
	"github.com/yigit/studentsvc/internal/config"
	"github.com/yigit/studentsvc/internal/db"
	appMiddleware "github.com/yigit/studentsvc/internal/middleware"
	"github.com/yigit/studentsvc/internal/pkg/logger"
)

// Database is what the application needs from the connection pool.
// *pgxpool.Pool satisfies it, and so does pgxmock's pool.
type Database interface {
	appRepos.Querier
	appMigrations.Beginner
	appControllers.Pinger
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService    appServices.StudentService
	StudentController *appControllers.StudentController
	SystemController  *appControllers.SystemController
	Repos             *appRepos.Repositories
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and, when enabled,
// creates the schema.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().
		Str("host", cfg.Database.Host).
		Str("dbname", cfg.Database.DBName).
		Msg("Establishing database connection...")

	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if !cfg.Database.AutoMigrate {
		lgr.Info().Msg("Schema bootstrap disabled, skipping")
		return database, nil
	}

	if err := RunMigrations(ctx, database.Pool, lgr); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// RunMigrations applies the embedded schema files.
func RunMigrations(ctx context.Context, database appMigrations.Beginner, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database, lgr).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(database Database, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, lgr)

	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.SystemController = appControllers.NewSystemController(database)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	case cfg.Server.Mode == "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterJSONFieldNames()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.StudentController, deps.SystemController)

	return router
}
