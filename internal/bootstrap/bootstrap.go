package bootstrap

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/devconnect/backend/docs" // generated swagger docs
	appControllers "github.com/devconnect/backend/internal/app/controllers"
	appRepos "github.com/devconnect/backend/internal/app/repositories"
	appRoutes "github.com/devconnect/backend/internal/app/routes"
	appServices "github.com/devconnect/backend/internal/app/services"
	"github.com/devconnect/backend/internal/config"
	"github.com/devconnect/backend/internal/db"
	appMiddleware "github.com/devconnect/backend/internal/middleware"
	pkgAuth "github.com/devconnect/backend/internal/pkg/auth"
	"github.com/devconnect/backend/internal/pkg/helpers"
	"github.com/devconnect/backend/internal/pkg/logger"
	"github.com/devconnect/backend/internal/pkg/realtime"
	"github.com/devconnect/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services               *appServices.Services
	ProjectController      *appControllers.ProjectController
	MessageController      *appControllers.MessageController
	NotificationController *appControllers.NotificationController
	UserController         *appControllers.UserController
	AdminController        *appControllers.AdminController
	RealtimeHandler        *realtime.Handler
	Hub                    *realtime.Hub
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the MongoDB connection and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.MongoDB, error) {
	lgr.Info().Str("database", cfg.Mongo.Database).Msg("Establishing database connection...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoTimeout())
	defer cancel()

	database, err := db.NewMongoDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if err := seed.CreateDefaultData(context.Background(), database.Database, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services, controllers and the
// realtime hub. The hub's event loop is started here.
func BuildDependencies(cfg *config.Config, database *db.MongoDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Database)

	deps.Hub = realtime.NewHub(lgr)
	go deps.Hub.Run()

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.Hub, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.ProjectController = appControllers.NewProjectController(deps.Services.Project)
	deps.MessageController = appControllers.NewMessageController(deps.Services.Message)
	deps.NotificationController = appControllers.NewNotificationController(deps.Services.Notification)
	deps.UserController = appControllers.NewUserController(deps.Services.User)
	deps.AdminController = appControllers.NewAdminController(deps.Services.Admin)
	deps.RealtimeHandler = realtime.NewHandler(deps.Hub, lgr)

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

	router := gin.Default()

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.ProjectController,
		deps.MessageController,
		deps.NotificationController,
		deps.UserController,
		deps.AdminController,
		deps.RealtimeHandler,
		deps.AuthMiddleware,
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
