package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jeeprep_backend/internal/config"
	"jeeprep_backend/internal/controller"
	"jeeprep_backend/internal/repository"
	"jeeprep_backend/internal/service"
	"jeeprep_backend/pkg/database"
	"jeeprep_backend/pkg/logger"
	"jeeprep_backend/pkg/monitoring"
	"jeeprep_backend/pkg/security"
	"jeeprep_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	question *repository.QuestionRepository
	attempt  *repository.AttemptRepository
}

type services struct {
	ai          *service.AIService
	auth        *service.AuthService
	user        *service.UserService
	question    *service.QuestionService
	leaderboard *service.LeaderboardService
	practice    *service.PracticeService
	admin       *service.AdminService
	assistant   *service.AssistantService
	dashboard   *service.DashboardService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	practice    *controller.PracticeController
	leaderboard *controller.LeaderboardController
	dashboard   *controller.DashboardController
	assistant   *controller.AssistantController
	admin       *controller.AdminController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig swaps the runtime-tunable config fields in place. Called
// by the config watcher when the file on disk changes.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config.AI = cfg.AI
	a.Config.CORS = cfg.CORS
	a.Config.RateLimit = cfg.RateLimit

	for _, callback := range a.configCallbacks {
		callback(cfg)
	}

	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		question: repository.NewQuestionRepository(db),
		attempt:  repository.NewAttemptRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, db)
	s.question = service.NewQuestionService(repos.question)
	s.leaderboard = service.NewLeaderboardService(repos.user, rdb)
	s.practice = service.NewPracticeService(repos.user, repos.question, repos.attempt, s.leaderboard, rdb, db)
	s.admin = service.NewAdminService(repos.question, s.ai)
	s.assistant = service.NewAssistantService(s.ai, repos.question)
	s.dashboard = service.NewDashboardService(repos.user, repos.attempt, repos.question)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		practice:    controller.NewPracticeController(s.question, s.practice),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		dashboard:   controller.NewDashboardController(s.dashboard),
		assistant:   controller.NewAssistantController(s.assistant, s.auth),
		admin:       controller.NewAdminController(s.admin),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == gin.ReleaseMode || cfg.Server.Mode == gin.TestMode {
		gin.SetMode(cfg.Server.Mode)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
			log.Fatalf("Failed to migrate database: %v", err)
		}
		logger.Log.Info("Database migration completed")
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("jeeprep-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
