// @title Edu Quiz API
// @version 1.0
// @description API for generating, repairing and grading classroom quizzes, tracking student progress and planning curriculum modules.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "edu-quiz/cmd/api/docs"
	"edu-quiz/internal/adapter"
	"edu-quiz/internal/adapter/quizgen"
	"edu-quiz/internal/cache"
	"edu-quiz/internal/config"
	"edu-quiz/internal/database"
	"edu-quiz/internal/domain"
	"edu-quiz/internal/handler"
	"edu-quiz/internal/llm"
	"edu-quiz/internal/logger"
	"edu-quiz/internal/middleware"
	"edu-quiz/internal/repository"
	"edu-quiz/internal/service"
	"edu-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var generationCache domain.Cache = adapter.NoopCache{}
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, generation cache disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		generationCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM provider", zap.Error(err))
	}
	appLogger.Info("LLM provider initialized", zap.String("provider", cfg.LLM.Provider), zap.String("model", provider.ModelID()))

	generator := quizgen.NewGenerator(provider, generationCache, quizgen.Config{
		Locale:       cfg.Quiz.Locale,
		DefaultCount: cfg.Quiz.DefaultQuestionCount,
		Timeout:      cfg.LLM.Timeout,
		CacheTTL:     cfg.Quiz.GenerationCacheTTL,
	})

	// Repositories
	quizRepo := repository.NewQuizDatabaseAdapter(db)
	studentRepo := repository.NewStudentDatabaseAdapter(db)
	curriculumRepo := repository.NewCurriculumDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Services
	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	studentService := service.NewStudentService(studentRepo, txManager)
	quizService := service.NewQuizService(quizRepo, studentRepo, studentService, generator, txManager, cfg.Quiz)
	curriculumService := service.NewCurriculumService(curriculumRepo, generator, txManager)
	dashboardService := service.NewDashboardService(quizRepo, studentRepo, curriculumRepo)

	validator := validation.NewValidator()
	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authService, validator),
		Quiz:       handler.NewQuizHandler(quizService, validator),
		Student:    handler.NewStudentHandler(studentService, validator),
		Curriculum: handler.NewCurriculumHandler(curriculumService, validator),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		Health: handler.NewHealthHandler(map[string]handler.HealthChecker{
			"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
			"cache":    generationCache.Ping,
		}),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	handler.RegisterRoutes(app, handlers, authService)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
