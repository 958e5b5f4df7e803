package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"study-helper/internal/adapter"
	"study-helper/internal/cache"
	"study-helper/internal/config"
	"study-helper/internal/database"
	"study-helper/internal/domain"
	"study-helper/internal/handler"
	"study-helper/internal/logger"
	"study-helper/internal/middleware"
	"study-helper/internal/repository"
	"study-helper/internal/service"
	"study-helper/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Redis is optional: without it the profile endpoint reads straight
	// from the database on every request.
	var cacheAdapter domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, profile caching disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Connected to Redis", zap.String("address", cfg.Redis.Address))
	}

	userRepository := repository.NewSQLXUserRepository(db)
	problemRepository := repository.NewSQLXProblemRepository(db)
	masteryRepository := repository.NewSQLXMasteryRepository(db)

	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	userService := service.NewUserService(userRepository)
	problemService := service.NewProblemService(problemRepository)
	profileService := service.NewProfileService(masteryRepository, cacheAdapter, cfg.Redis.ProfileCacheTTL)
	solveService := service.NewSolveService(problemService)

	validator := validation.NewValidator()

	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService, profileService, validator)
	problemHandler := handler.NewProblemHandler(problemService, validator)
	solveHandler := handler.NewSolveHandler(solveService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database unreachable")
		}
		redisStatus := "disabled"
		if cacheAdapter != nil {
			redisStatus = "ok"
			if err := cacheAdapter.Ping(c.Context()); err != nil {
				redisStatus = "unreachable"
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "redis": redisStatus})
	})

	app.Post("/register", authHandler.Register)
	app.Post("/login", authHandler.Login)

	protected := middleware.Protected(authService, userService)

	app.Get("/users/me", protected, userHandler.GetMe)
	app.Get("/profile", protected, userHandler.GetLearningProfile)

	problemGroup := app.Group("/problems", protected)
	problemGroup.Post("/upload", problemHandler.Upload)
	problemGroup.Get("/", problemHandler.ListProblems)
	problemGroup.Get("/:id", problemHandler.GetProblem)
	problemGroup.Patch("/:id", problemHandler.UpdateProblem)

	app.Post("/solve", protected, solveHandler.Solve)

	adminGroup := app.Group("/admin", protected, middleware.AdminOnly())
	adminGroup.Get("/users", userHandler.ListUsers)
	adminGroup.Post("/users/:id/ban", userHandler.BanUser)

	// Graceful shutdown on SIGINT/SIGTERM.
	shutdownDone := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		appLogger.Info("Shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(ctx); err != nil {
			appLogger.Error("Server shutdown failed", zap.Error(err))
		}
		close(shutdownDone)
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	appLogger.Info("Starting server", zap.String("address", addr))
	if err := app.Listen(addr); err != nil {
		appLogger.Fatal("Server stopped unexpectedly", zap.Error(err))
	}
	<-shutdownDone
}
