package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-gin-comedy-tickets/config"
	"go-gin-comedy-tickets/internal/cache"
	"go-gin-comedy-tickets/internal/database"
	"go-gin-comedy-tickets/internal/handler"
	"go-gin-comedy-tickets/internal/middleware"
	"go-gin-comedy-tickets/internal/queue"
	"go-gin-comedy-tickets/internal/repository"
	"go-gin-comedy-tickets/internal/service"
	"go-gin-comedy-tickets/internal/worker"
	"go-gin-comedy-tickets/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		logger.L.Warn("invalid LOG_LEVEL, keep info", zap.String("level", cfg.LogLevel), zap.Error(err))
	}
	defer logger.L.Sync()
	log := logger.WithComponent("main")

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(pool); err != nil {
			log.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatal("Failed to initialize redis", zap.Error(err))
	}
	defer rdb.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// repositories
	showRepository := repository.NewShowRepository(pool)
	inventoryRepository := repository.NewInventoryRepository(pool)
	bookingRepository := repository.NewBookingRepository(pool)
	userRepository := repository.NewUserRepository(pool)
	comedianRepository := repository.NewComedianRepository(pool)
	settingsRepository := repository.NewSettingsRepository(pool)
	transactor := database.NewTransactor(pool)

	// 剩餘票數快取與庫存事件
	availabilityCache := newAvailabilityCache(cfg.Booking.AvailabilityWorker, rdb)
	hostname, _ := os.Hostname()
	inventoryQueue, err := queue.NewRedisStreamInventoryQueue(ctx, rdb, hostname, nil)
	if err != nil {
		log.Fatal("Failed to initialize inventory stream", zap.Error(err))
	}
	if availabilityCache != nil {
		if err := worker.NewAvailabilityWorker(availabilityCache, inventoryQueue).Start(ctx); err != nil {
			log.Fatal("Failed to start availability worker", zap.Error(err))
		}
	}

	// services
	showService := service.NewShowService(transactor, showRepository, inventoryRepository,
		bookingRepository, comedianRepository, availabilityCache, inventoryQueue)
	bookingService := service.NewBookingService(transactor, bookingRepository, showRepository,
		inventoryRepository, settingsRepository, availabilityCache, inventoryQueue, cfg.Booking.AutoConfirm)
	userService := service.NewUserService(transactor, userRepository, comedianRepository)
	feeService := service.NewFeeService(transactor, settingsRepository, showRepository,
		inventoryRepository, bookingRepository)

	handler.RegisterValidators()
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.OptionalAuth(cfg.Auth.JWTSecret))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.NewShowHandler(showService).RegisterRoutes(router)
	handler.NewBookingHandler(bookingService).RegisterRoutes(router)
	handler.NewUserHandler(userService).RegisterRoutes(router)
	handler.NewAdminHandler(userService, feeService).RegisterRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
}

// newAvailabilityCache 沒有 worker 消化庫存事件時快取不會更新，直接不用快取
func newAvailabilityCache(workerEnabled bool, rdb *redis.Client) cache.AvailabilityCache {
	if !workerEnabled {
		return nil
	}
	return cache.NewRedisAvailabilityCache(rdb)
}
