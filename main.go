package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopkart/common/logger"
	"shopkart/config"
	"shopkart/controllers"
	"shopkart/database"
	"shopkart/repository"
	"shopkart/routes"
	"shopkart/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		zlog.Warn("redis unavailable, product cache disabled", zap.Error(err))
		redisClient = nil
	}

	// Repositories
	cardRepo := repository.NewGormCardRepo(db)
	addressRepo := repository.NewGormAddressRepo(db)
	orderRepo := repository.NewGormOrderRepo(db)
	cartRepo := repository.NewGormCartRepo(db)
	productRepo := repository.NewGormProductRepo(db)

	// Gateway and event publisher
	gateway := services.NewStripeGateway(cfg.StripeSecretKey)

	var publisher services.EventPublisher
	if cfg.PaymentTopicARN != "" {
		snsPublisher, err := services.NewSNSPublisher(context.Background(), cfg.PaymentTopicARN)
		if err != nil {
			zlog.Warn("sns unavailable, payment events disabled", zap.Error(err))
		} else {
			publisher = snsPublisher
		}
	}

	// Services
	paymentSvc := services.NewPaymentService(gateway, cardRepo, orderRepo, publisher, zlog)
	cartSvc := services.NewCartService(cartRepo, productRepo, zlog)
	orderSvc := services.NewOrderService(orderRepo, zlog)

	// Controllers
	var cache *controllers.CacheManager
	if redisClient != nil {
		cache = controllers.NewCacheManager(redisClient, zlog)
	}
	ctls := &routes.Controllers{
		Payment: controllers.NewPaymentController(paymentSvc, zlog),
		Cart:    controllers.NewCartController(cartSvc, zlog),
		Address: controllers.NewAddressController(addressRepo, zlog),
		Order:   controllers.NewOrderController(orderSvc, zlog),
		Product: controllers.NewProductController(productRepo, cache, zlog),
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logger.RequestLogger(zlog))
	routes.Register(r, ctls, []byte(cfg.JWTSecret))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zlog.Info("server running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zlog.Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("shutdown error", zap.Error(err))
	}
	zlog.Info("server shutdown complete")
}
