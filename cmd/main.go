package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"quote-service/internal/cache"
	"quote-service/internal/config"
	"quote-service/internal/database/postgres"
	"quote-service/internal/database/redis"
	"quote-service/internal/event"
	"quote-service/internal/handlers"
	"quote-service/internal/memory"
	"quote-service/internal/metrics"
	"quote-service/internal/pricing"
	"quote-service/internal/repository"
	"quote-service/internal/services"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func setupLogging(logDir string) (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	fmt.Println("Log directory:", logDir)
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	if absPath, err := filepath.Abs(logFile); err == nil {
		fmt.Printf("Logging to %s\n", absPath)
	}

	out := io.MultiWriter(file, os.Stdout)
	log.SetOutput(out)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	slog.SetDefault(slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})))

	return file, nil
}

func catalogCache(cfg config.RedisConfig) (cache.Cache, func()) {
	if cfg.Host == "" {
		slog.Info("REDIS_HOST not set, using in-process catalog cache")
		return cache.NewMemoryCache(cfg.CacheTTL, 2*cfg.CacheTTL), func() {}
	}
	client, err := redis.NewRedisClient(cfg)
	if err != nil {
		slog.Warn("redis unavailable, falling back to in-process catalog cache", "error", err)
		return cache.NewMemoryCache(cfg.CacheTTL, 2*cfg.CacheTTL), func() {}
	}
	return cache.NewRedisCache(client.GetClient()), func() { _ = client.Close() }
}

func main() {
	cfg := config.New()

	logFile, err := setupLogging(cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	slog.Info("Connecting to PostgreSQL",
		"host", cfg.PostgresCfg.Host, "port", cfg.PostgresCfg.Port,
		"user", cfg.PostgresCfg.Username, "dbname", cfg.PostgresCfg.DBname)
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	defer db.Close()

	pricingStore, err := pricing.NewStore(cfg.PricingCfg.FilePath)
	if err != nil {
		log.Fatalf("Error loading pricing config: %v", err)
	}
	m.SetPricingVersion(pricingStore.Current().Version)
	pricingStore.OnReload(func(cfg *pricing.Config) { m.SetPricingVersion(cfg.Version) })
	if cfg.PricingCfg.FilePath != "" && cfg.PricingCfg.Watch {
		go func() {
			if err := pricingStore.Watch(ctx); err != nil {
				slog.Error("pricing config watcher stopped", "error", err)
			}
		}()
	}

	c, closeCache := catalogCache(cfg.RedisCfg)
	defer closeCache()

	var publisher services.QuoteEventPublisher
	if cfg.RabbitMQCfg.Enabled {
		conn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
		if err != nil {
			slog.Warn("quote events disabled", "error", err)
		} else {
			defer conn.Close()
			publisher = conn.NewQuotePublisher()
		}
	}

	zep := memory.NewZepClient(cfg.ZepCfg)
	if !zep.Configured() {
		slog.Warn("ZEP_API_KEY not set, memory context will be empty")
	}

	// repositories
	productTypeRepository := repository.NewProductTypeRepository(db)
	quoteRepository := repository.NewQuoteRepository(db)
	contentRepository := repository.NewContentRepository(db)
	userRepository := repository.NewUserRepository(db)

	// services
	productTypeService := services.NewProductTypeService(productTypeRepository, c, cfg.RedisCfg.CacheTTL, m)
	quoteService := services.NewQuoteService(productTypeService, quoteRepository, pricingStore, publisher, m)
	memoryService := services.NewMemoryContextService(zep, m)
	contentService := services.NewContentService(contentRepository, c, cfg.RedisCfg.CacheTTL, cfg.SiteCfg)
	userService := services.NewUserService(userRepository, productTypeService)

	app := fiber.New()
	app.Use(handlers.RequestMetrics(m))

	// handlers
	handlers.NewHealthHandler(reg).Register(app)
	handlers.NewQuoteHandler(quoteService).Register(app)
	handlers.NewProductTypeHandler(productTypeService).Register(app)
	handlers.NewMemoryHandler(memoryService).Register(app)
	handlers.NewContentHandler(contentService).Register(app)
	handlers.NewUserHandler(userService).Register(app)

	go func() {
		slog.Info("Starting quote-service", "port", cfg.Port)
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", cfg.Port)); err != nil {
			slog.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
