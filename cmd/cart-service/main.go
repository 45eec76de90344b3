package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/cache"
	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/catalog"
	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/events"
	carthttp "github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/http"
	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/service"
	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/store"
)

type Config struct {
	HTTPPort        string
	DBPath          string
	MigrationsPath  string
	RedisAddr       string
	RedisPassword   string
	CatalogBaseURL  string
	KafkaBrokers    string
	KafkaTopic      string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DBPath:          getEnv("CART_DB_PATH", "carts.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CatalogBaseURL:  getEnv("CATALOG_BASE_URL", "http://localhost:8000/api"),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "cart-events"),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Cart blob store: sqlite file when configured, memory otherwise.
	var cartStore store.Store
	if cfg.DBPath != "" {
		sqliteStore, err := store.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			logger.Fatal("failed to open cart store", zap.Error(err))
		}
		if err := sqliteStore.RunMigrations(cfg.MigrationsPath); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		cartStore = sqliteStore
		logger.Info("cart store ready", zap.String("db_path", cfg.DBPath))
	} else {
		cartStore = store.NewMemoryStore()
		logger.Warn("no CART_DB_PATH configured, carts will not survive restarts")
	}
	defer cartStore.Close()

	// Snapshot cache is optional.
	var cartCache cache.CartCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		cartCache = cache.NewRedisCache(redisClient)
		logger.Info("redis cache ready", zap.String("addr", cfg.RedisAddr))
	}

	// Mutation events are optional too.
	var publisher service.Publisher
	if kp := events.NewKafkaPublisher(splitBrokers(cfg.KafkaBrokers), cfg.KafkaTopic, logger); kp != nil {
		defer kp.Close()
		publisher = kp
		logger.Info("kafka publisher ready", zap.String("brokers", cfg.KafkaBrokers))
	}

	catalogClient := catalog.NewClient(cfg.CatalogBaseURL)
	registry := service.NewRegistry(cartStore, cartCache, publisher, logger)
	handler := carthttp.NewCartHandler(registry, catalogClient)
	metrics := carthttp.NewMetrics(prometheus.DefaultRegisterer)
	router := carthttp.NewRouter(handler, metrics, cfg.RequestTimeout)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("cart service listening", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down cart service")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("cart service stopped")
}

func splitBrokers(csv string) []string {
	var brokers []string
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
