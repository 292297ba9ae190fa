package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Baooooooo0/Drinking-App/internal/cart"
	"github.com/Baooooooo0/Drinking-App/internal/catalog"
	h "github.com/Baooooooo0/Drinking-App/internal/http"
	"github.com/Baooooooo0/Drinking-App/internal/storage"
	"github.com/redis/go-redis/v9"
)

type Config struct {
	HTTPPort        string
	StorageDriver   string
	SQLitePath      string
	MigrationsPath  string
	RedisAddr       string
	RedisPassword   string
	MongoURI        string
	MongoDBName     string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		StorageDriver:   getEnv("STORAGE_DRIVER", "sqlite"),
		SQLitePath:      getEnv("SQLITE_PATH", "coffee.db"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "internal/storage/migrations"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "coffeedb"),
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
	ctx := context.Background()

	// Persistence gateway for cart state and purchase history
	gateway, err := newGateway(cfg)
	if err != nil {
		log.Fatalf("Failed to set up storage: %v", err)
	}
	defer gateway.Close()
	log.Printf("Storage ready (driver=%s)", cfg.StorageDriver)

	// Drink catalog
	mongoDB, err := catalog.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	repo := catalog.NewMongoRepository(mongoDB)
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	var cache catalog.Cache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		log.Printf("Redis ping succeeded")
		cache = catalog.NewRedisCache(redisClient)
	}
	menu := catalog.NewService(repo, cache)

	// Cart manager picks up where the last session left off
	manager := cart.NewManager(gateway)
	manager.Restore(ctx)
	log.Printf("Cart restored: %d items, %d past orders", len(manager.Items()), len(manager.History()))

	router := h.NewRouter(h.NewCartHandler(manager), h.NewMenuHandler(menu), cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Coffee backend listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if err := mongoDB.Client().Disconnect(ctx); err != nil {
		log.Printf("mongo disconnect: %v", err)
	}
	log.Println("server exited")
}

func newGateway(cfg *Config) (storage.Gateway, error) {
	switch cfg.StorageDriver {
	case "sqlite":
		g, err := storage.NewSQLiteGateway(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := g.RunMigrations(cfg.MigrationsPath); err != nil {
			return nil, err
		}
		return g, nil

	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required for the redis storage driver")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return storage.NewRedisGateway(client), nil

	case "memory":
		return storage.NewMemoryGateway(), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
