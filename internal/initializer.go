package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"contacts-api/internal/config"
	"contacts-api/internal/managers"
	"contacts-api/internal/middleware"
	"contacts-api/internal/migrations"
	"contacts-api/internal/routing"
	"contacts-api/internal/services"
	"contacts-api/internal/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	productName     = "Contacts API"
	shutdownTimeout = 10 * time.Second
)

func Init() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading configuration: ", err)
	}

	utils.ConfigureLogging(cfg.LogLevel, cfg.ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool := initializeDatabase(ctx, cfg.Database)
	if err := runMigrations(ctx, pool); err != nil {
		log.Fatal("Error running migrations: ", err)
	}

	// Initialize database manager
	databaseMgr := managers.NewDatabaseManager(pool)
	defer databaseMgr.Close()

	// Initialize mail manager
	mailMgr := managers.NewMailManager(cfg.Mail, productName, cfg.PublicBaseURL, cfg.IsProduction())

	// Initialize JWT manager
	jwtMgr, err := managers.NewJWTManagerFromFile(cfg.Token)
	if err != nil {
		log.Fatal("Error initializing JWT manager: ", err)
	}

	// Initialize storage manager
	storageMgr, err := managers.NewStorageManager(ctx, cfg.Storage)
	if err != nil {
		log.Fatal("Error initializing storage manager: ", err)
	}

	authService := services.NewAuthService(pool, jwtMgr, mailMgr, cfg, utils.GetValidator().VerifyEmail)

	deps := routing.Dependencies{
		DatabaseMgr: databaseMgr,
		JWTMgr:      jwtMgr,
		StorageMgr:  storageMgr,
		AuthService: authService,
	}
	if client := initializeRedis(ctx, cfg.RateLimit); client != nil {
		defer client.Close()
		deps.RateLimiter = middleware.NewRedisTokenBucket(client, cfg.RateLimit.MePerMinute, time.Minute)
	}

	// Initialize router
	r := routing.InitRouter(cfg, deps)
	log.Info("Initialized router")

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Error starting server: ", err)
		}
	}()

	// Handle interrupt signal gracefully
	<-ctx.Done()
	log.Info("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down server: ", err)
	}

	// Pending mails still hold on to the database manager's pool
	authService.Wait()
	log.Info("Server stopped")
}

func initializeDatabase(ctx context.Context, cfg config.DatabaseConfig) *pgxpool.Pool {
	log.Info("Initializing database")

	url := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		log.Fatal("error configuring database: ", err)
	}

	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MaxConnIdleTime = time.Minute * 2
	poolConfig.HealthCheckPeriod = time.Minute * 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("error connecting to database: ", err)
	}
	log.Info("Connected to database")
	return pool
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// initializeRedis returns nil when no redis is configured or reachable, which disables rate limiting.
func initializeRedis(ctx context.Context, cfg config.RateLimitConfig) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis not reachable, rate limiting disabled: ", err)
		_ = client.Close()
		return nil
	}
	log.Info("Connected to redis")
	return client
}
