package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	_ "github.com/sijms/go-ora/v2"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/birikimapp/birikim/internal/application"
	"github.com/birikimapp/birikim/internal/domain"
	"github.com/birikimapp/birikim/internal/infrastructure/config"
	"github.com/birikimapp/birikim/internal/infrastructure/persistence/gormstore"
	"github.com/birikimapp/birikim/internal/infrastructure/persistence/memory"
	"github.com/birikimapp/birikim/internal/infrastructure/persistence/sqldb"
	"github.com/birikimapp/birikim/internal/infrastructure/pricing"
	httpHandler "github.com/birikimapp/birikim/internal/interfaces/http"
)

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	slog.SetDefault(logger)
	return logger
}

// initializeRepositories opens the configured store and returns the two
// repositories backed by it.
func initializeRepositories(cfg *config.Config) (domain.InvestmentRepository, domain.HistoryRepository, error) {
	if cfg.DBDriver == config.DBDriverMemory {
		return memory.NewInvestmentRepository(), memory.NewHistoryRepository(), nil
	}

	if cfg.DBDriver == config.DBDriverGorm {
		gormDB, err := gorm.Open(gormpostgres.Open(cfg.DBDSN), &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect database: %w", err)
		}
		if err := gormstore.AutoMigrate(gormDB); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return gormstore.NewInvestmentRepository(gormDB), gormstore.NewHistoryRepository(gormDB), nil
	}

	var db *sql.DB
	var dialect sqldb.Dialect
	var err error

	switch cfg.DBDriver {
	case config.DBDriverPostgres:
		db, err = sql.Open("pgx", cfg.DBDSN)
		dialect = &sqldb.PostgresDialect{}
	case config.DBDriverOracle:
		db, err = sql.Open("oracle", cfg.DBDSN)
		dialect = &sqldb.OracleDialect{}
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.DBDriver)
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapper := sqldb.New(db, dialect)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := wrapper.Dialect.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return sqldb.NewInvestmentRepository(wrapper), sqldb.NewHistoryRepository(wrapper), nil
}

// createPricingSource selects the configured placeholder pricing policy.
func createPricingSource(cfg *config.Config) (pricing.Provider, error) {
	switch cfg.PricingMode {
	case config.PricingModeUniform:
		rate, err := decimal.NewFromString(cfg.UniformGrowthRate)
		if err != nil {
			return nil, fmt.Errorf("invalid UNIFORM_GROWTH_RATE: %w", err)
		}
		return pricing.NewUniformSource(rate), nil
	default:
		return pricing.NewPerTypeSource(), nil
	}
}

func buildServer(cfg *config.Config, handler *httpHandler.Handler) *http.Server {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:19006", "http://localhost:3000"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	httpHandler.SetupRoutes(router, handler)

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// run contains the application logic without os.Exit calls.
func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	setupLogger(cfg.LogLevel)

	rates, err := createPricingSource(cfg)
	if err != nil {
		return fmt.Errorf("failed to create pricing source: %w", err)
	}
	slog.Info("Using pricing mode", "mode", cfg.PricingMode)

	investmentRepo, historyRepo, err := initializeRepositories(cfg)
	if err != nil {
		return fmt.Errorf("store initialization failed: %w", err)
	}
	slog.Info("Record store ready", "driver", cfg.DBDriver)

	investmentService := application.NewInvestmentService(investmentRepo, historyRepo)
	portfolioService := application.NewPortfolioService(investmentRepo, rates)

	handler := httpHandler.NewHandler(investmentService, portfolioService)
	server := buildServer(cfg, handler)

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "host", cfg.ServerHost, "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
		slog.Info("Received shutdown signal")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	slog.Info("Server exited gracefully")
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("Application error", "error", err)
		os.Exit(1)
	}
}
