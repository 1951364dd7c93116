package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/rahul-9386/emi-management-system/internal/config"
	"github.com/rahul-9386/emi-management-system/internal/repository"
	"github.com/rahul-9386/emi-management-system/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	obligationRepo := repository.NewObligationRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	allocationRepo := repository.NewAllocationRepository(db)
	txRunner := repository.NewTxRunner(db)

	emiService := service.NewEmiService(obligationRepo, receiptRepo, allocationRepo, txRunner, redisClient, cfg, logger)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Fatal("invalid scheduler timezone", zap.String("timezone", cfg.Scheduler.Timezone), zap.Error(err))
	}

	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	// Daily dues refresh: recompute every account's penalty and rewrite the
	// cache so day-boundary penalty changes are visible without waiting for
	// the TTL to expire.
	_, err = c.AddFunc(cfg.Scheduler.RefreshSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		refreshed, err := emiService.RefreshDuesCache(ctx)
		if err != nil {
			logger.Error("dues refresh job failed", zap.Error(err))
			return
		}
		logger.Info("dues refresh job completed", zap.Int("accounts_refreshed", refreshed))
	})
	if err != nil {
		logger.Fatal("failed to schedule dues refresh job", zap.Error(err))
	}

	c.Start()
	logger.Info("scheduler started", zap.String("refresh_spec", cfg.Scheduler.RefreshSpec))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scheduler")
	<-c.Stop().Done()
	logger.Info("scheduler stopped")
}
