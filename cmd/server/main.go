package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/clearpane/window-booking/internal/config"
	"github.com/clearpane/window-booking/internal/database"
	"github.com/clearpane/window-booking/internal/handler"
	"github.com/clearpane/window-booking/internal/queue"
	"github.com/clearpane/window-booking/internal/repository"
	"github.com/clearpane/window-booking/internal/router"
	"github.com/clearpane/window-booking/internal/service"
)

func main() {
	// Local development reads .env; in deployment the environment is
	// injected and the file is absent.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	settingsRepo := repository.NewSettingsRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	// Boot-time seeding: the pricing singleton and the admin account.
	if _, err := settingsRepo.GetOrCreate(ctx); err != nil {
		log.Fatalf("settings seed failed: %v", err)
	}
	log.Println("settings: pricing configuration seeded")
	if err := userRepo.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, response cache and rate limiter disabled")
	}

	notifier := service.NewNotifier(cfg.AMQPURL)
	go queue.StartNotificationConsumer(cfg.AMQPURL, queue.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})

	e := router.New(router.Deps{
		Settings:           handler.NewSettingsHandler(settingsRepo),
		Bookings:           handler.NewBookingHandler(bookingRepo, notifier),
		Auth:               handler.NewAuthHandler(cfg, userRepo, tokenRepo),
		JWTSecret:          cfg.JWTSecret,
		Redis:              rdb,
		CacheTTL:           cfg.CacheTTL,
		RateCapacity:       cfg.RateCapacity,
		RateRefillInterval: cfg.RateRefillInterval,
	})

	log.Printf("starting server on :%s (env=%s)", cfg.Port, cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
