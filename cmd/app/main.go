// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barbershop-bot/internal/bot"
	"barbershop-bot/internal/config"
	"barbershop-bot/internal/domain/ports/adapter"
	pg "barbershop-bot/internal/infra/db/postgres"
	"barbershop-bot/internal/infra/logging"
	"barbershop-bot/internal/infra/metrics"
	red "barbershop-bot/internal/infra/redis"
	"barbershop-bot/internal/infra/sched"
	"barbershop-bot/internal/infra/twilio"
	"barbershop-bot/internal/infra/web"
	"barbershop-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, no outbound sends)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}
	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPool(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		// The session store degrades to its in-process tier on its own, but a
		// dead Redis at boot is almost always a config mistake.
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	sessions := red.NewSessionStore(redisClient, &cfg.Redis, nil, logger)

	// ---- Repositories ----
	serviceRepo := pg.NewServiceRepo(pool)
	barberRepo := pg.NewBarberRepo(pool)
	customerRepo := pg.NewCustomerRepo(pool)
	bookingRepo := pg.NewBookingRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- Outbound channel ----
	var sender adapter.MessageSender
	if cfg.Runtime.Dev || cfg.Twilio.AccountSID == "" {
		sender = twilio.NewNoopSender(logger)
	} else {
		sender = twilio.NewSender(&cfg.Twilio, logger)
	}

	// ---- Use cases ----
	availUC := usecase.NewAvailabilityUseCase(&cfg.Shop, bookingRepo, nil)
	bookingUC := usecase.NewBookingUseCase(bookingRepo, barberRepo, customerRepo, availUC, txManager, &cfg.Loyalty, nil, logger)
	reminderUC := usecase.NewReminderUseCase(bookingRepo, serviceRepo, sender, &cfg.Shop, &cfg.Reminders, nil, logger)

	// ---- Conversation ----
	handlers := bot.NewHandlers(serviceRepo, barberRepo, customerRepo, availUC, bookingUC, &cfg.Shop, &cfg.Loyalty, nil, logger)
	dispatcher := bot.NewDispatcher(sessions, logger)
	bot.RegisterAll(dispatcher, handlers)

	// ---- Workers ----
	completionWorker := sched.NewCompletionWorker(cfg.Reminders.CompletionEvery, bookingUC, logger)
	go func() { _ = completionWorker.Run(ctx) }()
	if cfg.Reminders.Enabled {
		reminderWorker := sched.NewReminderWorker(cfg.Reminders.DayBeforeEvery, cfg.Reminders.HourEvery, reminderUC, logger)
		go func() { _ = reminderWorker.Run(ctx) }()
	}

	// ---- Web server ----
	server := web.NewServer(cfg, dispatcher, sender, reminderUC, bookingUC, logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("web server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("web server shutdown")
	}
}
