package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diegoclair/availability-bot/internal/chat/discord"
	"github.com/diegoclair/availability-bot/internal/chat/slack"
	"github.com/diegoclair/availability-bot/internal/config"
	"github.com/diegoclair/availability-bot/internal/database"
	"github.com/diegoclair/availability-bot/internal/domain"
	"github.com/diegoclair/availability-bot/internal/domain/contract"
	"github.com/diegoclair/availability-bot/internal/domain/service"
	"github.com/diegoclair/availability-bot/internal/handlers"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load config")
	}
	setupLogger(cfg)

	if err := run(cfg); err != nil {
		logrus.WithError(err).Fatal("Bot stopped with error")
	}
	logrus.Info("Bot stopped")
}

func setupLogger(cfg *config.Config) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithError(err).Warn("Invalid log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	logrus.WithField("dialect", db.Dialect()).Info("Running migrations...")
	if err := db.Migrate(); err != nil {
		return err
	}
	logrus.Info("Migrations completed successfully")

	gateway, err := newGateway(cfg)
	if err != nil {
		return err
	}

	channelID, err := gateway.ParseChannelID(cfg.NotifyChannel)
	if err != nil {
		return err
	}

	svc, err := service.NewInstance(database.NewInstance(db), gateway, service.Options{
		ChannelID: channelID,
		PollDay:   cfg.PollDay,
		Hour:      cfg.TaskHour,
		Minute:    cfg.TaskMinute,
		Second:    cfg.TaskSecond,
	})
	if err != nil {
		return err
	}

	gateway.OnReaction(handlers.NewReactionHandler(svc.Poll).Handle)
	if err := gateway.Open(ctx); err != nil {
		return err
	}
	defer gateway.Close()

	svc.Scheduler.Start(ctx)
	defer svc.Scheduler.Stop()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewPollHandler(svc.Poll).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logrus.Infof("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logrus.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newGateway(cfg *config.Config) (contract.Gateway, error) {
	switch cfg.Platform {
	case config.PlatformDiscord:
		return discord.New(cfg.BotToken)
	case config.PlatformSlack:
		return slack.New(cfg.SlackBotToken, cfg.SlackAppToken), nil
	default:
		return nil, domain.ErrUnknownPlatform
	}
}
