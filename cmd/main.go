package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"flowrelay/config"
	"flowrelay/pkg/api"
	"flowrelay/pkg/bot"
	"flowrelay/pkg/logger"
	"flowrelay/pkg/session"
	"flowrelay/storage/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	pgStore, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pgStore.Close()

	apiClient := api.New(cfg.APIBaseURL, log)
	sessions := session.NewManager(pgStore.Session(), apiClient, log)

	clientBot, err := bot.New(bot.BotTypeClient, &cfg, sessions, apiClient, log)
	if err != nil {
		log.Error("failed to initialize client bot", logger.Error(err))
		os.Exit(1)
	}

	staffBot, err := bot.New(bot.BotTypeDriverAdmin, &cfg, sessions, apiClient, log)
	if err != nil {
		log.Error("failed to initialize staff bot", logger.Error(err))
		os.Exit(1)
	}

	// Peer linking, so approval decisions can reach the other bot's users.
	clientBot.Peer = staffBot
	staffBot.Peer = clientBot

	go clientBot.Start()
	go staffBot.Start()

	log.Info("🚀 Flow Relay bots are running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Info("shutting down")
}
