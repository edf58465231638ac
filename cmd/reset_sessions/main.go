package main

import (
	"context"

	"flowrelay/config"
	"flowrelay/pkg/logger"
	"flowrelay/storage/postgres"
)

// Wipes every persisted chat session, forcing all users to log in again.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)

	pg, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		panic(err)
	}
	defer pg.Close()

	_, err = pg.GetPool().Exec(context.Background(), "TRUNCATE TABLE sessions")
	if err != nil {
		log.Error("failed to truncate sessions", logger.Error(err))
	} else {
		log.Info("all sessions cleared")
	}
}
