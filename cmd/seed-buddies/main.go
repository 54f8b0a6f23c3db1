// Seeds the stock buddy personas (Helper as the default, Motivator) into
// the database. Safe to re-run: existing rows are refreshed by name.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"buddyremind/internal/config"
	"buddyremind/internal/logger"
	"buddyremind/internal/model"
	"buddyremind/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	db, err := cfg.OpenGormDB()
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&model.Buddy{}); err != nil {
		slog.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	if err := service.NewBuddyService(db).SeedDefaults(context.Background()); err != nil {
		slog.Error("seeding failed", "err", err)
		os.Exit(1)
	}
	slog.Info("seeding completed")
}
