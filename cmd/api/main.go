package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/rchretien/fridge-app-backend/api/routes"
	"github.com/rchretien/fridge-app-backend/internal/inventory"
	"github.com/rchretien/fridge-app-backend/internal/lookup"
	"github.com/rchretien/fridge-app-backend/pkg/config"
	"github.com/rchretien/fridge-app-backend/pkg/db"
	"github.com/rchretien/fridge-app-backend/pkg/db/models"
	"github.com/rchretien/fridge-app-backend/pkg/logger"
	"github.com/rchretien/fridge-app-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	location, err := cfg.App.Location()
	if err != nil {
		logg.Error(context.Background(), "failed to resolve timezone", err)
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.DB.IsSQLite() {
		if err := dbClient.DB().AutoMigrate(models.All()...); err != nil {
			logg.Error(context.Background(), "failed to auto-migrate schema", err)
			os.Exit(1)
		}
	} else if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	if err := lookup.Seed(context.Background(), dbClient.DB()); err != nil {
		logg.Error(context.Background(), "failed to seed lookup tables", err)
		os.Exit(1)
	}

	inventoryService, err := inventory.NewService(dbClient.DB(), location)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"db":   cfg.DB.Driver,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, inventoryService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
