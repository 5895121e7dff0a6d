package main

import (
	"fmt"
	"os"

	"vehicle-service/internal/client"
	"vehicle-service/internal/config"
	"vehicle-service/internal/db"
	"vehicle-service/internal/events"
	httphandler "vehicle-service/internal/http"
	"vehicle-service/internal/logger"
	"vehicle-service/internal/repository"
	"vehicle-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	publisher, err := events.NewPublisher(cfg.NATS.URL, cfg.NATS.Subject, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect nats")
	}
	defer publisher.Close()

	vehicleRepo := repository.NewVehicleRepository(database)
	routeClient := client.NewRouteClient(cfg)
	vehicleService := service.NewVehicleService(vehicleRepo, routeClient, publisher)

	handler := httphandler.NewHandler(vehicleService, appLogger)
	router := httphandler.NewRouter(handler, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting vehicle service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
