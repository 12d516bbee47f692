package main

import (
	"context"
	"fmt"

	"github.com/avoronin/go-task-keeper/internal/config"
	"github.com/avoronin/go-task-keeper/internal/handler"
	"github.com/avoronin/go-task-keeper/internal/logger"
	"github.com/avoronin/go-task-keeper/internal/server"
	"github.com/avoronin/go-task-keeper/internal/service"
	"github.com/avoronin/go-task-keeper/internal/store"
	"github.com/avoronin/go-task-keeper/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-task-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	hashPool := workers.NewHashPool(cfg.App.BcryptCost, cfg.Workers.HashWorkers, cfg.Workers.HashQueueSize, log)
	workers.NewWorkers(hashPool).Run()
	defer hashPool.Stop()

	services := service.NewServices(*storages, hashPool, *cfg, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
