package http

import (
	"time"

	"github.com/avoronin/go-task-keeper/internal/config"
	"github.com/avoronin/go-task-keeper/internal/logger"
	"github.com/avoronin/go-task-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
