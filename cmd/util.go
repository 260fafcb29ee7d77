package cmd

import (
	"fmt"
	"os"

	"foliotrack/api"
	"foliotrack/internal/app"
	"foliotrack/internal/logger"
	"foliotrack/internal/repository"
	l1_service "foliotrack/internal/service/l1"
	"foliotrack/internal/util"
)

func InitializeDependencies() (*api.ApiHandler, error) {
	log := logger.New()

	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dataFile := os.Getenv("FOLIO_DATA_FILE")
	if dataFile == "" {
		dataFile = "portfolio.json"
	}
	portfolioRepository := repository.NewPortfolioRepository(dataFile)

	positionService, err := l1_service.NewPositionService(portfolioRepository)
	if err != nil {
		return nil, err
	}

	yahooRepository := repository.NewYahooRepository()
	priceService := l1_service.NewPriceService(yahooRepository, yahooRepository)

	refreshHandler := app.NewRefreshHandler(positionService, priceService)

	var gptRepository repository.GptRepository
	if secrets.ChatGPTApiKey != "" {
		gptRepository, err = repository.NewGptRepository(secrets.ChatGPTApiKey)
		if err != nil {
			return nil, err
		}
	}

	return &api.ApiHandler{
		Logger:          log,
		PositionService: positionService,
		RefreshHandler:  refreshHandler,
		GptRepository:   gptRepository,
	}, nil
}
