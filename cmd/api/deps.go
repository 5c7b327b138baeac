package main

import (
	"log"

	"finsim/internal/domain/simulation"
	"finsim/internal/infrastructure/forecast"
	"finsim/internal/infrastructure/postgres"
	httphandlers "finsim/internal/interfaces/http"
	"finsim/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	SimulationHandler *httphandlers.SimulationHandler

	// Service and repository (for the scheduler job provider)
	SimulationService *simulation.Service
	SimulationRepo    *postgres.SimulationRepository
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize repositories
	transactionRepo := postgres.NewTransactionRepository(db)
	simulationRepo := postgres.NewSimulationRepository(db)

	// Initialize forecaster and domain service
	forecaster := forecast.NewLinearTrend()
	simulationService := simulation.NewService(transactionRepo, forecaster, simulationRepo, cfg.Forecast.HorizonMonths)

	// Initialize handlers
	simulationHandler := httphandlers.NewSimulationHandler(simulationService)

	return &Dependencies{
		DB:                db,
		SimulationHandler: simulationHandler,
		SimulationService: simulationService,
		SimulationRepo:    simulationRepo,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
