package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"finsim/internal/domain/simulation"
)

// SimulationRunner is the slice of the simulation service the handler needs.
type SimulationRunner interface {
	Run(ctx context.Context, userID, name string, params simulation.Parameters) (*simulation.Result, error)
}

type SimulationHandler struct {
	runner SimulationRunner
}

func NewSimulationHandler(runner SimulationRunner) *SimulationHandler {
	return &SimulationHandler{runner: runner}
}

// Request/Response DTOs

type RunSimulationRequest struct {
	Name       string                `json:"name"`
	Parameters simulation.Parameters `json:"parameters"`
}

type ProjectedPointResponse struct {
	Date            string  `json:"date"`
	ProjectedAmount float64 `json:"projectedAmount"`
	LowerBound      float64 `json:"lowerBound"`
	UpperBound      float64 `json:"upperBound"`
}

type RunSimulationResponse struct {
	SimulationID  string                   `json:"simulationId"`
	Summary       string                   `json:"summary"`
	ProjectedData []ProjectedPointResponse `json:"projectedData"`
}

func toRunSimulationResponse(result *simulation.Result) RunSimulationResponse {
	points := make([]ProjectedPointResponse, 0, len(result.ProjectedData))
	for _, p := range result.ProjectedData {
		points = append(points, ProjectedPointResponse{
			Date:            p.Date,
			ProjectedAmount: p.ProjectedAmount,
			LowerBound:      p.LowerBound,
			UpperBound:      p.UpperBound,
		})
	}
	return RunSimulationResponse{
		SimulationID:  result.SimulationID,
		Summary:       result.Summary,
		ProjectedData: points,
	}
}

// HandleSimulations routes requests to the appropriate handler based on method
func (h *SimulationHandler) HandleSimulations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleRunSimulation(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleRunSimulation runs a what-if projection and persists it.
// The caller identity arrives in the X-User-ID header, set by the gateway.
func (h *SimulationHandler) handleRunSimulation(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req RunSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding run simulation request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.runner.Run(r.Context(), userID, req.Name, req.Parameters)
	if err != nil {
		if errors.Is(err, simulation.ErrEmptyName) || errors.Is(err, simulation.ErrInvalidUserID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error running simulation for user %s: %v", userID, err)
		http.Error(w, "Failed to run simulation", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toRunSimulationResponse(result))
}
