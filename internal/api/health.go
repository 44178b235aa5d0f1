package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"skycast/internal/models/entities"
)

// HealthCheckHandler handles GET /healthCheck
func HealthCheckHandler(deps *Dependencies, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		services := make(map[string]entities.ServiceStatus)

		storeStatus := "ok"
		storeDetails := "History store connected"
		if err := deps.History.Ping(r.Context()); err != nil {
			storeStatus = "down"
			storeDetails = err.Error()
		}
		services["history_store"] = entities.ServiceStatus{
			Status:  storeStatus,
			Details: storeDetails,
		}

		modelStatus := "ok"
		modelDetails := "Model loaded"
		if deps.Model.Degraded() {
			// Still serving, but predictions are placeholders.
			modelStatus = "degraded"
			modelDetails = "No model artifact; serving placeholder predictions"
		}
		services["model"] = entities.ServiceStatus{
			Status:  modelStatus,
			Details: modelDetails,
		}

		airportStatus := "ok"
		if deps.Directory.Count() == 0 {
			airportStatus = "degraded"
		}
		services["airport_directory"] = entities.ServiceStatus{
			Status:  airportStatus,
			Details: fmt.Sprintf("%d airports loaded", deps.Directory.Count()),
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status == "down" {
				overallStatus = "down"
				break
			}
		}

		uptime := time.Since(upSince).Round(time.Second).String()

		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			Uptime:   uptime,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
