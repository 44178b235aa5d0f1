package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"skycast/internal/common"
	"skycast/internal/constants"
	"skycast/internal/logging"
	"skycast/internal/models/dtos"
	"skycast/internal/services"
)

// PredictHandler handles POST /predict
func PredictHandler(predictionSvc *services.PredictionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FlightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondError(w, initTime, "Invalid request body", http.StatusBadRequest)
			return
		}

		if req.Origin == "" || req.Destination == "" {
			common.RespondError(w, initTime, "origin and destination are required", http.StatusBadRequest)
			return
		}
		if req.FlightDate == "" {
			common.RespondError(w, initTime, "flightDate is required", http.StatusBadRequest)
			return
		}

		prediction, err := predictionSvc.Predict(r.Context(), &req)
		if err != nil {
			respondPredictError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Prediction generated", prediction)
	}
}

// respondPredictError maps the service error taxonomy onto status codes.
// Unexpected errors surface a generic message so internals never leak.
func respondPredictError(w http.ResponseWriter, initTime time.Time, err error) {
	switch {
	case errors.Is(err, services.ErrAirportNotFound):
		common.RespondError(w, initTime, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrMalformedInput):
		common.RespondError(w, initTime, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrWeatherUnavailable):
		common.RespondError(w, initTime, constants.MsgWeatherFailure, http.StatusBadGateway)
	default:
		logging.Error("Prediction failed", "error", err.Error())
		common.RespondError(w, initTime, constants.MsgInternalError, http.StatusInternalServerError)
	}
}
