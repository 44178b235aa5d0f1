package dtos

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

type AirportCoords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Prediction sources. A placeholder is the degraded-mode response served
// when no model artifact is loaded; it is never a model output.
const (
	PredictionSourceModel       = "model"
	PredictionSourcePlaceholder = "placeholder"
)

// FlightPrediction is the /predict response payload. Weather codes are the
// normalized severities in [0,1], not raw provider condition codes.
type FlightPrediction struct {
	OriginCoords           AirportCoords `json:"origin_coords"`
	DestinationCoords      AirportCoords `json:"destination_coords"`
	OriginWeatherCode      float64       `json:"origin_weather_code"`
	DestinationWeatherCode float64       `json:"destination_weather_code"`
	OriginName             string        `json:"origin_name"`
	DestinationName        string        `json:"destination_name"`
	Prediction             float64       `json:"prediction"`
	PredictionSource       string        `json:"prediction_source"`
}
