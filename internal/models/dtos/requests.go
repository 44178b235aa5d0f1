package dtos

// FlightRequest is the POST /predict body. Field names match the original
// web client contract. departTime, arrivalTime, wheelsOn and wheelsOff are
// HHMM strings ("1430" = 2:30pm). taxiOut/taxiIn of zero mean "unknown" and
// pass through weather adjustment untouched.
type FlightRequest struct {
	Origin           string   `json:"origin"`
	Destination      string   `json:"destination"`
	FlightDate       string   `json:"flightDate"`
	Airline          string   `json:"airline"`
	FlightNumber     string   `json:"flightNumber"`
	DepartTime       string   `json:"departTime"`
	ArrivalTime      string   `json:"arrivalTime"`
	TaxiOut          float64  `json:"taxiOut,omitempty"`
	TaxiIn           float64  `json:"taxiIn,omitempty"`
	WheelsOn         string   `json:"wheelsOn,omitempty"`
	WheelsOff        string   `json:"wheelsOff,omitempty"`
	Distance         *float64 `json:"distance,omitempty"`
	AdjustForWeather bool     `json:"adjustForWeather"`
	ShouldSaveSearch bool     `json:"shouldSaveSearch"`
}
