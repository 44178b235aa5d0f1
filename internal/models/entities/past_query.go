package entities

import "time"

// PastQuery is a persisted /predict request plus its outcome. When the
// caller opted into weather adjustment, TaxiOut/TaxiIn hold the adjusted
// values and WeatherAdjusted records that provenance.
type PastQuery struct {
	ID               int64     `db:"id" gorm:"primaryKey;autoIncrement" json:"-"`
	Origin           string    `db:"origin" json:"origin"`
	Destination      string    `db:"destination" json:"destination"`
	FlightDate       string    `db:"flight_date" json:"flightDate"`
	Airline          string    `db:"airline" json:"airline"`
	FlightNumber     string    `db:"flight_number" json:"flightNumber"`
	DepartTime       string    `db:"depart_time" json:"departTime"`
	ArrivalTime      string    `db:"arrival_time" json:"arrivalTime"`
	TaxiOut          float64   `db:"taxi_out" json:"taxiOut"`
	TaxiIn           float64   `db:"taxi_in" json:"taxiIn"`
	WheelsOn         string    `db:"wheels_on" json:"wheelsOn"`
	WheelsOff        string    `db:"wheels_off" json:"wheelsOff"`
	WeatherAdjusted  bool      `db:"weather_adjusted" json:"weatherAdjusted"`
	Prediction       float64   `db:"prediction" json:"prediction"`
	PredictionSource string    `db:"prediction_source" json:"predictionSource"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

func (PastQuery) TableName() string {
	return "past_queries"
}
