package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"skycast/internal/models/dtos"
)

// FeatureSpec names the columns the model artifact was trained on. HHMM
// lists the numeric columns stored as HHMM integers that must be converted
// to minutes-since-midnight before they reach the estimator.
type FeatureSpec struct {
	Numeric     []string
	Categorical []string
	HHMM        []string
}

// FeatureRow is one assembled inference row.
type FeatureRow struct {
	Numeric     map[string]float64
	Categorical map[string]string
}

// Day-of-week convention baked into the trained model: Monday=0..Sunday=6.
func dayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// parseHHMM reads an "HHMM" string ("630" and "0630" both mean 6:30am).
// The empty string means the field was not submitted and yields 0.
func parseHHMM(value, name string) (int, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 2400 || v%100 > 59 {
		return 0, fmt.Errorf("%w: %s must be an HHMM time, got %q", ErrMalformedInput, name, value)
	}
	return v, nil
}

func hhmmToMinutes(v float64) float64 {
	hhmm := int(v)
	return float64((hhmm/100)*60 + hhmm%100)
}

// BuildFeatureRow assembles the row the model expects from the request,
// the resolved airports and the (possibly weather-adjusted) taxi values.
// Distance is recomputed from coordinates unless the request overrides it.
// A column the spec requires but this builder cannot supply is a feature
// mismatch, never a silent default.
func BuildFeatureRow(req *dtos.FlightRequest, origin, dest AirportRecord, taxiOut, taxiIn float64, spec FeatureSpec) (*FeatureRow, error) {
	date, err := time.Parse("2006-01-02", req.FlightDate)
	if err != nil {
		return nil, fmt.Errorf("%w: flightDate must be YYYY-MM-DD, got %q", ErrMalformedInput, req.FlightDate)
	}

	departTime, err := parseHHMM(req.DepartTime, "departTime")
	if err != nil {
		return nil, err
	}
	wheelsOn, err := parseHHMM(req.WheelsOn, "wheelsOn")
	if err != nil {
		return nil, err
	}
	wheelsOff, err := parseHHMM(req.WheelsOff, "wheelsOff")
	if err != nil {
		return nil, err
	}

	distance := DistanceMiles(origin.Latitude, origin.Longitude, dest.Latitude, dest.Longitude)
	if req.Distance != nil {
		distance = *req.Distance
	}

	raw := map[string]float64{
		"day_of_week":  float64(dayOfWeek(date)),
		"taxi_out":     taxiOut,
		"taxi_in":      taxiIn,
		"wheels_on":    float64(wheelsOn),
		"wheels_off":   float64(wheelsOff),
		"crs_dep_time": float64(departTime),
		"distance":     distance,
	}

	for _, name := range spec.HHMM {
		v, ok := raw[name]
		if !ok {
			return nil, fmt.Errorf("%w: hhmm column %q is not a known feature", ErrFeatureMismatch, name)
		}
		raw[name] = hhmmToMinutes(v)
	}

	numeric := make(map[string]float64, len(spec.Numeric))
	for _, name := range spec.Numeric {
		v, ok := raw[name]
		if !ok {
			return nil, fmt.Errorf("%w: model requires numeric feature %q", ErrFeatureMismatch, name)
		}
		numeric[name] = v
	}

	rawCats := map[string]string{
		"origin":  strings.ToUpper(strings.TrimSpace(req.Origin)),
		"dest":    strings.ToUpper(strings.TrimSpace(req.Destination)),
		"airline": strings.ToUpper(strings.TrimSpace(req.Airline)),
	}

	categorical := make(map[string]string, len(spec.Categorical))
	for _, name := range spec.Categorical {
		v, ok := rawCats[name]
		if !ok {
			return nil, fmt.Errorf("%w: model requires categorical feature %q", ErrFeatureMismatch, name)
		}
		categorical[name] = v
	}

	return &FeatureRow{Numeric: numeric, Categorical: categorical}, nil
}
