package services

import (
	"testing"
	"time"

	"skycast/internal/models/dtos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testOrigin = AirportRecord{IATA: "JFK", Latitude: 40.6413, Longitude: -73.7781}
	testDest   = AirportRecord{IATA: "LAX", Latitude: 33.9416, Longitude: -118.4085}
)

func baseRequest() *dtos.FlightRequest {
	return &dtos.FlightRequest{
		Origin:      "JFK",
		Destination: "LAX",
		FlightDate:  "2026-01-07",
		Airline:     "AA",
		DepartTime:  "0900",
		WheelsOn:    "1000",
		WheelsOff:   "1030",
	}
}

func TestDayOfWeek_MondayIsZero(t *testing.T) {
	monday := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, dayOfWeek(monday))
	assert.Equal(t, 6, dayOfWeek(sunday))
}

func TestHHMMToMinutes(t *testing.T) {
	assert.Equal(t, 390.0, hhmmToMinutes(630))
	assert.Equal(t, 870.0, hhmmToMinutes(1430))
	assert.Equal(t, 0.0, hhmmToMinutes(0))
	assert.Equal(t, 1440.0, hhmmToMinutes(2400))
}

func TestParseHHMM(t *testing.T) {
	v, err := parseHHMM("0630", "departTime")
	require.NoError(t, err)
	assert.Equal(t, 630, v)

	v, err = parseHHMM("", "departTime")
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	_, err = parseHHMM("25:00", "departTime")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = parseHHMM("9999", "departTime")
	assert.ErrorIs(t, err, ErrMalformedInput)

	// In-range total but an impossible minute component.
	_, err = parseHHMM("1299", "departTime")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = parseHHMM("2400", "departTime")
	assert.NoError(t, err)
}

func TestBuildFeatureRow(t *testing.T) {
	row, err := BuildFeatureRow(baseRequest(), testOrigin, testDest, 20, 10, defaultFeatureSpec)
	require.NoError(t, err)

	// 2026-01-07 is a Wednesday.
	assert.Equal(t, 2.0, row.Numeric["day_of_week"])
	assert.Equal(t, 20.0, row.Numeric["taxi_out"])
	assert.Equal(t, 10.0, row.Numeric["taxi_in"])

	// HHMM columns arrive as minutes since midnight.
	assert.Equal(t, 540.0, row.Numeric["crs_dep_time"])
	assert.Equal(t, 600.0, row.Numeric["wheels_on"])
	assert.Equal(t, 630.0, row.Numeric["wheels_off"])

	// Distance recomputed from coordinates.
	assert.InDelta(t, 2471.0, row.Numeric["distance"], 5.0)

	assert.Equal(t, "JFK", row.Categorical["origin"])
	assert.Equal(t, "LAX", row.Categorical["dest"])
	assert.Equal(t, "AA", row.Categorical["airline"])
}

func TestBuildFeatureRow_DistanceOverride(t *testing.T) {
	req := baseRequest()
	override := 1000.0
	req.Distance = &override

	row, err := BuildFeatureRow(req, testOrigin, testDest, 20, 10, defaultFeatureSpec)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, row.Numeric["distance"])
}

func TestBuildFeatureRow_CategoricalsUppercased(t *testing.T) {
	req := baseRequest()
	req.Origin = "jfk"
	req.Airline = " aa "

	row, err := BuildFeatureRow(req, testOrigin, testDest, 0, 0, defaultFeatureSpec)
	require.NoError(t, err)
	assert.Equal(t, "JFK", row.Categorical["origin"])
	assert.Equal(t, "AA", row.Categorical["airline"])
}

func TestBuildFeatureRow_MalformedDate(t *testing.T) {
	req := baseRequest()
	req.FlightDate = "07/01/2026"

	_, err := BuildFeatureRow(req, testOrigin, testDest, 0, 0, defaultFeatureSpec)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestBuildFeatureRow_MalformedHHMM(t *testing.T) {
	req := baseRequest()
	req.WheelsOn = "ten am"

	_, err := BuildFeatureRow(req, testOrigin, testDest, 0, 0, defaultFeatureSpec)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestBuildFeatureRow_UnknownFeatureIsMismatch(t *testing.T) {
	spec := FeatureSpec{
		Numeric:     []string{"day_of_week", "barometric_pressure"},
		Categorical: []string{"origin"},
	}

	_, err := BuildFeatureRow(baseRequest(), testOrigin, testDest, 0, 0, spec)
	assert.ErrorIs(t, err, ErrFeatureMismatch)
}
