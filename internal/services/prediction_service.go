package services

import (
	"context"
	"fmt"

	"skycast/internal/db/repositories"
	"skycast/internal/logging"
	"skycast/internal/metrics"
	"skycast/internal/models/dtos"
	"skycast/internal/models/entities"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

// PredictionService sequences a /predict request: airport resolution,
// concurrent weather lookups, optional taxi adjustment, feature build,
// model scoring and best-effort persistence.
type PredictionService struct {
	directory *AirportDirectory
	weather   WeatherProvider
	model     *ModelAdapter
	history   repositories.HistoryRepository
	metrics   *metrics.MetricsRegistry
	clock     clockwork.Clock
}

func NewPredictionService(
	directory *AirportDirectory,
	weather WeatherProvider,
	model *ModelAdapter,
	history repositories.HistoryRepository,
	metricsReg *metrics.MetricsRegistry,
	clock clockwork.Clock,
) *PredictionService {
	return &PredictionService{
		directory: directory,
		weather:   weather,
		model:     model,
		history:   history,
		metrics:   metricsReg,
		clock:     clock,
	}
}

// Predict runs the full flow. Airport codes are validated before any
// weather I/O; either weather failure fails the whole request; a
// persistence failure is logged and never fails the response.
func (s *PredictionService) Predict(ctx context.Context, req *dtos.FlightRequest) (*dtos.FlightPrediction, error) {
	origin, ok := s.directory.Lookup(req.Origin)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAirportNotFound, req.Origin)
	}
	dest, ok := s.directory.Lookup(req.Destination)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAirportNotFound, req.Destination)
	}

	// The two lookups are independent; a plain errgroup joins them
	// without cancelling the sibling call when one fails.
	var originSev, destSev float64
	var g errgroup.Group
	g.Go(func() error {
		var err error
		originSev, err = s.weather.CurrentSeverity(ctx, origin.Latitude, origin.Longitude)
		return err
	})
	g.Go(func() error {
		var err error
		destSev, err = s.weather.CurrentSeverity(ctx, dest.Latitude, dest.Longitude)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Derived values: the request itself is never mutated. Taxi-out
	// happens at the origin, taxi-in at the destination.
	taxiOut, taxiIn := req.TaxiOut, req.TaxiIn
	adjusted := false
	if req.AdjustForWeather {
		taxiOut = AdjustTaxiMinutes(req.TaxiOut, originSev)
		taxiIn = AdjustTaxiMinutes(req.TaxiIn, destSev)
		adjusted = taxiOut != req.TaxiOut || taxiIn != req.TaxiIn
	}

	row, err := BuildFeatureRow(req, origin, dest, taxiOut, taxiIn, s.model.FeatureSpec())
	if err != nil {
		return nil, err
	}

	prediction, source, err := s.model.Predict(row)
	if err != nil {
		return nil, err
	}
	s.metrics.PredictionsTotal.WithLabelValues(source).Inc()

	if req.ShouldSaveSearch {
		s.saveQuery(ctx, req, taxiOut, taxiIn, adjusted, prediction, source)
	}

	return &dtos.FlightPrediction{
		OriginCoords:           dtos.AirportCoords{Latitude: origin.Latitude, Longitude: origin.Longitude},
		DestinationCoords:      dtos.AirportCoords{Latitude: dest.Latitude, Longitude: dest.Longitude},
		OriginWeatherCode:      originSev,
		DestinationWeatherCode: destSev,
		OriginName:             origin.Name,
		DestinationName:        dest.Name,
		Prediction:             prediction,
		PredictionSource:       source,
	}, nil
}

// saveQuery appends the query to history. Best effort: failures are
// logged and counted, never surfaced to the caller.
func (s *PredictionService) saveQuery(ctx context.Context, req *dtos.FlightRequest, taxiOut, taxiIn float64, adjusted bool, prediction float64, source string) {
	record := &entities.PastQuery{
		Origin:           req.Origin,
		Destination:      req.Destination,
		FlightDate:       req.FlightDate,
		Airline:          req.Airline,
		FlightNumber:     req.FlightNumber,
		DepartTime:       req.DepartTime,
		ArrivalTime:      req.ArrivalTime,
		TaxiOut:          taxiOut,
		TaxiIn:           taxiIn,
		WheelsOn:         req.WheelsOn,
		WheelsOff:        req.WheelsOff,
		WeatherAdjusted:  adjusted,
		Prediction:       prediction,
		PredictionSource: source,
		CreatedAt:        s.clock.Now().UTC(),
	}

	if err := s.history.Insert(ctx, record); err != nil {
		logging.Error("Failed to persist past query",
			"origin", req.Origin,
			"destination", req.Destination,
			"error", err.Error(),
		)
		s.metrics.HistoryInsertsTotal.WithLabelValues("error").Inc()
		return
	}
	s.metrics.HistoryInsertsTotal.WithLabelValues("ok").Inc()
}
