package services

import "errors"

// Error taxonomy surfaced by the prediction flow. Handlers map these to
// status codes at the API boundary; nothing below the boundary knows about
// HTTP.
var (
	// ErrAirportNotFound: unknown IATA code, user-correctable.
	ErrAirportNotFound = errors.New("airport code not found")

	// ErrWeatherUnavailable: the weather provider errored or was
	// unreachable. Fatal to the request, never retried.
	ErrWeatherUnavailable = errors.New("weather provider unavailable")

	// ErrMalformedInput: a client-supplied field failed to parse.
	ErrMalformedInput = errors.New("malformed input")

	// ErrFeatureMismatch: the model artifact requires a feature this
	// service cannot supply. An internal contract violation, not a
	// client error.
	ErrFeatureMismatch = errors.New("model feature mismatch")
)
