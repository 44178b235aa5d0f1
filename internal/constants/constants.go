package constants

type APIStatus string

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"
)

// User-facing error messages. Unexpected internal errors always surface
// MsgInternalError so details never leak past the API boundary.
const (
	MsgInternalError  = "Internal server error"
	MsgHistoryFailure = "Could not retrieve search history"
	MsgWeatherFailure = "Weather provider unavailable"
)
