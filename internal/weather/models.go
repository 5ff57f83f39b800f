package weather

import "errors"

var (
	// ErrUpstreamNetwork is returned when the weather API could not be reached
	// or its body could not be read.
	ErrUpstreamNetwork = errors.New("weather upstream unreachable")

	// ErrUpstreamParse is returned when the weather API answered with a body
	// that is not valid JSON.
	ErrUpstreamParse = errors.New("weather upstream returned invalid json")
)

// Observation is what a provider extracted from one upstream response.
// Every field is optional: nil means the upstream payload did not carry it.
type Observation struct {
	// StatusCode is the upstream HTTP status. It is informational only and
	// never changes the shape of a Report.
	StatusCode   int
	TemperatureC *float64
	Description  *string
}

// Report is the body returned to the caller of a lookup.
// Absent fields serialize as JSON null.
type Report struct {
	City        string   `json:"city"`
	Temperature *float64 `json:"temperature"`
	Weather     *string  `json:"weather"`
}
