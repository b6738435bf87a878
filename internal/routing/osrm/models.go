package osrm

// osrmResponse is the OSRM route service response envelope.
type osrmResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	// Geometry is polyline-encoded at 5 decimal places.
	Geometry string  `json:"geometry"`
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

// OSRM code values that map to domain errors.
const (
	osrmCodeOK      = "Ok"
	osrmCodeNoRoute = "NoRoute"
	osrmCodeNoSeg   = "NoSegment"
)
