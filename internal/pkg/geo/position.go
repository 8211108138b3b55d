package geo

// PositionErrorClass classifies why a device could not report its position.
// The read happens on the device; clients report the failure class so the
// server can answer with a consistent message and skip reconciliation.
type PositionErrorClass string

const (
	PositionPermissionDenied PositionErrorClass = "permission_denied"
	PositionUnavailable      PositionErrorClass = "position_unavailable"
	PositionTimeout          PositionErrorClass = "timeout"
	PositionUnsupported      PositionErrorClass = "unsupported_environment"
)

// Valid reports whether the class is one of the known failure classes.
func (c PositionErrorClass) Valid() bool {
	switch c {
	case PositionPermissionDenied, PositionUnavailable, PositionTimeout, PositionUnsupported:
		return true
	}
	return false
}

// Message returns the human-readable description for the class.
func (c PositionErrorClass) Message() string {
	switch c {
	case PositionPermissionDenied:
		return "location permission was denied"
	case PositionUnavailable:
		return "device position is unavailable"
	case PositionTimeout:
		return "timed out waiting for device position"
	case PositionUnsupported:
		return "geolocation is not supported in this environment"
	default:
		return "device position could not be obtained"
	}
}
