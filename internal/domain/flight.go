package domain

import "time"

// Flight is a scheduled flight between two airports. AircraftID is nil
// while no aircraft is assigned.
type Flight struct {
	ID               int64
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	AircraftID       *int64
}

// FlightFilter narrows a flight listing. Zero-value fields impose no
// constraint; all set fields are ANDed together. Airport codes must be
// validated and upper-cased before the filter reaches the repository.
type FlightFilter struct {
	DepartureAirport string
	ArrivalAirport   string
	DepartureAfter   *time.Time
	DepartureBefore  *time.Time
}

// IsZero reports whether the filter imposes no constraint at all.
func (f FlightFilter) IsZero() bool {
	return f.DepartureAirport == "" && f.ArrivalAirport == "" && f.DepartureAfter == nil && f.DepartureBefore == nil
}
