package stats

import (
	"math"
	"sort"
	"time"

	"github.com/nickmwangemi/Flight-Management-API/internal/domain"
)

type airportAccum struct {
	flightCount   int
	totalMinutes  float64
	aircraftTimes map[int64]float64
}

// BuildReport aggregates flight activity per departure airport over the
// window. It is a pure function of its inputs: flights outside the window
// are skipped, so callers may pass any flight set. serials maps aircraft id
// to serial number; an unresolved id is labeled "Unknown".
func BuildReport(flights []domain.Flight, w Window, serials map[int64]string) *Report {
	groups := make(map[string]*airportAccum)

	for _, f := range flights {
		if !overlapsWindow(f, w) {
			continue
		}

		accum := groups[f.DepartureAirport]
		if accum == nil {
			accum = &airportAccum{aircraftTimes: make(map[int64]float64)}
			groups[f.DepartureAirport] = accum
		}
		accum.flightCount++

		// Unassigned flights count toward the group but contribute no
		// in-flight time.
		if f.AircraftID == nil {
			continue
		}
		minutes := inFlightMinutes(f, w)
		accum.aircraftTimes[*f.AircraftID] += minutes
		accum.totalMinutes += minutes
	}

	airports := make([]AirportStats, 0, len(groups))
	totalFlights := 0
	for airport, accum := range groups {
		entry := AirportStats{
			DepartureAirport:    airport,
			FlightCount:         accum.flightCount,
			AircraftFlightTimes: make([]AircraftFlightTime, 0, len(accum.aircraftTimes)),
		}
		if accum.flightCount > 0 {
			entry.AverageFlightTime = round2(accum.totalMinutes / float64(accum.flightCount))
		}
		for aircraftID, minutes := range accum.aircraftTimes {
			serial, ok := serials[aircraftID]
			if !ok {
				serial = "Unknown"
			}
			entry.AircraftFlightTimes = append(entry.AircraftFlightTimes, AircraftFlightTime{
				AircraftID:      aircraftID,
				SerialNumber:    serial,
				InFlightMinutes: round2(minutes),
			})
		}
		sort.Slice(entry.AircraftFlightTimes, func(i, j int) bool {
			return entry.AircraftFlightTimes[i].AircraftID < entry.AircraftFlightTimes[j].AircraftID
		})
		airports = append(airports, entry)
		totalFlights += accum.flightCount
	}
	sort.Slice(airports, func(i, j int) bool {
		return airports[i].DepartureAirport < airports[j].DepartureAirport
	})

	return &Report{
		Airports: airports,
		Meta: ReportMeta{
			StartTime:     w.Start.Format(time.RFC3339),
			EndTime:       w.End.Format(time.RFC3339),
			TotalAirports: len(airports),
			TotalFlights:  totalFlights,
		},
	}
}

// overlapsWindow is the inclusive three-clause overlap test: departure
// inside the window, arrival inside the window, or the flight spanning the
// whole window. A flight that only touches a boundary (say, arrival equal
// to the window start) is included.
func overlapsWindow(f domain.Flight, w Window) bool {
	if !f.DepartureTime.Before(w.Start) && !f.DepartureTime.After(w.End) {
		return true
	}
	if !f.ArrivalTime.Before(w.Start) && !f.ArrivalTime.After(w.End) {
		return true
	}
	if !f.DepartureTime.After(w.Start) && !f.ArrivalTime.Before(w.End) {
		return true
	}
	return false
}

// inFlightMinutes is the portion of the flight's duration inside the
// window, in fractional minutes: the interval clipped to the window bounds,
// zero if the clipped interval is empty.
func inFlightMinutes(f domain.Flight, w Window) float64 {
	start := f.DepartureTime
	if start.Before(w.Start) {
		start = w.Start
	}
	end := f.ArrivalTime
	if end.After(w.End) {
		end = w.End
	}
	if start.Before(end) {
		return end.Sub(start).Minutes()
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
