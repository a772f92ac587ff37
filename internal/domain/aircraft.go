package domain

// Aircraft is a single asset in the fleet. SerialNumber is unique across
// all aircraft; Manufacturer is free text.
type Aircraft struct {
	ID           int64
	SerialNumber string
	Manufacturer string
}
