package domain

import "encoding/json"

// Optional carries partial-update semantics for a single JSON field: it
// distinguishes "omitted" (Set false) from "explicitly null" (Set true,
// Valid false) from "set to a value" (Set and Valid true). Key-presence
// checks on a raw map would lose this distinction after decoding.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some wraps a present, non-null value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null is a present-but-null value.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
