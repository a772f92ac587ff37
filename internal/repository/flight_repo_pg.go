package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nickmwangemi/Flight-Management-API/internal/domain"
)

type FlightRepository interface {
	List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, f *domain.Flight) error
	Update(ctx context.Context, f *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	ListOverlapping(ctx context.Context, start, end time.Time) ([]domain.Flight, error)
	CountByAircraft(ctx context.Context, aircraftID int64) (int64, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, departure_airport, arrival_airport, departure_time, arrival_time, aircraft_id`

func (r *PGFlightRepository) List(ctx context.Context, filter domain.FlightFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights`

	var conds []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.DepartureAirport != "" {
		conds = append(conds, "departure_airport = "+arg(filter.DepartureAirport))
	}
	if filter.ArrivalAirport != "" {
		conds = append(conds, "arrival_airport = "+arg(filter.ArrivalAirport))
	}
	if filter.DepartureAfter != nil {
		conds = append(conds, "departure_time >= "+arg(*filter.DepartureAfter))
	}
	if filter.DepartureBefore != nil {
		conds = append(conds, "departure_time <= "+arg(*filter.DepartureBefore))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY departure_time"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureTime, &f.ArrivalTime, &f.AircraftID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	row := r.db.QueryRow(ctx,
		`INSERT INTO flights (departure_airport, arrival_airport, departure_time, arrival_time, aircraft_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		f.DepartureAirport, f.ArrivalAirport, f.DepartureTime, f.ArrivalTime, f.AircraftID)
	return row.Scan(&f.ID)
}

func (r *PGFlightRepository) Update(ctx context.Context, f *domain.Flight) error {
	res, err := r.db.Exec(ctx,
		`UPDATE flights SET departure_airport=$1, arrival_airport=$2, departure_time=$3, arrival_time=$4, aircraft_id=$5 WHERE id=$6`,
		f.DepartureAirport, f.ArrivalAirport, f.DepartureTime, f.ArrivalTime, f.AircraftID, f.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("flight %d: %w", f.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("flight %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListOverlapping selects flights that touch the window [start, end] under
// any of three inclusive conditions: departure inside the window, arrival
// inside the window, or the flight spanning the whole window. The
// three-clause form keeps boundary-touching flights included, for example
// an arrival exactly at start.
func (r *PGFlightRepository) ListOverlapping(ctx context.Context, start, end time.Time) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+flightColumns+` FROM flights
		 WHERE (departure_time >= $1 AND departure_time <= $2)
		    OR (arrival_time >= $1 AND arrival_time <= $2)
		    OR (departure_time <= $1 AND arrival_time >= $2)
		 ORDER BY departure_time`,
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFlights(rows)
}

func (r *PGFlightRepository) CountByAircraft(ctx context.Context, aircraftID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM flights WHERE aircraft_id=$1`, aircraftID).Scan(&count)
	return count, err
}

func scanFlights(rows pgx.Rows) ([]domain.Flight, error) {
	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.DepartureAirport, &f.ArrivalAirport, &f.DepartureTime, &f.ArrivalTime, &f.AircraftID); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

var _ FlightRepository = (*PGFlightRepository)(nil)
