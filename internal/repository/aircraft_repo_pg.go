package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nickmwangemi/Flight-Management-API/internal/domain"
)

type AircraftRepository interface {
	List(ctx context.Context) ([]domain.Aircraft, error)
	GetByID(ctx context.Context, id int64) (*domain.Aircraft, error)
	GetBySerialNumber(ctx context.Context, serial string) (*domain.Aircraft, error)
	Create(ctx context.Context, a *domain.Aircraft) error
	Update(ctx context.Context, a *domain.Aircraft) error
	Delete(ctx context.Context, id int64) error
	SerialNumbers(ctx context.Context, ids []int64) (map[int64]string, error)
}

type PGAircraftRepository struct {
	db *pgxpool.Pool
}

func NewAircraftRepository(db *pgxpool.Pool) AircraftRepository {
	return &PGAircraftRepository{db: db}
}

func (r *PGAircraftRepository) List(ctx context.Context) ([]domain.Aircraft, error) {
	rows, err := r.db.Query(ctx, `SELECT id, serial_number, manufacturer FROM aircraft ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	aircraft := make([]domain.Aircraft, 0)
	for rows.Next() {
		var a domain.Aircraft
		if err := rows.Scan(&a.ID, &a.SerialNumber, &a.Manufacturer); err != nil {
			return nil, err
		}
		aircraft = append(aircraft, a)
	}
	return aircraft, rows.Err()
}

func (r *PGAircraftRepository) GetByID(ctx context.Context, id int64) (*domain.Aircraft, error) {
	row := r.db.QueryRow(ctx, `SELECT id, serial_number, manufacturer FROM aircraft WHERE id=$1`, id)
	var a domain.Aircraft
	if err := row.Scan(&a.ID, &a.SerialNumber, &a.Manufacturer); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("aircraft %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAircraftRepository) GetBySerialNumber(ctx context.Context, serial string) (*domain.Aircraft, error) {
	row := r.db.QueryRow(ctx, `SELECT id, serial_number, manufacturer FROM aircraft WHERE serial_number=$1`, serial)
	var a domain.Aircraft
	if err := row.Scan(&a.ID, &a.SerialNumber, &a.Manufacturer); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("aircraft with serial number '%s': %w", serial, domain.ErrNotFound)
		}
		return nil, err
	}
	return &a, nil
}

func (r *PGAircraftRepository) Create(ctx context.Context, a *domain.Aircraft) error {
	row := r.db.QueryRow(ctx,
		`INSERT INTO aircraft (serial_number, manufacturer) VALUES ($1, $2) RETURNING id`,
		a.SerialNumber, a.Manufacturer)
	if err := row.Scan(&a.ID); err != nil {
		return mapAircraftConstraint(err, a.SerialNumber)
	}
	return nil
}

func (r *PGAircraftRepository) Update(ctx context.Context, a *domain.Aircraft) error {
	res, err := r.db.Exec(ctx,
		`UPDATE aircraft SET serial_number=$1, manufacturer=$2 WHERE id=$3`,
		a.SerialNumber, a.Manufacturer, a.ID)
	if err != nil {
		return mapAircraftConstraint(err, a.SerialNumber)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("aircraft %d: %w", a.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes an aircraft inside a transaction, re-checking the flight
// reference count so a concurrent assignment cannot slip between the check
// and the delete. The flights FK is ON DELETE RESTRICT as a backstop.
func (r *PGAircraftRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var refs int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM flights WHERE aircraft_id=$1`, id).Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return fmt.Errorf("aircraft %d is assigned to %d flights: %w", id, refs, domain.ErrPreconditionFailed)
	}

	res, err := tx.Exec(ctx, `DELETE FROM aircraft WHERE id=$1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("aircraft %d is assigned to flights: %w", id, domain.ErrPreconditionFailed)
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("aircraft %d: %w", id, domain.ErrNotFound)
	}
	return tx.Commit(ctx)
}

func (r *PGAircraftRepository) SerialNumbers(ctx context.Context, ids []int64) (map[int64]string, error) {
	serials := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return serials, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, serial_number FROM aircraft WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var serial string
		if err := rows.Scan(&id, &serial); err != nil {
			return nil, err
		}
		serials[id] = serial
	}
	return serials, rows.Err()
}

// mapAircraftConstraint turns a unique-constraint violation into the
// Conflict kind. The DB constraint is the correctness backstop against two
// concurrent creations with the same serial number.
func mapAircraftConstraint(err error, serial string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("aircraft with serial number '%s': %w", serial, domain.ErrConflict)
	}
	return err
}

var _ AircraftRepository = (*PGAircraftRepository)(nil)
