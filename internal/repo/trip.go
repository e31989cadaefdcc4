// Package repo contains all database access logic for the trip planner API.
// Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"trip-planner-service/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and
// pgx.Tx. Accepting this interface instead of *pgxpool.Pool directly allows
// integration tests to pass a transaction that is rolled back after each
// test, giving free per-test isolation. Begin is included because entry
// writes and their rollup recomputation run in one transaction; on a pgx.Tx
// it opens a savepoint, so the test pattern still holds.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id and created_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns one page of trips ordered by created_at descending,
	// together with the total row count.
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error)

	// Delete removes a trip by ID, cascading to its daily logs and entries.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback
// isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, driver_name,
	pickup_lat, pickup_lon, pickup_address,
	dropoff_lat, dropoff_lon, dropoff_address,
	start_time, cycle_used_hours, status, created_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (driver_name,
			pickup_lat, pickup_lon, pickup_address,
			dropoff_lat, dropoff_lon, dropoff_address,
			start_time, cycle_used_hours, status)
		VALUES (@driver_name,
			@pickup_lat, @pickup_lon, @pickup_address,
			@dropoff_lat, @dropoff_lon, @dropoff_address,
			@start_time, @cycle_used_hours, @status)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"driver_name":      trip.DriverName,
		"pickup_lat":       trip.PickupLocation.Lat,
		"pickup_lon":       trip.PickupLocation.Lon,
		"pickup_address":   trip.PickupLocation.Address,
		"dropoff_lat":      trip.DropoffLocation.Lat,
		"dropoff_lon":      trip.DropoffLocation.Lon,
		"dropoff_address":  trip.DropoffLocation.Address,
		"start_time":       trip.StartTime,
		"cycle_used_hours": trip.CycleUsedHours,
		"status":           trip.Status,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) List(ctx context.Context, params domain.PaginationParams) ([]domain.Trip, int64, error) {
	const q = `
		SELECT ` + tripColumns + `, count(*) OVER () AS total
		FROM trips
		ORDER BY created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"limit":  params.Limit,
		"offset": params.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var (
		trips []domain.Trip
		total int64
	)
	for rows.Next() {
		t, n, err := scanTripWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
		total = n
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	return trips, total, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: trip %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.DriverName,
		&t.PickupLocation.Lat, &t.PickupLocation.Lon, &t.PickupLocation.Address,
		&t.DropoffLocation.Lat, &t.DropoffLocation.Lon, &t.DropoffLocation.Address,
		&t.StartTime, &t.CycleUsedHours, &t.Status, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}

func scanTripWithTotal(s scanner) (domain.Trip, int64, error) {
	var (
		t     domain.Trip
		id    pgtype.UUID
		total int64
	)

	err := s.Scan(&id, &t.DriverName,
		&t.PickupLocation.Lat, &t.PickupLocation.Lon, &t.PickupLocation.Address,
		&t.DropoffLocation.Lat, &t.DropoffLocation.Lon, &t.DropoffLocation.Address,
		&t.StartTime, &t.CycleUsedHours, &t.Status, &t.CreatedAt, &total)
	if err != nil {
		return domain.Trip{}, 0, err
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, total, nil
}
