package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wanderbook/backend/internal/entity"
)

type tripRepository struct {
	db *sql.DB
}

func NewTripRepository(db *sql.DB) TripRepository {
	return &tripRepository{db: db}
}

const tripColumns = `id, user_id, name, destination, start_date, end_date, total_price, currency, status, created_at, updated_at`

func (r *tripRepository) Create(ctx context.Context, trip *entity.Trip) error {
	now := time.Now().UTC()

	if err := insertTrip(ctx, r.db, trip, now); err != nil {
		return err
	}

	trip.CreatedAt = now
	trip.UpdatedAt = now
	return nil
}

// CreateWithBookings projects a package purchase as a unit: the trip row and
// every child booking row commit in one transaction, so the read model never
// shows a trip with a partial set of children.
func (r *tripRepository) CreateWithBookings(ctx context.Context, trip *entity.Trip, bookings []*entity.Booking) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	if err := insertTrip(ctx, tx, trip, now); err != nil {
		return err
	}
	for _, booking := range bookings {
		if err := insertBooking(ctx, tx, booking, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit package projection: %w", err)
	}

	trip.CreatedAt = now
	trip.UpdatedAt = now
	for _, booking := range bookings {
		booking.CreatedAt = now
	}

	return nil
}

func insertTrip(ctx context.Context, ex execer, trip *entity.Trip, now time.Time) error {
	query := `
		INSERT INTO trips (
			id, user_id, name, destination, start_date, end_date,
			total_price, currency, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''),
			$7, $8, $9, $10, $10
		)
	`

	_, err := ex.ExecContext(ctx, query,
		trip.ID,
		trip.UserID,
		trip.Name,
		trip.Destination,
		trip.StartDate,
		trip.EndDate,
		trip.TotalPrice,
		trip.Currency,
		trip.Status,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}

	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, id string) (*entity.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTripRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return trip, nil
}

func (r *tripRepository) GetByUserID(ctx context.Context, userID int64) ([]*entity.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips by user: %w", err)
	}
	defer rows.Close()

	var trips []*entity.Trip
	for rows.Next() {
		trip, err := scanTripRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trips: %w", err)
	}

	return trips, nil
}

func (r *tripRepository) UpdateStatus(ctx context.Context, id string, status entity.BookingStatus) error {
	query := `UPDATE trips SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update trip status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrTripNotFound
	}

	return nil
}

func scanTripRow(row rowScanner) (*entity.Trip, error) {
	var (
		trip entity.Trip

		destination, startDate, endDate sql.NullString
		updatedAt                       sql.NullTime
	)

	err := row.Scan(
		&trip.ID,
		&trip.UserID,
		&trip.Name,
		&destination,
		&startDate,
		&endDate,
		&trip.TotalPrice,
		&trip.Currency,
		&trip.Status,
		&trip.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	trip.Destination = destination.String
	trip.StartDate = startDate.String
	trip.EndDate = endDate.String
	trip.UpdatedAt = updatedAt.Time

	return &trip, nil
}
