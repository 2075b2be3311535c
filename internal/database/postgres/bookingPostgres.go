package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wanderbook/backend/internal/entity"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `
	id, trip_id, user_id, booking_type, price, currency, status,
	provider_name, provider_id, created_at, event_id,
	offer_id, departure, destination, depart_date, return_date, airline, adults,
	hotel_name, hotel_city, check_in, check_out, guests,
	activity_name, activity_date, activity_duration
`

// execer lets insertBooking run against either the pool or an open
// transaction (package projection inserts its rows inside one).
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	now := time.Now().UTC()

	if err := insertBooking(ctx, r.db, booking, now); err != nil {
		return err
	}

	booking.CreatedAt = now
	return nil
}

func insertBooking(ctx context.Context, ex execer, booking *entity.Booking, now time.Time) error {
	query := `
		INSERT INTO bookings (
			id, trip_id, user_id, booking_type, price, currency, status,
			provider_name, provider_id, created_at, event_id,
			offer_id, departure, destination, depart_date, return_date, airline, adults,
			hotel_name, hotel_city, check_in, check_out, guests,
			activity_name, activity_date, activity_duration
		) VALUES (
			$1, NULLIF($2, ''), $3, $4, $5, $6, $7,
			NULLIF($8, ''), NULLIF($9, ''), $10, $11,
			NULLIF($12, ''), NULLIF($13, ''), NULLIF($14, ''), NULLIF($15, ''), NULLIF($16, ''), NULLIF($17, ''), $18,
			NULLIF($19, ''), NULLIF($20, ''), NULLIF($21, ''), NULLIF($22, ''), $23,
			NULLIF($24, ''), NULLIF($25, ''), NULLIF($26, '')
		)
	`

	_, err := ex.ExecContext(ctx, query,
		booking.ID,
		booking.TripID,
		booking.UserID,
		booking.BookingType,
		booking.Price,
		booking.Currency,
		booking.Status,
		booking.ProviderName,
		booking.ProviderID,
		now,
		booking.EventID,
		booking.OfferID,
		booking.Departure,
		booking.Destination,
		booking.DepartDate,
		booking.ReturnDate,
		booking.Airline,
		booking.Adults,
		booking.HotelName,
		booking.HotelCity,
		booking.CheckIn,
		booking.CheckOut,
		booking.Guests,
		booking.ActivityName,
		booking.ActivityDate,
		booking.ActivityDuration,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBookingRow(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

func (r *bookingRepository) GetByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings by user: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) GetByTripID(ctx context.Context, tripID string) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE trip_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings by trip: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBookingRow(row rowScanner) (*entity.Booking, error) {
	var (
		booking entity.Booking

		tripID, providerName, providerID             sql.NullString
		offerID, departure, destination              sql.NullString
		departDate, returnDate, airline              sql.NullString
		hotelName, hotelCity, checkIn, checkOut      sql.NullString
		activityName, activityDate, activityDuration sql.NullString
		userID                                       sql.NullInt64
		adults, guests                               sql.NullInt64
	)

	err := row.Scan(
		&booking.ID,
		&tripID,
		&userID,
		&booking.BookingType,
		&booking.Price,
		&booking.Currency,
		&booking.Status,
		&providerName,
		&providerID,
		&booking.CreatedAt,
		&booking.EventID,
		&offerID,
		&departure,
		&destination,
		&departDate,
		&returnDate,
		&airline,
		&adults,
		&hotelName,
		&hotelCity,
		&checkIn,
		&checkOut,
		&guests,
		&activityName,
		&activityDate,
		&activityDuration,
	)
	if err != nil {
		return nil, err
	}

	booking.TripID = tripID.String
	booking.UserID = userID.Int64
	booking.ProviderName = providerName.String
	booking.ProviderID = providerID.String
	booking.OfferID = offerID.String
	booking.Departure = departure.String
	booking.Destination = destination.String
	booking.DepartDate = departDate.String
	booking.ReturnDate = returnDate.String
	booking.Airline = airline.String
	booking.Adults = int(adults.Int64)
	booking.HotelName = hotelName.String
	booking.HotelCity = hotelCity.String
	booking.CheckIn = checkIn.String
	booking.CheckOut = checkOut.String
	booking.Guests = int(guests.Int64)
	booking.ActivityName = activityName.String
	booking.ActivityDate = activityDate.String
	booking.ActivityDuration = activityDuration.String

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}
