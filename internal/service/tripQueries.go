package service

import (
	"context"
	"fmt"

	repository "github.com/wanderbook/backend/internal/database/postgres"
	"github.com/wanderbook/backend/internal/entity"
)

type tripQueries struct {
	trips    repository.TripRepository
	bookings repository.BookingRepository
}

func NewTripQueries(trips repository.TripRepository, bookings repository.BookingRepository) TripQueries {
	return &tripQueries{
		trips:    trips,
		bookings: bookings,
	}
}

func (s *tripQueries) GetUserTrips(ctx context.Context, userID int64) ([]*entity.Trip, error) {
	trips, err := s.trips.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user trips: %w", err)
	}
	return trips, nil
}

// GetTripDetails joins a trip with its child bookings. A trip belonging to a
// different user is reported as not found rather than forbidden.
func (s *tripQueries) GetTripDetails(ctx context.Context, tripID string, userID int64) (*entity.TripDetails, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.UserID != userID {
		return nil, entity.ErrTripNotFound
	}

	bookings, err := s.bookings.GetByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip bookings: %w", err)
	}

	return &entity.TripDetails{
		Trip:     *trip,
		Bookings: bookings,
	}, nil
}
