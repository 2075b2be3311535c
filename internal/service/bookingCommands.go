package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	repository "github.com/wanderbook/backend/internal/database/postgres"
	"github.com/wanderbook/backend/internal/entity"
)

const defaultCurrency = "EUR"

type bookingCommands struct {
	events   repository.EventStore
	bookings repository.BookingRepository
	trips    repository.TripRepository
	notifier EventNotifier
}

// NewBookingCommands creates the write-side handler. The event store is an
// injected dependency; its lifecycle belongs to the server, not this package.
func NewBookingCommands(
	events repository.EventStore,
	bookings repository.BookingRepository,
	trips repository.TripRepository,
	notifier EventNotifier,
) BookingCommands {
	return &bookingCommands{
		events:   events,
		bookings: bookings,
		trips:    trips,
		notifier: notifier,
	}
}

// BookFlight turns a flight booking intent into exactly one durable event and
// one read-model row. The event append is the durability boundary: if it
// fails, no row is created and the command fails.
func (s *bookingCommands) BookFlight(ctx context.Context, req *BookFlightRequest) (*BookingConfirmation, error) {
	if err := s.validateFlightRequest(req); err != nil {
		return nil, err
	}
	if req.Adults == 0 {
		req.Adults = 1
	}

	bookingID := uuid.NewString()

	event := entity.NewEvent(bookingID, entity.FlightBookedPayload{
		UserID:      req.UserID,
		OfferID:     req.OfferID,
		Departure:   req.Departure,
		Destination: req.Destination,
		DepartDate:  req.DepartDate,
		ReturnDate:  req.ReturnDate,
		Price:       req.Price,
		Adults:      req.Adults,
	})

	if err := s.events.Append(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save booking event: %w", err)
	}

	booking := &entity.Booking{
		ID:          bookingID,
		UserID:      req.UserID,
		BookingType: entity.BookingTypeFlight,
		Price:       req.Price,
		Currency:    defaultCurrency,
		Status:      entity.BookingStatusConfirmed,
		EventID:     event.EventID,
		OfferID:     req.OfferID,
		Departure:   req.Departure,
		Destination: req.Destination,
		DepartDate:  req.DepartDate,
		ReturnDate:  req.ReturnDate,
		Adults:      req.Adults,
	}

	if err := s.project(ctx, booking); err != nil {
		return nil, err
	}

	confirmation := s.confirm(booking, event)
	s.notify(ctx, confirmation)
	return confirmation, nil
}

func (s *bookingCommands) BookHotel(ctx context.Context, req *BookHotelRequest) (*BookingConfirmation, error) {
	if err := s.validateHotelRequest(req); err != nil {
		return nil, err
	}
	if req.Adults == 0 {
		req.Adults = 1
	}

	bookingID := uuid.NewString()

	event := entity.NewEvent(bookingID, entity.HotelBookedPayload{
		UserID:    req.UserID,
		HotelName: req.HotelName,
		HotelCity: req.HotelCity,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Price:     req.Price,
		Adults:    req.Adults,
	})

	if err := s.events.Append(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save booking event: %w", err)
	}

	booking := &entity.Booking{
		ID:          bookingID,
		UserID:      req.UserID,
		BookingType: entity.BookingTypeHotel,
		Price:       req.Price,
		Currency:    defaultCurrency,
		Status:      entity.BookingStatusConfirmed,
		EventID:     event.EventID,
		HotelName:   req.HotelName,
		HotelCity:   req.HotelCity,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Guests:      req.Adults,
	}

	if err := s.project(ctx, booking); err != nil {
		return nil, err
	}

	confirmation := s.confirm(booking, event)
	s.notify(ctx, confirmation)
	return confirmation, nil
}

func (s *bookingCommands) BookActivity(ctx context.Context, req *BookActivityRequest) (*BookingConfirmation, error) {
	if err := s.validateActivityRequest(req); err != nil {
		return nil, err
	}

	bookingID := uuid.NewString()

	event := entity.NewEvent(bookingID, entity.ActivityBookedPayload{
		UserID:       req.UserID,
		ActivityName: req.ActivityName,
		ActivityDate: req.ActivityDate,
		Duration:     req.Duration,
		Price:        req.Price,
	})

	if err := s.events.Append(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save booking event: %w", err)
	}

	booking := &entity.Booking{
		ID:               bookingID,
		UserID:           req.UserID,
		BookingType:      entity.BookingTypeActivity,
		Price:            req.Price,
		Currency:         defaultCurrency,
		Status:           entity.BookingStatusConfirmed,
		EventID:          event.EventID,
		ActivityName:     req.ActivityName,
		ActivityDate:     req.ActivityDate,
		ActivityDuration: req.Duration,
	}

	if err := s.project(ctx, booking); err != nil {
		return nil, err
	}

	confirmation := s.confirm(booking, event)
	s.notify(ctx, confirmation)
	return confirmation, nil
}

// BookPackage is the composite command: one trip plus two or more bookings
// from a single request. All constituent events go through one AppendBatch,
// and the projection commits the trip with its children as a unit, so neither
// side can end up with a partial package.
func (s *bookingCommands) BookPackage(ctx context.Context, req *BookPackageRequest) (*BookingConfirmation, error) {
	if err := s.validatePackageRequest(req); err != nil {
		return nil, err
	}
	if req.Adults == 0 {
		req.Adults = 1
	}

	tripID := uuid.NewString()
	flightBookingID := uuid.NewString()
	hotelBookingID := uuid.NewString()

	hotelCheckOut := req.ReturnDate
	if hotelCheckOut == "" {
		hotelCheckOut = req.DepartDate
	}

	totalPrice := req.FlightPrice + req.HotelPrice

	flightEvent := entity.NewEvent(flightBookingID, entity.FlightBookedPayload{
		TripID:      tripID,
		UserID:      req.UserID,
		OfferID:     req.OfferID,
		Departure:   req.Departure,
		Destination: req.Destination,
		DepartDate:  req.DepartDate,
		ReturnDate:  req.ReturnDate,
		Price:       req.FlightPrice,
		Adults:      req.Adults,
	})

	hotelEvent := entity.NewEvent(hotelBookingID, entity.HotelBookedPayload{
		TripID:    tripID,
		UserID:    req.UserID,
		HotelName: req.HotelName,
		HotelCity: req.HotelCity,
		CheckIn:   req.DepartDate,
		CheckOut:  hotelCheckOut,
		Price:     req.HotelPrice,
		Adults:    req.Adults,
	})

	events := make([]*entity.Event, 0, 4)
	bookings := []*entity.Booking{
		{
			ID:          flightBookingID,
			TripID:      tripID,
			UserID:      req.UserID,
			BookingType: entity.BookingTypeFlight,
			Price:       req.FlightPrice,
			Currency:    defaultCurrency,
			Status:      entity.BookingStatusConfirmed,
			EventID:     flightEvent.EventID,
			OfferID:     req.OfferID,
			Departure:   req.Departure,
			Destination: req.Destination,
			DepartDate:  req.DepartDate,
			ReturnDate:  req.ReturnDate,
			Adults:      req.Adults,
		},
		{
			ID:          hotelBookingID,
			TripID:      tripID,
			UserID:      req.UserID,
			BookingType: entity.BookingTypeHotel,
			Price:       req.HotelPrice,
			Currency:    defaultCurrency,
			Status:      entity.BookingStatusConfirmed,
			EventID:     hotelEvent.EventID,
			HotelName:   req.HotelName,
			HotelCity:   req.HotelCity,
			CheckIn:     req.DepartDate,
			CheckOut:    hotelCheckOut,
			Guests:      req.Adults,
		},
	}

	if req.ActivityName != "" {
		activityBookingID := uuid.NewString()
		activityDate := req.ActivityDate
		if activityDate == "" {
			activityDate = req.DepartDate
		}

		activityEvent := entity.NewEvent(activityBookingID, entity.ActivityBookedPayload{
			TripID:       tripID,
			UserID:       req.UserID,
			ActivityName: req.ActivityName,
			ActivityDate: activityDate,
			Price:        req.ActivityPrice,
		})

		totalPrice += req.ActivityPrice
		events = append(events, activityEvent)
		bookings = append(bookings, &entity.Booking{
			ID:           activityBookingID,
			TripID:       tripID,
			UserID:       req.UserID,
			BookingType:  entity.BookingTypeActivity,
			Price:        req.ActivityPrice,
			Currency:     defaultCurrency,
			Status:       entity.BookingStatusConfirmed,
			EventID:      activityEvent.EventID,
			ActivityName: req.ActivityName,
			ActivityDate: activityDate,
		})
	}

	tripEvent := entity.NewEvent(tripID, entity.TripCreatedPayload{
		TripID:      tripID,
		UserID:      req.UserID,
		Name:        fmt.Sprintf("Trip to %s", req.Destination),
		Destination: req.Destination,
		StartDate:   req.DepartDate,
		EndDate:     req.ReturnDate,
		TotalPrice:  totalPrice,
		Currency:    defaultCurrency,
		Status:      string(entity.BookingStatusConfirmed),
	})

	// Trip first, then its constituents, in one all-or-nothing batch.
	events = append([]*entity.Event{tripEvent, flightEvent, hotelEvent}, events...)

	if err := s.events.AppendBatch(ctx, events); err != nil {
		return nil, fmt.Errorf("failed to save package events: %w", err)
	}

	trip := &entity.Trip{
		ID:          tripID,
		UserID:      req.UserID,
		Name:        fmt.Sprintf("Trip to %s", req.Destination),
		Destination: req.Destination,
		StartDate:   req.DepartDate,
		EndDate:     req.ReturnDate,
		TotalPrice:  totalPrice,
		Currency:    defaultCurrency,
		Status:      entity.BookingStatusConfirmed,
	}

	if err := s.trips.CreateWithBookings(ctx, trip, bookings); err != nil {
		// Events are durable but the read model is behind; an operator must
		// reconcile from the event log.
		logrus.WithFields(logrus.Fields{
			"trip_id":  tripID,
			"event_id": tripEvent.EventID,
		}).Errorf("package projection failed, read model behind event log: %v", err)
		return nil, fmt.Errorf("package booked but failed to update view, reference %s: %w", tripID, err)
	}

	confirmation := &BookingConfirmation{
		BookingID: tripID,
		TripID:    tripID,
		EventID:   tripEvent.EventID,
		Status:    entity.BookingStatusConfirmed,
		Price:     totalPrice,
		CreatedAt: tripEvent.Timestamp,
	}
	s.notify(ctx, confirmation)
	return confirmation, nil
}

// CancelBooking appends a BookingCancelled event and transitions the booking
// row to CANCELLED. Only REQUESTED, CONFIRMED and HELD bookings may cancel.
func (s *bookingCommands) CancelBooking(ctx context.Context, req *CancelBookingRequest) (*BookingConfirmation, error) {
	if strings.TrimSpace(req.BookingID) == "" {
		return nil, fmt.Errorf("%w: booking id is required", entity.ErrValidation)
	}

	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Cancellable() {
		return nil, fmt.Errorf("%w: status %s", entity.ErrBookingNotCancellable, booking.Status)
	}

	event := entity.NewEvent(booking.ID, entity.BookingCancelledPayload{
		BookingID: booking.ID,
		Reason:    req.Reason,
	})

	if err := s.events.Append(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to save cancellation event: %w", err)
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
		logrus.WithField("booking_id", booking.ID).
			Errorf("cancellation projection failed, read model behind event log: %v", err)
		return nil, fmt.Errorf("cancellation recorded but failed to update view, reference %s: %w", booking.ID, err)
	}

	return &BookingConfirmation{
		BookingID: booking.ID,
		TripID:    booking.TripID,
		EventID:   event.EventID,
		Status:    entity.BookingStatusCancelled,
		Price:     booking.Price,
		CreatedAt: event.Timestamp,
	}, nil
}

// project inserts a single booking row derived from the same data that
// produced its event. The event is already durable at this point.
func (s *bookingCommands) project(ctx context.Context, booking *entity.Booking) error {
	if err := s.bookings.Create(ctx, booking); err != nil {
		logrus.WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"event_id":   booking.EventID,
		}).Errorf("projection failed, read model behind event log: %v", err)
		return fmt.Errorf("booking recorded but failed to update view, reference %s: %w", booking.ID, err)
	}
	return nil
}

func (s *bookingCommands) confirm(booking *entity.Booking, event *entity.Event) *BookingConfirmation {
	return &BookingConfirmation{
		BookingID: booking.ID,
		TripID:    booking.TripID,
		EventID:   event.EventID,
		Status:    booking.Status,
		Price:     booking.Price,
		CreatedAt: event.Timestamp,
	}
}

func (s *bookingCommands) notify(ctx context.Context, confirmation *BookingConfirmation) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, confirmation); err != nil {
		logrus.WithField("booking_id", confirmation.BookingID).
			Warnf("failed to publish booking notification: %v", err)
	}
}

// Validation happens before any event is constructed: a rejected command
// leaves no partial event and no partial row behind.

func (s *bookingCommands) validateFlightRequest(req *BookFlightRequest) error {
	if strings.TrimSpace(req.OfferID) == "" {
		return fmt.Errorf("%w: offer id is required", entity.ErrValidation)
	}
	if strings.TrimSpace(req.Departure) == "" || strings.TrimSpace(req.Destination) == "" {
		return fmt.Errorf("%w: departure and destination are required", entity.ErrValidation)
	}
	if req.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", entity.ErrValidation)
	}
	if req.Adults < 0 || req.Adults > 9 {
		return fmt.Errorf("%w: number of adults must be between 1 and 9", entity.ErrValidation)
	}
	return validateTravelDates(req.DepartDate, req.ReturnDate)
}

func (s *bookingCommands) validateHotelRequest(req *BookHotelRequest) error {
	if strings.TrimSpace(req.HotelName) == "" || strings.TrimSpace(req.HotelCity) == "" {
		return fmt.Errorf("%w: hotel name and city are required", entity.ErrValidation)
	}
	if req.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", entity.ErrValidation)
	}

	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		return fmt.Errorf("%w: invalid check-in date format", entity.ErrValidation)
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		return fmt.Errorf("%w: invalid check-out date format", entity.ErrValidation)
	}
	if checkIn.Before(today()) {
		return fmt.Errorf("%w: check-in must be in the future", entity.ErrValidation)
	}
	if !checkOut.After(checkIn) {
		return fmt.Errorf("%w: check-out must be after check-in", entity.ErrValidation)
	}
	return nil
}

func (s *bookingCommands) validateActivityRequest(req *BookActivityRequest) error {
	if strings.TrimSpace(req.ActivityName) == "" {
		return fmt.Errorf("%w: activity name is required", entity.ErrValidation)
	}
	if _, err := time.Parse(dateLayout, req.ActivityDate); err != nil {
		return fmt.Errorf("%w: invalid activity date format", entity.ErrValidation)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", entity.ErrValidation)
	}
	return nil
}

func (s *bookingCommands) validatePackageRequest(req *BookPackageRequest) error {
	if strings.TrimSpace(req.OfferID) == "" {
		return fmt.Errorf("%w: offer id is required", entity.ErrValidation)
	}
	if strings.TrimSpace(req.HotelName) == "" || strings.TrimSpace(req.HotelCity) == "" {
		return fmt.Errorf("%w: hotel name and city are required", entity.ErrValidation)
	}
	if req.FlightPrice <= 0 || req.HotelPrice <= 0 {
		return fmt.Errorf("%w: constituent prices must be positive", entity.ErrValidation)
	}
	if req.ActivityName != "" && req.ActivityPrice < 0 {
		return fmt.Errorf("%w: activity price must not be negative", entity.ErrValidation)
	}
	if req.Adults < 0 || req.Adults > 9 {
		return fmt.Errorf("%w: number of adults must be between 1 and 9", entity.ErrValidation)
	}
	return validateTravelDates(req.DepartDate, req.ReturnDate)
}

func validateTravelDates(departDate, returnDate string) error {
	depart, err := time.Parse(dateLayout, departDate)
	if err != nil {
		return fmt.Errorf("%w: invalid departure date format, use YYYY-MM-DD", entity.ErrValidation)
	}
	if depart.Before(today()) {
		return fmt.Errorf("%w: cannot book in the past", entity.ErrValidation)
	}

	if returnDate != "" {
		returnDt, err := time.Parse(dateLayout, returnDate)
		if err != nil {
			return fmt.Errorf("%w: invalid return date format, use YYYY-MM-DD", entity.ErrValidation)
		}
		if !returnDt.After(depart) {
			return fmt.Errorf("%w: return date must be after departure date", entity.ErrValidation)
		}
	}
	return nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
