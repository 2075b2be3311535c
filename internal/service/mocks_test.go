package service

import (
	"context"
	"sync"

	"github.com/wanderbook/backend/internal/entity"
	"github.com/wanderbook/backend/internal/gateway"
)

// fakeEventStore is an in-memory append-only log. It records the order of
// store operations so tests can assert that events become durable before the
// read model is touched.
type fakeEventStore struct {
	mu         sync.Mutex
	events     []*entity.Event
	appendErr  error
	operations *opLog
}

func newFakeEventStore(ops *opLog) *fakeEventStore {
	return &fakeEventStore{operations: ops}
}

func (s *fakeEventStore) Append(ctx context.Context, event *entity.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.operations.record("append")
	if s.appendErr != nil {
		return s.appendErr
	}
	for _, existing := range s.events {
		if existing.EventID == event.EventID {
			return entity.ErrEventExists
		}
	}
	s.events = append(s.events, event)
	return nil
}

func (s *fakeEventStore) AppendBatch(ctx context.Context, events []*entity.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.operations.record("append_batch")
	if s.appendErr != nil {
		return s.appendErr
	}
	s.events = append(s.events, events...)
	return nil
}

func (s *fakeEventStore) GetByAggregate(ctx context.Context, aggregateID string) ([]*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.Event
	for _, event := range s.events {
		if event.AggregateID == aggregateID {
			out = append(out, event)
		}
	}
	return out, nil
}

func (s *fakeEventStore) GetAll(ctx context.Context, eventType entity.EventType) ([]*entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.Event
	for _, event := range s.events {
		if eventType == "" || event.Type == eventType {
			out = append(out, event)
		}
	}
	return out, nil
}

func (s *fakeEventStore) CountEvents(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.events)), nil
}

// fakeBookingRepo is an in-memory booking projection.
type fakeBookingRepo struct {
	mu         sync.Mutex
	bookings   map[string]*entity.Booking
	createErr  error
	updateErr  error
	operations *opLog
}

func newFakeBookingRepo(ops *opLog) *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:   make(map[string]*entity.Booking),
		operations: ops,
	}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.operations.record("create_booking")
	if r.createErr != nil {
		return r.createErr
	}
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, entity.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) GetByUserID(ctx context.Context, userID int64) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Booking
	for _, booking := range r.bookings {
		if booking.UserID == userID {
			copied := *booking
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByTripID(ctx context.Context, tripID string) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Booking
	for _, booking := range r.bookings {
		if booking.TripID == tripID {
			copied := *booking
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id string, status entity.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.updateErr != nil {
		return r.updateErr
	}
	booking, ok := r.bookings[id]
	if !ok {
		return entity.ErrBookingNotFound
	}
	booking.Status = status
	return nil
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

// fakeTripRepo is an in-memory trip projection.
type fakeTripRepo struct {
	mu         sync.Mutex
	trips      map[string]*entity.Trip
	bookings   *fakeBookingRepo
	createErr  error
	operations *opLog
}

func newFakeTripRepo(ops *opLog, bookings *fakeBookingRepo) *fakeTripRepo {
	return &fakeTripRepo{
		trips:      make(map[string]*entity.Trip),
		bookings:   bookings,
		operations: ops,
	}
}

func (r *fakeTripRepo) Create(ctx context.Context, trip *entity.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.operations.record("create_trip")
	if r.createErr != nil {
		return r.createErr
	}
	copied := *trip
	r.trips[trip.ID] = &copied
	return nil
}

func (r *fakeTripRepo) CreateWithBookings(ctx context.Context, trip *entity.Trip, bookings []*entity.Booking) error {
	r.operations.record("create_trip_with_bookings")
	if r.createErr != nil {
		return r.createErr
	}

	r.mu.Lock()
	copied := *trip
	r.trips[trip.ID] = &copied
	r.mu.Unlock()

	for _, booking := range bookings {
		if err := r.bookings.Create(ctx, booking); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeTripRepo) GetByID(ctx context.Context, id string) (*entity.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip, ok := r.trips[id]
	if !ok {
		return nil, entity.ErrTripNotFound
	}
	copied := *trip
	return &copied, nil
}

func (r *fakeTripRepo) GetByUserID(ctx context.Context, userID int64) ([]*entity.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Trip
	for _, trip := range r.trips {
		if trip.UserID == userID {
			copied := *trip
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTripRepo) UpdateStatus(ctx context.Context, id string, status entity.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	trip, ok := r.trips[id]
	if !ok {
		return entity.ErrTripNotFound
	}
	trip.Status = status
	return nil
}

// opLog collects the sequence of side effects across fakes.
type opLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *opLog) record(op string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, op)
}

func (l *opLog) sequence() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.ops))
	copy(out, l.ops)
	return out
}

// fakeNotifier captures published confirmations.
type fakeNotifier struct {
	mu            sync.Mutex
	confirmations []*BookingConfirmation
	err           error
}

func (n *fakeNotifier) Notify(ctx context.Context, confirmation *BookingConfirmation) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.confirmations = append(n.confirmations, confirmation)
	return nil
}

// stubGateway returns fixed offers and counts calls, so query tests control
// the collaborator output exactly.
type stubGateway struct {
	mu           sync.Mutex
	flights      []entity.FlightOffer
	hotels       []entity.HotelOffer
	details      *entity.OfferDetails
	flightsErr   error
	hotelsErr    error
	detailsErr   error
	flightCalls  int
	hotelCalls   int
	detailCalls  int
	lastMaxStops *int
}

func (g *stubGateway) SearchFlights(ctx context.Context, params gateway.SearchFlightsParams) ([]entity.FlightOffer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.flightCalls++
	g.lastMaxStops = params.MaxStops
	if g.flightsErr != nil {
		return nil, g.flightsErr
	}
	out := make([]entity.FlightOffer, len(g.flights))
	copy(out, g.flights)
	return out, nil
}

func (g *stubGateway) SearchHotels(ctx context.Context, params gateway.SearchHotelsParams) ([]entity.HotelOffer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.hotelCalls++
	if g.hotelsErr != nil {
		return nil, g.hotelsErr
	}
	out := make([]entity.HotelOffer, len(g.hotels))
	copy(out, g.hotels)
	return out, nil
}

func (g *stubGateway) GetOfferDetails(ctx context.Context, offerID string) (*entity.OfferDetails, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.detailCalls++
	if g.detailsErr != nil {
		return nil, g.detailsErr
	}
	return g.details, nil
}
