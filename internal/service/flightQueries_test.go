package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderbook/backend/internal/entity"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func validSearchRequest() *SearchFlightsRequest {
	return &SearchFlightsRequest{
		Origin:      "Paris",
		Destination: "Rome",
		DepartDate:  "2030-05-01",
		ReturnDate:  "2030-05-08",
		Adults:      2,
	}
}

func TestSearchFlights_SortedByPrice(t *testing.T) {
	gw := &stubGateway{flights: []entity.FlightOffer{
		{ID: "a", Price: 300},
		{ID: "b", Price: 120},
		{ID: "c", Price: 210},
	}}
	queries := NewFlightQueries(gw, newFakeBookingRepo(&opLog{}), nil)

	offers, err := queries.SearchFlights(context.Background(), validSearchRequest())
	require.NoError(t, err)

	require.Len(t, offers, 3)
	assert.True(t, sort.SliceIsSorted(offers, func(i, j int) bool {
		return offers[i].Price < offers[j].Price
	}))
	assert.Equal(t, "b", offers[0].ID)
}

func TestSearchFlights_StableForEqualPrices(t *testing.T) {
	gw := &stubGateway{flights: []entity.FlightOffer{
		{ID: "first", Price: 150},
		{ID: "second", Price: 150},
		{ID: "cheap", Price: 90},
	}}
	queries := NewFlightQueries(gw, newFakeBookingRepo(&opLog{}), nil)

	offers, err := queries.SearchFlights(context.Background(), validSearchRequest())
	require.NoError(t, err)

	require.Len(t, offers, 3)
	assert.Equal(t, "cheap", offers[0].ID)
	assert.Equal(t, "first", offers[1].ID)
	assert.Equal(t, "second", offers[2].ID)
}

func TestSearchFlights_BudgetFilter(t *testing.T) {
	gw := &stubGateway{flights: []entity.FlightOffer{
		{ID: "a", Price: 300},
		{ID: "b", Price: 120},
		{ID: "c", Price: 200},
	}}
	queries := NewFlightQueries(gw, newFakeBookingRepo(&opLog{}), nil)

	req := validSearchRequest()
	req.Budget = floatPtr(200)

	offers, err := queries.SearchFlights(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, offers, 2)
	for _, offer := range offers {
		assert.LessOrEqual(t, offer.Price, 200.0)
	}
}

func TestSearchFlights_MaxStopsForwardedToGateway(t *testing.T) {
	gw := &stubGateway{flights: []entity.FlightOffer{{ID: "a", Price: 100}}}
	queries := NewFlightQueries(gw, newFakeBookingRepo(&opLog{}), nil)

	req := validSearchRequest()
	req.MaxStops = intPtr(0)

	_, err := queries.SearchFlights(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, gw.lastMaxStops)
	assert.Equal(t, 0, *gw.lastMaxStops)
}

func TestSearchFlights_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *SearchFlightsRequest)
	}{
		{"malformed date", func(req *SearchFlightsRequest) { req.DepartDate = "01-05-2030" }},
		{"past departure", func(req *SearchFlightsRequest) { req.DepartDate = "2020-01-01"; req.ReturnDate = "" }},
		{"return before departure", func(req *SearchFlightsRequest) { req.ReturnDate = "2030-04-01" }},
		{"zero adults", func(req *SearchFlightsRequest) { req.Adults = 0 }},
		{"too many adults", func(req *SearchFlightsRequest) { req.Adults = 10 }},
		{"negative budget", func(req *SearchFlightsRequest) { req.Budget = floatPtr(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &stubGateway{}
			queries := NewFlightQueries(gw, newFakeBookingRepo(&opLog{}), nil)

			req := validSearchRequest()
			tt.mutate(req)

			_, err := queries.SearchFlights(context.Background(), req)
			require.ErrorIs(t, err, entity.ErrValidation)
			assert.Equal(t, 0, gw.flightCalls)
		})
	}
}

func TestSearchFlights_GatewayError(t *testing.T) {
	gw := &stubGateway{flightsErr: errors.New("aggregator down")}
	queries := NewFlightQueries(gw, newFakeBookingRepo(&opLog{}), nil)

	_, err := queries.SearchFlights(context.Background(), validSearchRequest())
	require.Error(t, err)
}

// Queries never touch the event store: the event count observed before a
// burst of reads equals the count after it.
func TestQueries_DoNotAppendEvents(t *testing.T) {
	fixture := newCommandFixture()
	ctx := context.Background()

	_, err := fixture.commands.BookFlight(ctx, validFlightRequest())
	require.NoError(t, err)

	before, err := fixture.events.CountEvents(ctx)
	require.NoError(t, err)

	gw := &stubGateway{
		flights: []entity.FlightOffer{{ID: "a", Price: 100}},
		hotels:  []entity.HotelOffer{{ID: "h", Price: 80}},
		details: &entity.OfferDetails{ID: "a"},
	}
	queries := NewFlightQueries(gw, fixture.bookings, nil)

	_, err = queries.SearchFlights(ctx, validSearchRequest())
	require.NoError(t, err)
	_, err = queries.SearchHotels(ctx, &SearchHotelsRequest{CityCode: "ROM"})
	require.NoError(t, err)
	_, err = queries.SearchPackages(ctx, &SearchPackagesRequest{
		Origin: "Paris", Destination: "Rome", DepartDate: "2030-05-01", ReturnDate: "2030-05-08", Adults: 1,
	})
	require.NoError(t, err)
	_, err = queries.GetOfferDetails(ctx, "a")
	require.NoError(t, err)
	_, err = queries.GetUserBookings(ctx, 42)
	require.NoError(t, err)

	after, err := fixture.events.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSearchHotels(t *testing.T) {
	gw := &stubGateway{hotels: []entity.HotelOffer{{ID: "h1", Price: 90}, {ID: "h2", Price: 120}}}
	queries := NewFlightQueries(gw, newFakeBookingRepo(&opLog{}), nil)

	offers, err := queries.SearchHotels(context.Background(), &SearchHotelsRequest{
		CityCode: "ROM",
		CheckIn:  "2030-05-01",
		CheckOut: "2030-05-08",
	})
	require.NoError(t, err)
	assert.Len(t, offers, 2)
}

func TestSearchHotels_Validation(t *testing.T) {
	queries := NewFlightQueries(&stubGateway{}, newFakeBookingRepo(&opLog{}), nil)

	_, err := queries.SearchHotels(context.Background(), &SearchHotelsRequest{CityCode: "  "})
	require.ErrorIs(t, err, entity.ErrValidation)

	_, err = queries.SearchHotels(context.Background(), &SearchHotelsRequest{
		CityCode: "ROM", CheckIn: "2030-05-08", CheckOut: "2030-05-01",
	})
	require.ErrorIs(t, err, entity.ErrValidation)
}

func TestSearchPackages(t *testing.T) {
	gw := &stubGateway{
		flights: []entity.FlightOffer{
			{ID: "f1", Price: 200},
			{ID: "f2", Price: 100},
		},
		hotels: []entity.HotelOffer{
			{ID: "h1", Price: 150},
			{ID: "h2", Price: 80},
		},
	}
	queries := NewFlightQueries(gw, newFakeBookingRepo(&opLog{}), nil)

	packages, err := queries.SearchPackages(context.Background(), &SearchPackagesRequest{
		Origin:      "Paris",
		Destination: "Rome",
		DepartDate:  "2030-05-01",
		ReturnDate:  "2030-05-08",
		Adults:      2,
	})
	require.NoError(t, err)

	// Every flight paired with the cheapest hotel, ascending by total.
	require.Len(t, packages, 2)
	assert.Equal(t, "h2", packages[0].Hotel.ID)
	assert.Equal(t, 180.0, packages[0].TotalPrice)
	assert.Equal(t, 280.0, packages[1].TotalPrice)
}

func TestSearchPackages_BudgetOnTotal(t *testing.T) {
	gw := &stubGateway{
		flights: []entity.FlightOffer{
			{ID: "f1", Price: 200},
			{ID: "f2", Price: 100},
		},
		hotels: []entity.HotelOffer{{ID: "h1", Price: 80}},
	}
	queries := NewFlightQueries(gw, newFakeBookingRepo(&opLog{}), nil)

	packages, err := queries.SearchPackages(context.Background(), &SearchPackagesRequest{
		Origin:      "Paris",
		Destination: "Rome",
		DepartDate:  "2030-05-01",
		ReturnDate:  "2030-05-08",
		Adults:      2,
		Budget:      floatPtr(200),
	})
	require.NoError(t, err)

	require.Len(t, packages, 1)
	assert.Equal(t, "f2", packages[0].Flight.ID)
}

func TestSearchPackages_NoHotels(t *testing.T) {
	gw := &stubGateway{flights: []entity.FlightOffer{{ID: "f1", Price: 200}}}
	queries := NewFlightQueries(gw, newFakeBookingRepo(&opLog{}), nil)

	packages, err := queries.SearchPackages(context.Background(), &SearchPackagesRequest{
		Origin:      "Paris",
		Destination: "Rome",
		DepartDate:  "2030-05-01",
		ReturnDate:  "2030-05-08",
		Adults:      2,
	})
	require.NoError(t, err)
	assert.Empty(t, packages)
}

func TestSearchPackages_CollaboratorError(t *testing.T) {
	gw := &stubGateway{
		flights:   []entity.FlightOffer{{ID: "f1", Price: 200}},
		hotelsErr: errors.New("aggregator down"),
	}
	queries := NewFlightQueries(gw, newFakeBookingRepo(&opLog{}), nil)

	_, err := queries.SearchPackages(context.Background(), &SearchPackagesRequest{
		Origin:      "Paris",
		Destination: "Rome",
		DepartDate:  "2030-05-01",
		ReturnDate:  "2030-05-08",
		Adults:      2,
	})
	require.Error(t, err)
}

func TestGetOfferDetails(t *testing.T) {
	gw := &stubGateway{details: &entity.OfferDetails{ID: "OF1", Baggage: "Cabin bag"}}
	queries := NewFlightQueries(gw, newFakeBookingRepo(&opLog{}), nil)

	details, err := queries.GetOfferDetails(context.Background(), "OF1")
	require.NoError(t, err)
	assert.Equal(t, "OF1", details.ID)

	_, err = queries.GetOfferDetails(context.Background(), "  ")
	require.ErrorIs(t, err, entity.ErrValidation)
}

func TestGetUserBookings(t *testing.T) {
	fixture := newCommandFixture()
	ctx := context.Background()

	_, err := fixture.commands.BookFlight(ctx, validFlightRequest())
	require.NoError(t, err)

	queries := NewFlightQueries(&stubGateway{}, fixture.bookings, nil)

	bookings, err := queries.GetUserBookings(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	none, err := queries.GetUserBookings(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, none)
}
