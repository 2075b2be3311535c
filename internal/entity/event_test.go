package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := FlightBookedPayload{OfferID: "OF1", Price: 599.99, Adults: 2}

	event := NewEvent("booking-1", payload)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "booking-1", event.AggregateID)
	assert.Equal(t, EventTypeFlightBooked, event.Type)
	assert.Equal(t, 1, event.Version)
	assert.False(t, event.Timestamp.IsZero())
	assert.Equal(t, payload, event.Payload)

	// Event ids are unique per envelope.
	other := NewEvent("booking-1", payload)
	assert.NotEqual(t, event.EventID, other.EventID)
}

func TestPayloadRoundTrip(t *testing.T) {
	refund := 120.50

	tests := []struct {
		name    string
		payload EventPayload
	}{
		{"flight", FlightBookedPayload{
			OfferID: "OF1", Departure: "Paris", Destination: "New York",
			DepartDate: "2030-03-01", ReturnDate: "2030-03-10", Price: 599.99, Adults: 2,
		}},
		{"hotel", HotelBookedPayload{
			HotelName: "Hotel du Nord", HotelCity: "Paris",
			CheckIn: "2030-03-01", CheckOut: "2030-03-05", Price: 420, Adults: 2,
		}},
		{"activity", ActivityBookedPayload{
			ActivityName: "Louvre tour", ActivityDate: "2030-03-02", Duration: "3h", Price: 35,
		}},
		{"package", PackageBookedPayload{
			TripID: "trip-1", OfferID: "OF1", Departure: "Paris", Destination: "Rome",
			HotelName: "Roma Inn", HotelCity: "Rome", Price: 550, Adults: 2,
		}},
		{"trip created", TripCreatedPayload{
			TripID: "trip-1", Name: "Trip to Rome", TotalPrice: 550, Currency: "EUR", Status: "CONFIRMED",
		}},
		{"cancellation", BookingCancelledPayload{
			BookingID: "booking-1", Reason: "change of plans", RefundAmount: &refund,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := NewEvent("agg-1", tt.payload)

			data, err := event.EncodePayload()
			require.NoError(t, err)

			decoded, err := DecodePayload(event.Type, data)
			require.NoError(t, err)
			assert.Equal(t, tt.payload, decoded)
		})
	}
}

func TestDecodePayload_UnknownType(t *testing.T) {
	_, err := DecodePayload("SomethingElse", []byte(`{}`))
	require.ErrorIs(t, err, ErrUnknownEventType)
}

func TestDecodePayload_MalformedData(t *testing.T) {
	_, err := DecodePayload(EventTypeFlightBooked, []byte(`{not json`))
	require.Error(t, err)
}

func TestBookingCancellable(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{BookingStatusRequested, true},
		{BookingStatusConfirmed, true},
		{BookingStatusHeld, true},
		{BookingStatusCancelled, false},
		{BookingStatusFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			booking := &Booking{Status: tt.status}
			assert.Equal(t, tt.want, booking.Cancellable())
		})
	}
}
