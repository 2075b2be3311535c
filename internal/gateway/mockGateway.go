package gateway

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/wanderbook/backend/internal/entity"
)

var mockAirlines = []string{"ElAl", "Air France", "Lufthansa", "Ryanair", "Turkish Airlines"}

// mockGateway generates deterministic offers without calling the aggregator.
// The same search input always yields the same offers, which keeps local runs
// and tests reproducible.
type mockGateway struct{}

func NewMockGateway() TravelGateway {
	return &mockGateway{}
}

func seededRand(parts ...interface{}) *rand.Rand {
	h := fnv.New64a()
	fmt.Fprint(h, parts...)
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func (g *mockGateway) SearchFlights(ctx context.Context, params SearchFlightsParams) ([]entity.FlightOffer, error) {
	rng := seededRand(params.Origin, params.Destination, params.DepartDate, params.ReturnDate, params.Adults)

	origin := locationCode(params.Origin)
	destination := locationCode(params.Destination)

	var offers []entity.FlightOffer
	for i := 0; i < 10; i++ {
		price := 300 + rng.Intn(291) - 40
		if price < 50 {
			price = 50
		}
		stops := []int{0, 0, 1, 1, 2}[rng.Intn(5)]

		if params.MaxStops != nil && stops > *params.MaxStops {
			continue
		}

		offers = append(offers, entity.FlightOffer{
			ID:          fmt.Sprintf("%s-%s-%s-%d", origin, destination, strings.ReplaceAll(params.DepartDate, "-", ""), i),
			Departure:   params.Origin,
			Destination: params.Destination,
			DepartDate:  params.DepartDate,
			ReturnDate:  params.ReturnDate,
			Airline:     mockAirlines[rng.Intn(len(mockAirlines))],
			Price:       float64(price),
			DurationMin: 180 + rng.Intn(541),
			Stops:       stops,
			Score:       3.2 + rng.Float64()*1.7,
		})
	}

	return offers, nil
}

func (g *mockGateway) SearchHotels(ctx context.Context, params SearchHotelsParams) ([]entity.HotelOffer, error) {
	rng := seededRand(params.CityCode, params.CheckIn, params.CheckOut)

	names := []string{"City Center Hotel", "Grand Plaza", "Harbour View", "Old Town Inn", "Skyline Suites"}

	var offers []entity.HotelOffer
	for i, name := range names {
		offers = append(offers, entity.HotelOffer{
			ID:          fmt.Sprintf("HT-%s-%d", locationCode(params.CityCode), i),
			Name:        name,
			City:        params.CityCode,
			Price:       float64(80 + rng.Intn(221)),
			Currency:    "EUR",
			Description: fmt.Sprintf("%s in %s", name, params.CityCode),
			Rating:      3.0 + rng.Float64()*2.0,
		})
	}

	return offers, nil
}

func (g *mockGateway) GetOfferDetails(ctx context.Context, offerID string) (*entity.OfferDetails, error) {
	return &entity.OfferDetails{
		ID:              offerID,
		Baggage:         "Cabin bag + 20kg checked baggage",
		RefundPolicy:    "Partial refund available up to 48h before departure",
		Notes:           "Generated offer, no aggregator credentials configured",
		HotelSuggestion: "City Center Hotel",
	}, nil
}

// locationCode reduces a city name to a 3-letter code the way the aggregator
// keys its locations.
func locationCode(city string) string {
	c := strings.ToUpper(strings.TrimSpace(city))
	if len(c) > 3 {
		c = c[:3]
	}
	return c
}
