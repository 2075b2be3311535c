package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	repository "github.com/wanderbook/backend/internal/database/postgres"
	redisdb "github.com/wanderbook/backend/internal/database/redis"
	"github.com/wanderbook/backend/internal/entity"
	"github.com/wanderbook/backend/internal/gateway"
)

type flightQueries struct {
	gateway  gateway.TravelGateway
	bookings repository.BookingRepository
	cache    *redisdb.OfferCache
}

// NewFlightQueries creates the read-side handler for offers and bookings.
// cache may be nil; every cache failure degrades to a gateway call.
func NewFlightQueries(
	gw gateway.TravelGateway,
	bookings repository.BookingRepository,
	cache *redisdb.OfferCache,
) FlightQueries {
	return &flightQueries{
		gateway:  gw,
		bookings: bookings,
		cache:    cache,
	}
}

// SearchFlights validates, delegates to the aggregator, then applies the
// read-side business rules: budget filter and a stable ascending price sort.
// Nothing on this path writes events or rows.
func (s *flightQueries) SearchFlights(ctx context.Context, req *SearchFlightsRequest) ([]entity.FlightOffer, error) {
	if err := validateSearchDates(req.DepartDate, req.ReturnDate); err != nil {
		return nil, err
	}
	if req.Adults < 1 || req.Adults > 9 {
		return nil, fmt.Errorf("%w: number of adults must be between 1 and 9", entity.ErrValidation)
	}
	if req.Budget != nil && *req.Budget < 0 {
		return nil, fmt.Errorf("%w: budget must be a positive number", entity.ErrValidation)
	}

	offers, err := s.fetchFlights(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.Budget != nil {
		filtered := offers[:0]
		for _, offer := range offers {
			if offer.Price <= *req.Budget {
				filtered = append(filtered, offer)
			}
		}
		offers = filtered
	}

	// Stable keeps the collaborator's order for equal prices.
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Price < offers[j].Price
	})

	return offers, nil
}

// fetchFlights consults the cache only for searches without a stops filter;
// MaxStops is applied server-side by the gateway and is not part of the key.
func (s *flightQueries) fetchFlights(ctx context.Context, req *SearchFlightsRequest) ([]entity.FlightOffer, error) {
	cacheable := s.cache != nil && req.MaxStops == nil

	if cacheable {
		offers, err := s.cache.GetFlightOffers(ctx, req.Origin, req.Destination, req.DepartDate, req.ReturnDate, req.Adults)
		if err == nil {
			return offers, nil
		}
		if err != entity.ErrCacheMiss {
			logrus.Warnf("flight cache read failed: %v", err)
		}
	}

	offers, err := s.gateway.SearchFlights(ctx, gateway.SearchFlightsParams{
		Origin:      req.Origin,
		Destination: req.Destination,
		DepartDate:  req.DepartDate,
		ReturnDate:  req.ReturnDate,
		Adults:      req.Adults,
		MaxStops:    req.MaxStops,
	})
	if err != nil {
		return nil, fmt.Errorf("flight search failed: %w", err)
	}

	if cacheable {
		if err := s.cache.SetFlightOffers(ctx, req.Origin, req.Destination, req.DepartDate, req.ReturnDate, req.Adults, offers); err != nil {
			logrus.Warnf("flight cache write failed: %v", err)
		}
	}

	return offers, nil
}

func (s *flightQueries) SearchHotels(ctx context.Context, req *SearchHotelsRequest) ([]entity.HotelOffer, error) {
	if strings.TrimSpace(req.CityCode) == "" {
		return nil, fmt.Errorf("%w: city code is required", entity.ErrValidation)
	}
	if req.CheckIn != "" && req.CheckOut != "" {
		checkIn, err := time.Parse(dateLayout, req.CheckIn)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid check-in date format", entity.ErrValidation)
		}
		checkOut, err := time.Parse(dateLayout, req.CheckOut)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid check-out date format", entity.ErrValidation)
		}
		if !checkOut.After(checkIn) {
			return nil, fmt.Errorf("%w: check-out must be after check-in", entity.ErrValidation)
		}
	}

	offers, err := s.gateway.SearchHotels(ctx, gateway.SearchHotelsParams{
		CityCode: req.CityCode,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
	})
	if err != nil {
		return nil, fmt.Errorf("hotel search failed: %w", err)
	}

	return offers, nil
}

type flightSearchResult struct {
	offers []entity.FlightOffer
	err    error
}

type hotelSearchResult struct {
	offers []entity.HotelOffer
	err    error
}

// SearchPackages runs the flight and hotel collaborator calls in parallel;
// the two goroutines share no mutable state and join over channels. Each
// flight is paired with the cheapest hotel, then budget and price sort apply
// to the combination.
func (s *flightQueries) SearchPackages(ctx context.Context, req *SearchPackagesRequest) ([]entity.PackageOffer, error) {
	if err := validateSearchDates(req.DepartDate, req.ReturnDate); err != nil {
		return nil, err
	}
	if req.Adults < 1 || req.Adults > 9 {
		return nil, fmt.Errorf("%w: number of adults must be between 1 and 9", entity.ErrValidation)
	}
	if req.Budget != nil && *req.Budget < 0 {
		return nil, fmt.Errorf("%w: budget must be a positive number", entity.ErrValidation)
	}

	flightCh := make(chan flightSearchResult, 1)
	hotelCh := make(chan hotelSearchResult, 1)

	go func() {
		offers, err := s.gateway.SearchFlights(ctx, gateway.SearchFlightsParams{
			Origin:      req.Origin,
			Destination: req.Destination,
			DepartDate:  req.DepartDate,
			ReturnDate:  req.ReturnDate,
			Adults:      req.Adults,
		})
		flightCh <- flightSearchResult{offers: offers, err: err}
	}()

	go func() {
		offers, err := s.gateway.SearchHotels(ctx, gateway.SearchHotelsParams{
			CityCode: req.Destination,
			CheckIn:  req.DepartDate,
			CheckOut: req.ReturnDate,
		})
		hotelCh <- hotelSearchResult{offers: offers, err: err}
	}()

	flights := <-flightCh
	hotels := <-hotelCh

	if flights.err != nil {
		return nil, fmt.Errorf("flight search failed: %w", flights.err)
	}
	if hotels.err != nil {
		return nil, fmt.Errorf("hotel search failed: %w", hotels.err)
	}
	if len(hotels.offers) == 0 {
		return nil, nil
	}

	cheapest := hotels.offers[0]
	for _, hotel := range hotels.offers[1:] {
		if hotel.Price < cheapest.Price {
			cheapest = hotel
		}
	}

	var packages []entity.PackageOffer
	for _, flight := range flights.offers {
		total := flight.Price + cheapest.Price
		if req.Budget != nil && total > *req.Budget {
			continue
		}
		packages = append(packages, entity.PackageOffer{
			Flight:     flight,
			Hotel:      cheapest,
			TotalPrice: total,
		})
	}

	sort.SliceStable(packages, func(i, j int) bool {
		return packages[i].TotalPrice < packages[j].TotalPrice
	})

	return packages, nil
}

func (s *flightQueries) GetOfferDetails(ctx context.Context, offerID string) (*entity.OfferDetails, error) {
	if strings.TrimSpace(offerID) == "" {
		return nil, fmt.Errorf("%w: offer id is required", entity.ErrValidation)
	}

	if s.cache != nil {
		details, err := s.cache.GetOfferDetails(ctx, offerID)
		if err == nil {
			return details, nil
		}
		if err != entity.ErrCacheMiss {
			logrus.Warnf("offer cache read failed: %v", err)
		}
	}

	details, err := s.gateway.GetOfferDetails(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get offer details: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetOfferDetails(ctx, details); err != nil {
			logrus.Warnf("offer cache write failed: %v", err)
		}
	}

	return details, nil
}

// GetUserBookings reads the booking projection, newest first.
func (s *flightQueries) GetUserBookings(ctx context.Context, userID int64) ([]*entity.Booking, error) {
	bookings, err := s.bookings.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user bookings: %w", err)
	}
	return bookings, nil
}

func validateSearchDates(departDate, returnDate string) error {
	depart, err := time.Parse(dateLayout, departDate)
	if err != nil {
		return fmt.Errorf("%w: invalid depart_date format, use YYYY-MM-DD", entity.ErrValidation)
	}
	if depart.Before(today()) {
		return fmt.Errorf("%w: departure date must be in the future", entity.ErrValidation)
	}

	if returnDate != "" {
		returnDt, err := time.Parse(dateLayout, returnDate)
		if err != nil {
			return fmt.Errorf("%w: invalid return_date format, use YYYY-MM-DD", entity.ErrValidation)
		}
		if !returnDt.After(depart) {
			return fmt.Errorf("%w: return date must be after departure date", entity.ErrValidation)
		}
	}
	return nil
}
