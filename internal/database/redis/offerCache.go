package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wanderbook/backend/internal/entity"
)

// OfferCache is a query-side cache over the aggregator. Misses and failures
// fall through to the gateway; nothing here is load-bearing for correctness.
type OfferCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewOfferCache(client *redis.Client, ttl time.Duration) *OfferCache {
	return &OfferCache{
		client: client,
		ttl:    ttl,
	}
}

func searchKey(origin, destination, departDate, returnDate string, adults int) string {
	return fmt.Sprintf("flights:%s:%s:%s:%s:%d", origin, destination, departDate, returnDate, adults)
}

func (c *OfferCache) SetFlightOffers(ctx context.Context, origin, destination, departDate, returnDate string, adults int, offers []entity.FlightOffer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, searchKey(origin, destination, departDate, returnDate, adults), data, c.ttl).Err()
}

func (c *OfferCache) GetFlightOffers(ctx context.Context, origin, destination, departDate, returnDate string, adults int) ([]entity.FlightOffer, error) {
	data, err := c.client.Get(ctx, searchKey(origin, destination, departDate, returnDate, adults)).Result()
	if err == redis.Nil {
		return nil, entity.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var offers []entity.FlightOffer
	if err := json.Unmarshal([]byte(data), &offers); err != nil {
		return nil, err
	}

	return offers, nil
}

func (c *OfferCache) SetOfferDetails(ctx context.Context, details *entity.OfferDetails) error {
	data, err := json.Marshal(details)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, "offer:"+details.ID, data, c.ttl).Err()
}

func (c *OfferCache) GetOfferDetails(ctx context.Context, offerID string) (*entity.OfferDetails, error) {
	data, err := c.client.Get(ctx, "offer:"+offerID).Result()
	if err == redis.Nil {
		return nil, entity.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var details entity.OfferDetails
	if err := json.Unmarshal([]byte(data), &details); err != nil {
		return nil, err
	}

	return &details, nil
}
