package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"googlemaps.github.io/maps"

	"wayfarer/internal/logger"
)

// ResolvedPlace is the canonical form of a free-text destination.
type ResolvedPlace struct {
	Query   string  `json:"query"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Resolver geocodes destinations through the Google Geocoding API.
// Results are cached in Redis for a week since place data rarely moves.
type Resolver struct {
	client *maps.Client
	cache  *redis.Client
	ttl    time.Duration
}

// NewResolver creates a Resolver with the given API key. cache may be nil,
// in which case every lookup hits the API.
func NewResolver(apiKey string, cache *redis.Client) (*Resolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Resolver{client: client, cache: cache, ttl: 7 * 24 * time.Hour}, nil
}

// Resolve geocodes a destination string. Callers treat failures as
// non-fatal; the raw user string remains usable on its own.
func (r *Resolver) Resolve(ctx context.Context, destination string) (*ResolvedPlace, error) {
	key := "geo:" + strings.ToLower(strings.TrimSpace(destination))
	if r.cache != nil {
		if raw, err := r.cache.Get(ctx, key).Result(); err == nil {
			var p ResolvedPlace
			if json.Unmarshal([]byte(raw), &p) == nil {
				return &p, nil
			}
		}
	}

	results, err := r.client.Geocode(ctx, &maps.GeocodingRequest{Address: destination})
	if err != nil {
		return nil, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no geocoding result for %q", destination)
	}

	first := results[0]
	p := &ResolvedPlace{
		Query: destination,
		Name:  first.FormattedAddress,
		Lat:   first.Geometry.Location.Lat,
		Lng:   first.Geometry.Location.Lng,
	}
	for _, comp := range first.AddressComponents {
		for _, t := range comp.Types {
			if t == "country" {
				p.Country = comp.LongName
			}
		}
	}

	if r.cache != nil {
		if raw, err := json.Marshal(p); err == nil {
			if err := r.cache.Set(ctx, key, raw, r.ttl).Err(); err != nil {
				logger.Warnf("geocode cache write failed: %v", err)
			}
		}
	}

	return p, nil
}
