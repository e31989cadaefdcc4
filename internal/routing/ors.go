// Package routing provides the OpenRouteService adapter: driving routes
// between coordinate pairs and forward geocoding, with optional Redis
// caching of route responses.
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"trip-planner-service/internal/domain"
)

const (
	metersPerMile  = 0.000621371
	defaultBaseURL = "https://api.openrouteservice.org"
	requestTimeout = 10 * time.Second
	drivingProfile = "driving-car"
	geocodeCountry = "US"
)

// ORSClient calls the OpenRouteService directions and geocoding APIs.
// It is safe for concurrent use.
type ORSClient struct {
	session *http.Client
	apiKey  string
	baseURL string
	cache   *RouteCache
	log     *slog.Logger
}

// NewORSClient constructs an ORSClient. baseURL may be empty to use the
// public API endpoint; cache may be nil to disable route caching; log may be
// nil to use the default logger.
func NewORSClient(apiKey, baseURL string, cache *RouteCache, log *slog.Logger) (*ORSClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("routing.NewORSClient: api key is empty")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &ORSClient{
		session: &http.Client{Timeout: requestTimeout},
		apiKey:  apiKey,
		baseURL: baseURL,
		cache:   cache,
		log:     log,
	}, nil
}

// directionsResponse is the subset of the ORS GeoJSON directions response we
// consume.
type directionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"` // meters
				Duration float64 `json:"duration"` // seconds
			} `json:"summary"`
		} `json:"properties"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"features"`
}

// GetRoute returns the driving route between two locations. Any transport,
// decode, or empty-result failure is reported as domain.ErrRouteUnavailable
// so callers can fall back to an estimate.
func (c *ORSClient) GetRoute(ctx context.Context, origin, dest domain.Location) (domain.RouteSegment, error) {
	if c.cache != nil {
		if seg, ok := c.cache.Get(ctx, origin, dest); ok {
			c.log.DebugContext(ctx, "route cache hit", "from", origin.Address, "to", dest.Address)
			return seg, nil
		}
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", c.baseURL, drivingProfile)

	payload := map[string]any{
		// ORS expects [lon, lat] pairs.
		"coordinates": [][]float64{
			{origin.Lon, origin.Lat},
			{dest.Lon, dest.Lat},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return domain.RouteSegment{}, fmt.Errorf("routing.GetRoute: marshal payload: %w", err)
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	})
	if err != nil {
		return domain.RouteSegment{}, fmt.Errorf("routing.GetRoute: %v: %w", err, domain.ErrRouteUnavailable)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RouteSegment{}, fmt.Errorf("routing.GetRoute: decode response: %v: %w", err, domain.ErrRouteUnavailable)
	}
	if len(decoded.Features) == 0 {
		return domain.RouteSegment{}, fmt.Errorf("routing.GetRoute: no route found: %w", domain.ErrRouteUnavailable)
	}

	feature := decoded.Features[0]
	geometry := make([]domain.Coordinate, 0, len(feature.Geometry.Coordinates))
	for _, pair := range feature.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		geometry = append(geometry, domain.Coordinate{Lat: pair[1], Lon: pair[0]})
	}

	seg := domain.RouteSegment{
		From:          origin.Address,
		To:            dest.Address,
		DistanceMiles: round2(feature.Properties.Summary.Distance * metersPerMile),
		DrivingHours:  round2(feature.Properties.Summary.Duration / 3600),
		Geometry:      geometry,
	}

	if c.cache != nil {
		c.cache.Put(ctx, origin, dest, seg)
	}

	return seg, nil
}

// geocodeResponse is the subset of the ORS geocode response we consume.
type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves a free-text address to a location. On any failure it
// returns the zero Location (the documented sentinel) with a nil error;
// callers must validate the result before using it.
func (c *ORSClient) Geocode(ctx context.Context, address string) domain.Location {
	endpoint := c.baseURL + "/geocode/search"

	makeReq := func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", address)
		q.Set("boundary.country", geocodeCountry)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	}

	resp, err := c.doWithRetry(ctx, makeReq)
	if err != nil {
		c.log.WarnContext(ctx, "geocode failed", "address", address, "error", err)
		return domain.Location{Address: address}
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.log.WarnContext(ctx, "geocode decode failed", "address", address, "error", err)
		return domain.Location{Address: address}
	}
	if len(decoded.Features) == 0 || len(decoded.Features[0].Geometry.Coordinates) != 2 {
		c.log.WarnContext(ctx, "geocode returned no result", "address", address)
		return domain.Location{Address: address}
	}

	coords := decoded.Features[0].Geometry.Coordinates
	return domain.Location{Lat: coords[1], Lon: coords[0], Address: address}
}
