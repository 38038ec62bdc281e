// ABOUTME: Hotel search proxy client for the Google Hotels engine of the search API
// ABOUTME: Whitelists query params, caches normalized results and coalesces identical lookups

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Bazzook4/hotel-setup-tool/backend/cache"
	"github.com/Bazzook4/hotel-setup-tool/backend/models"
)

var (
	ErrSearchNotConfigured = errors.New("search API key not configured")
	ErrMissingQuery        = errors.New("missing search query (q)")
)

// DefaultSearchAPIURL is the search endpoint used when none is configured.
const DefaultSearchAPIURL = "https://serpapi.com/search.json"

const (
	searchEngine       = "google_hotels"
	maxDetailAmenities = 10
	maxDetailImages    = 3
	maxListAmenities   = 5
	maxListImages      = 1
	maxErrorBodyBytes  = 512
)

// searchParams are the only query parameters forwarded upstream.
var searchParams = []string{"q", "check_in_date", "check_out_date", "adults", "currency", "gl", "hl"}

// UpstreamObserver receives the latency of every upstream call.
type UpstreamObserver interface {
	ObserveUpstream(elapsed time.Duration)
}

// HotelSearchClient proxies hotel lookups to the search API.
type HotelSearchClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *cache.Cache[*models.HotelSearchResult]
	observer   UpstreamObserver
	sfGroup    singleflight.Group
}

// NewHotelSearchClient creates a search client. If httpClient is nil, a default
// client with a 10s timeout is used. A nil cache disables result caching.
func NewHotelSearchClient(baseURL, apiKey string, httpClient *http.Client, c *cache.Cache[*models.HotelSearchResult]) *HotelSearchClient {
	if baseURL == "" {
		baseURL = DefaultSearchAPIURL
	}
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}
	return &HotelSearchClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      c,
	}
}

// WithObserver attaches an upstream latency observer.
func (c *HotelSearchClient) WithObserver(o UpstreamObserver) *HotelSearchClient {
	c.observer = o
	return c
}

// Configured reports whether an API key is available.
func (c *HotelSearchClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

// SearchQuery extracts the whitelisted, non-empty parameters from a request query.
func SearchQuery(query url.Values) url.Values {
	params := url.Values{}
	for _, key := range searchParams {
		if v := query.Get(key); v != "" {
			params.Set(key, v)
		}
	}
	return params
}

// Search looks up hotels for the given query. Identical concurrent queries
// share one upstream call.
func (c *HotelSearchClient) Search(ctx context.Context, query url.Values) (*models.HotelSearchResult, error) {
	if !c.Configured() {
		return nil, ErrSearchNotConfigured
	}

	params := SearchQuery(query)
	if params.Get("q") == "" {
		return nil, ErrMissingQuery
	}

	// Encode sorts by key, so equivalent queries share a cache entry.
	key := params.Encode()
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			hit := *cached
			hit.Cached = true
			return &hit, nil
		}
	}

	v, err, shared := c.sfGroup.Do(key, func() (interface{}, error) {
		result, err := c.fetch(ctx, params)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			c.cache.Set(key, result)
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("Hotel search coalesced with in-flight request", "query", sanitizeForLog(params.Get("q")))
	}
	return v.(*models.HotelSearchResult), nil
}

func (c *HotelSearchClient) fetch(ctx context.Context, params url.Values) (*models.HotelSearchResult, error) {
	upstream := url.Values{}
	for k, v := range params {
		upstream[k] = v
	}
	upstream.Set("engine", searchEngine)
	upstream.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+upstream.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.observer != nil {
		c.observer.ObserveUpstream(time.Since(start))
	}
	if err != nil {
		// The URL carries the API key; keep it out of the error.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("failed to query search API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode, sanitizeForLog(string(body)))
	}

	var data models.UpstreamSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return normalizeSearchResponse(data), nil
}

// normalizeSearchResponse trims an upstream payload to what the UI renders.
// A payload without a properties array but with prices describes one property.
func normalizeSearchResponse(data models.UpstreamSearchResponse) *models.HotelSearchResult {
	if data.Properties == nil && (data.FeaturedPrices != nil || data.Prices != nil) {
		return &models.HotelSearchResult{Detail: normalizeDetail(data)}
	}

	properties := make([]models.PropertySummary, 0, len(data.Properties))
	for _, p := range data.Properties {
		properties = append(properties, normalizeSummary(p))
	}
	return &models.HotelSearchResult{Properties: properties}
}

func normalizeDetail(data models.UpstreamSearchResponse) *models.PropertyDetail {
	prices := make([]models.SourcePrice, 0, len(data.FeaturedPrices)+len(data.Prices))
	seen := make(map[string]bool)
	for _, fp := range data.FeaturedPrices {
		rooms := make([]models.RoomPrice, 0, len(fp.Rooms))
		for _, r := range fp.Rooms {
			rooms = append(rooms, models.RoomPrice{Name: r.Name, RatePerNight: lowestRate(r.RatePerNight)})
		}
		prices = append(prices, models.SourcePrice{
			Source:       fp.Source,
			Logo:         fp.Logo,
			Official:     fp.Official,
			RatePerNight: lowestRate(fp.RatePerNight),
			Rooms:        rooms,
		})
		seen[fp.Source] = true
	}
	for _, pr := range data.Prices {
		if seen[pr.Source] {
			continue
		}
		seen[pr.Source] = true
		prices = append(prices, models.SourcePrice{
			Source:       pr.Source,
			Logo:         pr.Logo,
			Official:     pr.Official,
			RatePerNight: lowestRate(pr.RatePerNight),
			Rooms:        []models.RoomPrice{},
		})
	}

	images := make([]models.Image, 0, maxDetailImages)
	for _, img := range firstN(data.Images, maxDetailImages) {
		thumb := img.Thumbnail
		if thumb == "" {
			thumb = img.OriginalImage
		}
		images = append(images, models.Image{Thumbnail: thumb})
	}

	return &models.PropertyDetail{
		Type:                propertyType(data.Type),
		Name:                data.Name,
		Description:         data.Description,
		OverallRating:       nonZero(data.OverallRating),
		Reviews:             data.Reviews,
		HotelClass:          nonEmpty(data.HotelClass),
		ExtractedHotelClass: nonZero(data.ExtractedHotelClass),
		Address:             data.Address,
		Phone:               data.Phone,
		CheckInTime:         nonEmpty(data.CheckInTime),
		CheckOutTime:        nonEmpty(data.CheckOutTime),
		RatePerNight:        lowestRate(data.RatePerNight),
		Amenities:           firstN(data.Amenities, maxDetailAmenities),
		Images:              images,
		AllPrices:           prices,
	}
}

func normalizeSummary(p models.UpstreamProperty) models.PropertySummary {
	prices := make([]models.ListingPrice, 0, len(p.Prices))
	for _, pr := range p.Prices {
		prices = append(prices, models.ListingPrice{
			Source:       pr.Source,
			Logo:         pr.Logo,
			RatePerNight: lowestRate(pr.RatePerNight),
		})
	}

	images := make([]models.Image, 0, maxListImages)
	for _, img := range firstN(p.Images, maxListImages) {
		images = append(images, models.Image{Thumbnail: img.Thumbnail})
	}

	return models.PropertySummary{
		Type:                propertyType(p.Type),
		Name:                p.Name,
		Description:         p.Description,
		OverallRating:       nonZero(p.OverallRating),
		Reviews:             p.Reviews,
		HotelClass:          nonEmpty(p.HotelClass),
		ExtractedHotelClass: nonZero(p.ExtractedHotelClass),
		FreeCancellation:    p.FreeCancellation,
		Amenities:           firstN(p.Amenities, maxListAmenities),
		RatePerNight:        lowestRate(p.RatePerNight),
		Prices:              prices,
		Images:              images,
	}
}

func propertyType(t string) string {
	if t == "" {
		return "hotel"
	}
	return t
}

// lowestRate copies only the extracted lowest rate.
func lowestRate(r *models.RatePerNight) *models.RatePerNight {
	if r == nil {
		return nil
	}
	return &models.RatePerNight{ExtractedLowest: r.ExtractedLowest}
}

func nonZero(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// firstN returns a copy of at most n leading elements, never nil.
func firstN[T any](s []T, n int) []T {
	out := make([]T, 0, min(len(s), n))
	return append(out, s[:min(len(s), n)]...)
}
