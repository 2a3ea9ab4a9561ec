// Package places is the read-only HTTP client for the external general
// place-search provider. Provider results are the source of cross-reference
// ids; the client never writes anything back.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gitxyzlabs/levoyageur/internal/geo"
	"github.com/gitxyzlabs/levoyageur/internal/identity"
	"github.com/gitxyzlabs/levoyageur/internal/place"
	"github.com/gitxyzlabs/levoyageur/internal/services"
)

const serviceName = "places"

// result is one provider hit. The id may arrive under any of the historical
// field names, so the cross-ref fallback struct is embedded.
type result struct {
	identity.CrossRefFields
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"formattedAddress"`
	Location struct {
		Lat float64 `json:"latitude"`
		Lng float64 `json:"longitude"`
	} `json:"location"`
	Rating         *float64 `json:"rating"`
	Types          []string `json:"types"`
	DistanceMeters *float64 `json:"distanceMeters"`
}

type response struct {
	Places []result `json:"places"`
}

// Searcher defines the provider operations used by candidate scoring and the
// search marker path.
type Searcher interface {
	Nearby(ctx context.Context, center geo.Coordinates, opts SearchOptions) ([]place.SearchCandidate, error)
	Search(ctx context.Context, query string, opts SearchOptions) ([]place.SearchCandidate, error)
}

// SearchOptions contains optional parameters for provider calls.
type SearchOptions struct {
	// RadiusMeters bounds nearby search; 0 means the provider default.
	RadiusMeters int
	// MaxResults caps the returned page; 0 means the provider default.
	MaxResults int
	// Keyword biases nearby search toward matching names.
	Keyword string
}

// Client provides access to the place-search provider.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the default HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a provider client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("places api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("places base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Nearby returns places around a coordinate.
func (c *Client) Nearby(ctx context.Context, center geo.Coordinates, opts SearchOptions) ([]place.SearchCandidate, error) {
	if !center.Valid() {
		return nil, errors.New("center coordinates required")
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(center.Lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(center.Lng, 'f', -1, 64))
	if opts.RadiusMeters > 0 {
		params.Set("radius", strconv.Itoa(opts.RadiusMeters))
	}
	if opts.MaxResults > 0 {
		params.Set("max_results", strconv.Itoa(opts.MaxResults))
	}
	if keyword := strings.TrimSpace(opts.Keyword); keyword != "" {
		params.Set("keyword", keyword)
	}

	return c.get(ctx, "/places:nearby", params)
}

// Search performs a free-text place search.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]place.SearchCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}

	params := url.Values{}
	params.Set("query", query)
	if opts.MaxResults > 0 {
		params.Set("max_results", strconv.Itoa(opts.MaxResults))
	}

	return c.get(ctx, "/places:search", params)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]place.SearchCandidate, error) {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parse places url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		marker := services.ErrTransient
		if errors.Is(err, context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return nil, services.Wrap(marker, serviceName, path,
			fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.Wrap(services.ClassifyStatus(resp.StatusCode), serviceName, path,
			fmt.Sprintf("status %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}

	return toCandidates(payload.Places), nil
}

// toCandidates converts provider hits, dropping hits with no usable id.
// The plain id field wins; the legacy cross-ref field names are the fallback.
func toCandidates(results []result) []place.SearchCandidate {
	candidates := make([]place.SearchCandidate, 0, len(results))
	for _, r := range results {
		id := identity.NormalizeCrossRef(r.ID)
		if id == "" {
			id = r.CrossRef()
		}
		if id == "" {
			continue
		}
		candidates = append(candidates, place.SearchCandidate{
			ID:             id,
			Name:           r.Name,
			Address:        r.Address,
			Coordinates:    geo.Coordinates{Lat: r.Location.Lat, Lng: r.Location.Lng},
			Rating:         r.Rating,
			Categories:     r.Types,
			DistanceMeters: r.DistanceMeters,
		})
	}
	return candidates
}
