package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
)

const (
	defaultBaseURL             = "https://nominatim.openstreetmap.org"
	requestBodyReadLimit int64 = 1024
)

var errUserAgentRequired = errors.New("geocoder user agent is required")

// Geocoder resolves street addresses to coordinates via Nominatim.
// Nominatim's usage policy requires an identifying User-Agent.
type Geocoder struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures optional client behavior.
type Option func(*Geocoder)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Geocoder) {
		if client != nil {
			g.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured Nominatim base URL.
func WithBaseURL(baseURL string) Option {
	return func(g *Geocoder) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			g.baseURL = trimmed
		}
	}
}

// NewGeocoder builds the Nominatim client given an identifying user agent.
func NewGeocoder(userAgent string, opts ...Option) (*Geocoder, error) {
	trimmedAgent := strings.TrimSpace(userAgent)
	if trimmedAgent == "" {
		return nil, errUserAgentRequired
	}

	geocoder := &Geocoder{
		userAgent:  trimmedAgent,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(geocoder)
		}
	}

	if geocoder.httpClient == nil {
		geocoder.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if geocoder.baseURL == "" {
		geocoder.baseURL = defaultBaseURL
	}

	return geocoder, nil
}

// GeocodeQuery describes the structured address sent to the search endpoint.
type GeocodeQuery struct {
	StreetNumber string
	StreetName   string
	PostalCode   string
}

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Geocode resolves the address to coordinates. A nil result with a nil error
// means the address was not found; callers must treat that as "not located"
// rather than falling back to an un-located search.
func (g *Geocoder) Geocode(ctx context.Context, query GeocodeQuery) (*Coordinates, error) {
	if g == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "geocoder not configured")
	}
	street := strings.TrimSpace(query.StreetNumber + " " + query.StreetName)
	if street == "" || strings.TrimSpace(query.PostalCode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "street and postal code are required")
	}

	params := url.Values{}
	params.Set("street", street)
	params.Set("postalcode", strings.TrimSpace(query.PostalCode))
	params.Set("format", "json")

	endpoint := fmt.Sprintf("%s/search?%s", strings.TrimRight(g.baseURL, "/"), params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build geocode request")
	}

	httpReq.Header.Set("User-Agent", g.userAgent)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute geocode request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, requestBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "geocode request failed")
	}

	var apiResp []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode geocode response")
	}

	if len(apiResp) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(apiResp[0].Lat, 64)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "parse latitude")
	}
	lon, err := strconv.ParseFloat(apiResp[0].Lon, 64)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "parse longitude")
	}

	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}
