// internal/adapters/places/client.go
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/project-caesar00/caesar-elo/internal/adapters/observability"
	"github.com/project-caesar00/caesar-elo/internal/domain"
)

// Field masks keep Places API billing down; request only what we store.
// nextPageToken must be in the mask or the API never returns one.
const (
	textSearchFieldMask = "places.id,places.displayName,places.userRatingCount,places.rating,places.websiteUri,nextPageToken"
	nearbyFieldMask     = "places.id,places.displayName,places.formattedAddress,places.websiteUri,places.primaryType,places.nationalPhoneNumber"
)

// Hard API limits for searchNearby.
const (
	maxNearbyRadiusMeters = 50000
	maxNearbyResults      = 20
)

type Client struct {
	placesBase  string
	geocodeBase string
	key         string
	hc          *http.Client
	rl          *rate.Limiter
}

// New builds a client. An empty key is allowed here; each call then fails
// with domain.ErrNotConfigured before touching the network, so a keyless
// deployment still serves everything except the Maps-backed paths.
func New(placesBase, geocodeBase, key string, rps int, timeout time.Duration) *Client {
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		placesBase:  strings.TrimRight(placesBase, "/"),
		geocodeBase: strings.TrimRight(geocodeBase, "/"),
		key:         key,
		hc:          &http.Client{Timeout: timeout},
		rl:          rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// ---- Public API ----

// SearchTextPage fetches one page of the paginated text search. Pagination is
// the caller's loop: pass back the returned token until it comes up empty.
// There is deliberately no retry here; quota and upstream errors surface
// immediately so the caller can abort the whole run.
func (c *Client) SearchTextPage(ctx context.Context, req domain.TextSearchRequest) (domain.TextSearchPage, error) {
	if c.key == "" {
		return domain.TextSearchPage{}, domain.ErrNotConfigured
	}
	body, _ := json.Marshal(textSearchBody{
		TextQuery:    req.Query,
		LanguageCode: req.LanguageCode,
		MinRating:    req.MinRating,
		PageToken:    req.PageToken,
	})
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.placesBase+"/places:searchText", bytes.NewReader(body))
	if err != nil {
		return domain.TextSearchPage{}, err
	}
	c.setPlacesHeaders(hreq, textSearchFieldMask)

	var out searchResponse
	if err := c.do(ctx, "searchText", hreq, &out); err != nil {
		return domain.TextSearchPage{}, err
	}
	page := domain.TextSearchPage{
		Places:        make([]domain.PlaceRecord, 0, len(out.Places)),
		NextPageToken: out.NextPageToken,
	}
	for _, p := range out.Places {
		page.Places = append(page.Places, p.record())
	}
	return page, nil
}

// SearchNearby runs a single-shot nearby search (the API caps it at 20 hits
// and a 50km radius; both are clamped here).
func (c *Client) SearchNearby(ctx context.Context, req domain.NearbySearchRequest) ([]domain.NearbyPlace, error) {
	if c.key == "" {
		return nil, domain.ErrNotConfigured
	}
	radius := req.RadiusMeters
	if radius <= 0 || radius > maxNearbyRadiusMeters {
		radius = maxNearbyRadiusMeters
	}
	count := req.MaxResults
	if count <= 0 || count > maxNearbyResults {
		count = maxNearbyResults
	}

	b := nearbySearchBody{MaxResultCount: count, IncludedTypes: req.IncludedTypes}
	b.LocationRestriction.Circle.Center.Latitude = req.Center.Lat
	b.LocationRestriction.Circle.Center.Longitude = req.Center.Lng
	b.LocationRestriction.Circle.Radius = radius
	body, _ := json.Marshal(b)

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.placesBase+"/places:searchNearby", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setPlacesHeaders(hreq, nearbyFieldMask)

	var out searchResponse
	if err := c.do(ctx, "searchNearby", hreq, &out); err != nil {
		return nil, err
	}
	hits := make([]domain.NearbyPlace, 0, len(out.Places))
	for _, p := range out.Places {
		hits = append(hits, p.nearby())
	}
	return hits, nil
}

// Geocode resolves a free-form location to coordinates. A syntactically fine
// but unknown location wraps domain.ErrNotFound.
func (c *Client) Geocode(ctx context.Context, location string) (domain.Coords, error) {
	if c.key == "" {
		return domain.Coords{}, domain.ErrNotConfigured
	}
	u := fmt.Sprintf("%s/geocode/json?address=%s&key=%s",
		c.geocodeBase, url.QueryEscape(location), url.QueryEscape(c.key))
	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Coords{}, err
	}
	hreq.Header.Set("Accept", "application/json")

	var out geocodeResponse
	if err := c.do(ctx, "geocode", hreq, &out); err != nil {
		return domain.Coords{}, err
	}
	if out.Status != "OK" || len(out.Results) == 0 {
		return domain.Coords{}, fmt.Errorf("geocode %q returned %s: %w", location, out.Status, domain.ErrNotFound)
	}
	loc := out.Results[0].Geometry.Location
	return domain.Coords{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// ---- Internals ----

// do executes one request with client-side rate limiting and maps the error
// taxonomy: 429 -> ErrQuotaExceeded, other non-200 -> *ServiceError with the
// body capped, transport failure (incl. client timeout) -> *ServiceError with
// status 0. Context cancellation wins over all of those.
func (c *Client) do(ctx context.Context, endpoint string, req *http.Request, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("places", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return domain.NewServiceError(0, err.Error())
	}
	defer resp.Body.Close()
	observability.ObserveExternal("places", endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("places: decode %s response: %w", endpoint, err)
		}
		return nil

	case http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.ErrQuotaExceeded

	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		detail := strings.TrimSpace(string(b))
		if detail == "" {
			detail = "unknown error"
		}
		return domain.NewServiceError(resp.StatusCode, detail)
	}
}

func (c *Client) setPlacesHeaders(req *http.Request, fieldMask string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.key)
	req.Header.Set("X-Goog-FieldMask", fieldMask)
}

// ---- Wire types ----

type textSearchBody struct {
	TextQuery    string   `json:"textQuery"`
	LanguageCode string   `json:"languageCode,omitempty"`
	MinRating    *float64 `json:"minRating,omitempty"`
	PageToken    string   `json:"pageToken,omitempty"`
}

type nearbySearchBody struct {
	LocationRestriction struct {
		Circle struct {
			Center struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"center"`
			Radius float64 `json:"radius"`
		} `json:"circle"`
	} `json:"locationRestriction"`
	MaxResultCount int      `json:"maxResultCount"`
	IncludedTypes  []string `json:"includedTypes,omitempty"`
}

type placeWire struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	UserRatingCount     int      `json:"userRatingCount"`
	Rating              *float64 `json:"rating"`
	WebsiteURI          *string  `json:"websiteUri"`
	FormattedAddress    *string  `json:"formattedAddress"`
	PrimaryType         *string  `json:"primaryType"`
	NationalPhoneNumber *string  `json:"nationalPhoneNumber"`
}

type searchResponse struct {
	Places        []placeWire `json:"places"`
	NextPageToken string      `json:"nextPageToken"`
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (p placeWire) record() domain.PlaceRecord {
	name := p.DisplayName.Text
	if name == "" {
		name = "Unknown"
	}
	return domain.PlaceRecord{
		PlaceID:     p.ID,
		Name:        name,
		RatingCount: p.UserRatingCount,
		RatingScore: p.Rating,
		WebsiteURL:  p.WebsiteURI,
	}
}

func (p placeWire) nearby() domain.NearbyPlace {
	var name *string
	if p.DisplayName.Text != "" {
		name = &p.DisplayName.Text
	}
	return domain.NearbyPlace{
		PlaceID:     p.ID,
		Name:        name,
		Address:     p.FormattedAddress,
		Phone:       p.NationalPhoneNumber,
		PrimaryType: p.PrimaryType,
		WebsiteURL:  p.WebsiteURI,
	}
}
