package places

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"dinescan-service/internal/resolve/model"
)

// HTTPClient talks to a places directory over its JSON API. Constructed once in
// main and injected; there is no package-level instance.
type HTTPClient struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

var _ Directory = (*HTTPClient)(nil)

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: timeout},
	}
}

type wireBusiness struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	DistanceM   float64  `json:"distance_m"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	PriceLevel  int      `json:"price_level"`
	Categories  []string `json:"categories"`
}

type wireSearchResponse struct {
	Businesses []wireBusiness `json:"businesses"`
}

func (c *HTTPClient) Search(ctx context.Context, term string, lat, lng float64, limit int, category string) ([]model.GeoBusiness, error) {
	q := url.Values{}
	q.Set("term", term)
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("limit", strconv.Itoa(limit))
	if category != "" {
		q.Set("category", category)
	}

	var resp wireSearchResponse
	if err := c.getJSON(ctx, "/v1/search?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("places search %q: %w", term, err)
	}

	out := make([]model.GeoBusiness, 0, len(resp.Businesses))
	for _, wb := range resp.Businesses {
		b := model.GeoBusiness{
			ID:             wb.ID,
			Name:           wb.Name,
			Coordinates:    model.Coordinates{Lat: wb.Lat, Lng: wb.Lng},
			DistanceMeters: wb.DistanceM,
			Rating:         wb.Rating,
			ReviewCount:    wb.ReviewCount,
			PriceLevel:     wb.PriceLevel,
			Categories:     wb.Categories,
		}
		// some providers omit distance; fall back to the haversine from the query point
		if b.DistanceMeters == 0 && !b.Coordinates.IsZero() {
			b.DistanceMeters = haversineMeters(lat, lng, wb.Lat, wb.Lng)
		}
		out = append(out, b)
	}
	return out, nil
}

func (c *HTTPClient) Details(ctx context.Context, id string) (*model.BusinessDetails, error) {
	var d model.BusinessDetails
	if err := c.getJSON(ctx, "/v1/businesses/"+url.PathEscape(id), &d); err != nil {
		return nil, fmt.Errorf("places details %s: %w", id, err)
	}
	return &d, nil
}

type wireReviewsResponse struct {
	Reviews []model.Review `json:"reviews"`
}

func (c *HTTPClient) Reviews(ctx context.Context, id string, limit int) ([]model.Review, error) {
	var resp wireReviewsResponse
	path := "/v1/businesses/" + url.PathEscape(id) + "/reviews?limit=" + strconv.Itoa(limit)
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("places reviews %s: %w", id, err)
	}
	if len(resp.Reviews) > limit {
		resp.Reviews = resp.Reviews[:limit]
	}
	return resp.Reviews, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(dst)
}

const earthRadiusM = 6371000

func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
