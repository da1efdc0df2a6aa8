package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

type Location struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type cacheEntry struct {
	loc       Location
	expiresAt time.Time
}

// Client resolves a city/department pair to coordinates, with a time-boxed
// in-memory cache in front of the upstream geocoder.
type Client struct {
	baseURL    string
	httpClient *http.Client
	ttl        time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		ttl:   30 * time.Minute,
		cache: make(map[string]cacheEntry),
	}
}

func (c *Client) Locate(ctx context.Context, city, department string) (*Location, error) {
	key := city + "|" + department

	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		loc := entry.loc
		return &loc, nil
	}

	q := url.Values{}
	q.Set("q", fmt.Sprintf("%s, %s, Paraguay", city, department))
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocoder: create request: %w", err)
	}
	req.Header.Set("User-Agent", "techzone-backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder: status %d", resp.StatusCode)
	}

	var results []Location
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("geocoder: decode response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("geocoder: no results for %q", key)
	}

	c.mu.Lock()
	c.cache[key] = cacheEntry{loc: results[0], expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return &results[0], nil
}
