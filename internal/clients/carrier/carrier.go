package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type LabelRequest struct {
	OrderRef   string  `json:"order_ref"`
	City       string  `json:"city"`
	Department string  `json:"department"`
	WeightKg   float64 `json:"weight_kg"`
	Service    string  `json:"service"`
	Lat        string  `json:"lat,omitempty"`
	Lon        string  `json:"lon,omitempty"`
}

type Label struct {
	TrackingCode string `json:"tracking_code"`
	LabelURL     string `json:"label_url"`
}

// Client talks to the shipping carrier's label API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateLabel(ctx context.Context, lr LabelRequest) (*Label, error) {
	payload, err := json.Marshal(lr)
	if err != nil {
		return nil, fmt.Errorf("carrier: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/labels", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("carrier: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("carrier: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("carrier: label failed with status %d", resp.StatusCode)
	}

	var label Label
	if err := json.NewDecoder(resp.Body).Decode(&label); err != nil {
		return nil, fmt.Errorf("carrier: decode response: %w", err)
	}
	return &label, nil
}
