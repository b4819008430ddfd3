// Package upload is the HTTP client for the external image host. Products
// and categories store only the public URL it returns.
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/AR-Raju/online-nursery-server/internal/domain"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds an image host client. Uploads block the enclosing
// request on the host's latency; no timeout or retry is applied.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

type uploadRequest struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload posts base64 image bytes to the host and returns the public URL.
func (c *Client) Upload(ctx context.Context, imageBase64 string) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("image host not configured: %w", domain.ErrUpstream)
	}

	body, err := json.Marshal(uploadRequest{
		Key:   c.apiKey,
		Name:  uuid.NewString(),
		Image: imageBase64,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode upload request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image host call failed: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image host returned status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("failed to decode image host response: %w: %v", domain.ErrUpstream, err)
	}
	if uploaded.URL == "" {
		return "", fmt.Errorf("image host returned no url: %w", domain.ErrUpstream)
	}

	slog.Info("image uploaded", "url", uploaded.URL)
	return uploaded.URL, nil
}
