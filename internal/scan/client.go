package scan

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Scanner sends a captured receipt image for recognition.
type Scanner interface {
	Scan(ctx context.Context, image []byte) (*Result, error)
}

// Client is the HTTP implementation of Scanner.
type Client struct {
	baseURL string
	client  *http.Client
}

// Ensure Client implements Scanner.
var _ Scanner = (*Client)(nil)

// NewClient creates a scanner client for the given service base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second, // OCR is slow on large photos
		},
	}
}

type scanRequest struct {
	Image string `json:"image"` // base64
}

// Scan posts the image to the scanning service and decodes its result. A
// non-2xx response or transport failure is an error; a well-formed "could
// not read this receipt" answer is a Result with Success=false.
func (c *Client) Scan(ctx context.Context, image []byte) (*Result, error) {
	body, err := json.Marshal(scanRequest{
		Image: base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode scan request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scan", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build scan request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scan service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("scan service returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode scan response: %w", err)
	}

	slog.Debug("receipt scanned",
		"success", result.Success,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &result, nil
}
