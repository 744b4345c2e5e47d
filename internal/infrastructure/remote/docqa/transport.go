package docqa

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	requestIDHeader  = "X-Request-Id"
	maxResponseBytes = 8 << 20
)

func (c *Client) postMultipart(ctx context.Context, path string, body io.Reader, contentType, operation string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", operation, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", jsonContentType)
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("docqa %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("docqa_request",
		"request_id", requestID,
		"operation", operation,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)

	if resp.StatusCode >= 300 {
		return nil, newHTTPStatusError(operation, resp)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", operation, err)
	}
	return raw, nil
}

func newHTTPStatusError(operation string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &HTTPStatusError{
		Operation:  operation,
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       string(body),
	}
}
