package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chingu-voyage/heartbeat/internal/contract"
)

const publishTimeout = 30 * time.Second

// HTTPSheetSink publishes spreadsheet payloads to a Sheets-compatible
// HTTP endpoint.
type HTTPSheetSink struct {
	endpoint string
	client   *http.Client
}

var _ contract.SheetSink = &HTTPSheetSink{} // Compile-time check

// NewHTTPSheetSink creates a sink targeting the given endpoint.
func NewHTTPSheetSink(endpoint string) *HTTPSheetSink {
	return &HTTPSheetSink{
		endpoint: endpoint,
		client:   &http.Client{Timeout: publishTimeout},
	}
}

// publishResponse is the subset of the creation response we care about.
type publishResponse struct {
	SpreadsheetID  string `json:"spreadsheetId"`
	SpreadsheetURL string `json:"spreadsheetUrl"`
}

// Publish implements the SheetSink interface.
func (s *HTTPSheetSink) Publish(ctx context.Context, token string, payload []byte) (string, error) {
	if s.endpoint == "" {
		return "", fmt.Errorf("sheet endpoint is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to publish spreadsheet: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read publish response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("publish failed with status %d: %s", resp.StatusCode, string(body))
	}

	var parsed publishResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse publish response: %w", err)
	}
	if parsed.SpreadsheetURL == "" {
		return "", fmt.Errorf("publish response is missing spreadsheetUrl")
	}

	return parsed.SpreadsheetURL, nil
}
