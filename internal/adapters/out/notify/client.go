// Package notify provides the HTTP client for run completion notifications.
// Notifications are fire-and-forget; the caller logs failures and moves on.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"production/internal/core/domain/model/kernel"
)

// Client implements Notifier over the notification service's JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the notification service at the given base
// URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type runCompletedRequest struct {
	RunID       string `json:"runId"`
	TotalGood   int    `json:"totalGood"`
	TotalReject int    `json:"totalReject"`
}

// NotifyRunCompleted posts a completion notification.
func (c *Client) NotifyRunCompleted(ctx context.Context, runID kernel.UUID, totalGood, totalReject int) error {
	payload, err := json.Marshal(runCompletedRequest{
		RunID:       runID.String(),
		TotalGood:   totalGood,
		TotalReject: totalReject,
	})
	if err != nil {
		return err
	}

	url := c.baseURL + "/api/v1/notifications/run-completed"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}

	return nil
}
