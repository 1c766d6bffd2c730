// Package advisory provides the HTTP client for the run analysis service.
// The service is consulted after a run start commits; its answer is logged
// and never influences the committed state, so the client favors failing
// fast over retrying.
package advisory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
)

// Client implements AdvisoryService over the analysis service's JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the analysis service at the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type analyzeRunResponse struct {
	Risk            string   `json:"risk"`
	Recommendations []string `json:"recommendations"`
	Confidence      float64  `json:"confidence"`
}

// AnalyzeRun requests an analysis of the just-started run. The caller's
// context deadline bounds the whole round trip.
func (c *Client) AnalyzeRun(ctx context.Context, runID kernel.UUID) (ports.Advisory, error) {
	url := fmt.Sprintf("%s/api/v1/runs/%s/analysis", c.baseURL, runID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.Advisory{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Advisory{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.Advisory{}, fmt.Errorf("advisory service returned status %d", resp.StatusCode)
	}

	var body analyzeRunResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ports.Advisory{}, err
	}

	return ports.Advisory{
		Risk:            body.Risk,
		Recommendations: body.Recommendations,
		Confidence:      body.Confidence,
	}, nil
}
