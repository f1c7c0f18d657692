package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/seristack/cocoon-recommender/internal/domain/pricing"
)

// Client calls the model-serving endpoint that hosts the trained price
// regressor. The serving process is stateless and safe for concurrent
// inference; failures here are recovered by the pricing oracle.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a predictor client. An empty base URL yields a client
// whose predictions always fail, which the oracle degrades to fallback.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type predictRequest struct {
	FeatureNames []string  `json:"feature_names"`
	Features     []float64 `json:"features"`
}

type predictResponse struct {
	PredictedPrice float64 `json:"predicted_price"`
	Error          string  `json:"error"`
}

// Predict runs one inference over the fixed-order feature vector.
func (c *Client) Predict(ctx context.Context, features pricing.FeatureVector) (float64, error) {
	if c.baseURL == "" {
		return 0, errors.New("predictor url not configured")
	}

	payload, err := json.Marshal(predictRequest{
		FeatureNames: pricing.FeatureNames,
		Features:     features.Values(),
	})
	if err != nil {
		return 0, fmt.Errorf("encode predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("predict request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return 0, fmt.Errorf("predict request error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode predict response: %w", err)
	}
	if parsed.Error != "" {
		return 0, fmt.Errorf("predictor error: %s", parsed.Error)
	}
	return parsed.PredictedPrice, nil
}

var _ pricing.Predictor = (*Client)(nil)
