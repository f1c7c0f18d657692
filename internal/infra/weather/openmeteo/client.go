package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/seristack/cocoon-recommender/internal/domain/forecast"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// Coordinates pins a supported city on the map.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Client fetches hourly forecasts from Open-Meteo and condenses them into
// daily summaries via the forecast aggregator.
type Client struct {
	baseURL    string
	cities     map[string]Coordinates
	httpClient *http.Client
}

// NewClient builds an API client for the configured city set.
func NewClient(baseURL string, cities map[string]Coordinates) *Client {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		cities:  cities,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Forecast retrieves the next `days` of weather for a city as daily
// summaries. Unknown cities map to the first configured city's coordinates;
// the price model, not the weather provider, is the authority on supported
// cities.
func (c *Client) Forecast(ctx context.Context, city string, days int) ([]forecast.DailySummary, error) {
	coords, ok := c.cities[city]
	if !ok {
		for _, fallback := range c.cities {
			coords = fallback
			break
		}
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', 4, 64))
	params.Set("hourly", "temperature_2m,rain,relative_humidity_2m")
	// Daily summaries are partitioned by UTC calendar day, so the upstream
	// hours must be UTC-aligned too. With a local timezone the response
	// starts at local midnight and every run straddles two UTC days.
	params.Set("timezone", "UTC")
	params.Set("forecast_days", strconv.Itoa(days))
	params.Set("timeformat", "unixtime")
	endpoint := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("forecast request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read forecast response: %w", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}

	samples := toSamples(raw.Hourly)
	if len(samples) == 0 {
		return nil, fmt.Errorf("forecast response contained no hourly data")
	}
	return forecast.Aggregate(samples), nil
}

type apiResponse struct {
	Hourly hourlyBlock `json:"hourly"`
}

type hourlyBlock struct {
	Time             []int64    `json:"time"`
	Temperature      []*float64 `json:"temperature_2m"`
	Rain             []*float64 `json:"rain"`
	RelativeHumidity []*float64 `json:"relative_humidity_2m"`
}

// toSamples pairs each hourly timestamp with its readings. Parallel arrays
// may be shorter than the time axis; missing entries stay nil.
func toSamples(h hourlyBlock) []forecast.Sample {
	samples := make([]forecast.Sample, 0, len(h.Time))
	for i, ts := range h.Time {
		sample := forecast.Sample{Timestamp: time.Unix(ts, 0).UTC()}
		if i < len(h.Temperature) {
			sample.Temperature = h.Temperature[i]
		}
		if i < len(h.RelativeHumidity) {
			sample.Humidity = h.RelativeHumidity[i]
		}
		if i < len(h.Rain) {
			sample.Precipitation = h.Rain[i]
		}
		samples = append(samples, sample)
	}
	return samples
}
