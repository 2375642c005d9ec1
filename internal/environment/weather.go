// Package environment fetches the transient inputs of a safety assessment:
// current weather from Open-Meteo and nearby emergency facilities from the
// OpenStreetMap Overpass API. Neither provider needs an API key. Provider
// failures degrade the snapshot instead of failing the caller.
package environment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"guesthouse_backend/internal/assessment/domain"
	"guesthouse_backend/platform/logger"
)

const userAgent = "GuesthouseSafety/1.0"

// openMeteoTime is the timestamp layout Open-Meteo uses for current
// conditions.
const openMeteoTime = "2006-01-02T15:04"

// WeatherClient queries Open-Meteo for current conditions.
type WeatherClient struct {
	baseURL string
	client  *http.Client
	log     *logger.Logger
}

func NewWeatherClient(baseURL string, log *logger.Logger) *WeatherClient {
	return &WeatherClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

type openMeteoResponse struct {
	Current struct {
		Time          string  `json:"time"`
		Temperature2M float64 `json:"temperature_2m"`
		Precipitation float64 `json:"precipitation"`
		Rain          float64 `json:"rain"`
		WindSpeed10M  float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

// Current fetches the current weather observation at a coordinate.
func (c *WeatherClient) Current(ctx context.Context, lat, lon float64) (*domain.WeatherObservation, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("current", "temperature_2m,precipitation,rain,wind_speed_10m")
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather upstream error: %d", resp.StatusCode)
	}

	var raw openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	observedAt := time.Now().UTC()
	if ts, err := time.Parse(openMeteoTime, raw.Current.Time); err == nil {
		observedAt = ts
	}

	return &domain.WeatherObservation{
		TemperatureC:    raw.Current.Temperature2M,
		PrecipitationMM: raw.Current.Precipitation,
		RainMM:          raw.Current.Rain,
		WindSpeedKMH:    raw.Current.WindSpeed10M,
		ObservedAt:      observedAt,
	}, nil
}
