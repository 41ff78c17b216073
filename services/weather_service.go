package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// WeatherService proxies a public daily-forecast API (Open-Meteo compatible)
// so the client never talks to the provider directly.
type WeatherService struct {
	baseURL string
	client  *http.Client
}

func NewWeatherService(baseURL string) *WeatherService {
	return &WeatherService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// DailyForecast is one day of the forecast window
type DailyForecast struct {
	Date                     string  `json:"date"`
	TemperatureMax           float64 `json:"temperature_max"`
	TemperatureMin           float64 `json:"temperature_min"`
	PrecipitationProbability int     `json:"precipitation_probability"`
	WeatherCode              int     `json:"weather_code"`
}

// ForecastResponse is what the weather endpoint returns to the client
type ForecastResponse struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Days      []DailyForecast `json:"days"`
}

// upstream response shape: parallel arrays under "daily"
type openMeteoResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Daily     struct {
		Time                        []string  `json:"time"`
		Temperature2mMax            []float64 `json:"temperature_2m_max"`
		Temperature2mMin            []float64 `json:"temperature_2m_min"`
		PrecipitationProbabilityMax []int     `json:"precipitation_probability_max"`
		WeatherCode                 []int     `json:"weathercode"`
	} `json:"daily"`
}

// GetForecast fetches the daily forecast for a coordinate and date range
func (ws *WeatherService) GetForecast(lat, lng float64, startDate, endDate string) (*ForecastResponse, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lng))
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max,weathercode")
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)
	params.Set("timezone", "auto")

	resp, err := ws.client.Get(ws.baseURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	var upstream openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	forecast := &ForecastResponse{
		Latitude:  upstream.Latitude,
		Longitude: upstream.Longitude,
		Days:      make([]DailyForecast, 0, len(upstream.Daily.Time)),
	}

	for i, date := range upstream.Daily.Time {
		day := DailyForecast{Date: date}
		if i < len(upstream.Daily.Temperature2mMax) {
			day.TemperatureMax = upstream.Daily.Temperature2mMax[i]
		}
		if i < len(upstream.Daily.Temperature2mMin) {
			day.TemperatureMin = upstream.Daily.Temperature2mMin[i]
		}
		if i < len(upstream.Daily.PrecipitationProbabilityMax) {
			day.PrecipitationProbability = upstream.Daily.PrecipitationProbabilityMax[i]
		}
		if i < len(upstream.Daily.WeatherCode) {
			day.WeatherCode = upstream.Daily.WeatherCode[i]
		}
		forecast.Days = append(forecast.Days, day)
	}

	return forecast, nil
}
