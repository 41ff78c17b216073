package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetForecast(t *testing.T) {
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"latitude":   r.URL.Query().Get("latitude"),
			"start_date": r.URL.Query().Get("start_date"),
			"end_date":   r.URL.Query().Get("end_date"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"latitude": 47.6,
			"longitude": -122.33,
			"daily": {
				"time": ["2024-06-15", "2024-06-16"],
				"temperature_2m_max": [21.4, 19.8],
				"temperature_2m_min": [12.1, 11.5],
				"precipitation_probability_max": [10, 60],
				"weathercode": [1, 61]
			}
		}`))
	}))
	defer server.Close()

	ws := NewWeatherService(server.URL)
	forecast, err := ws.GetForecast(47.6, -122.33, "2024-06-15", "2024-06-16")

	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", gotQuery["start_date"])
	assert.Equal(t, "2024-06-16", gotQuery["end_date"])

	require.Len(t, forecast.Days, 2)
	assert.Equal(t, "2024-06-15", forecast.Days[0].Date)
	assert.Equal(t, 21.4, forecast.Days[0].TemperatureMax)
	assert.Equal(t, 60, forecast.Days[1].PrecipitationProbability)
	assert.Equal(t, 61, forecast.Days[1].WeatherCode)
}

func TestGetForecastUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ws := NewWeatherService(server.URL)
	_, err := ws.GetForecast(47.6, -122.33, "2024-06-15", "2024-06-16")

	assert.Error(t, err)
}

func TestGetForecastRaggedDailyArrays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"latitude": 47.6,
			"longitude": -122.33,
			"daily": {
				"time": ["2024-06-15", "2024-06-16"],
				"temperature_2m_max": [21.4],
				"temperature_2m_min": [],
				"precipitation_probability_max": [10, 60],
				"weathercode": [1]
			}
		}`))
	}))
	defer server.Close()

	ws := NewWeatherService(server.URL)
	forecast, err := ws.GetForecast(47.6, -122.33, "2024-06-15", "2024-06-16")

	require.NoError(t, err)
	require.Len(t, forecast.Days, 2)
	assert.Equal(t, 0.0, forecast.Days[1].TemperatureMax)
	assert.Equal(t, 60, forecast.Days[1].PrecipitationProbability)
}
