package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"trailhead-api/services"
	"trailhead-api/utils"
)

type WeatherController struct {
	weatherService *services.WeatherService
}

func NewWeatherController(weatherService *services.WeatherService) *WeatherController {
	return &WeatherController{weatherService: weatherService}
}

// GetForecast proxies the daily forecast for a coordinate. Defaults to a
// 7-day window starting today when no dates are given.
func (wc *WeatherController) GetForecast(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("longitude"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude are required"})
		return
	}
	if !utils.IsValidLatitude(lat) || !utils.IsValidLongitude(lng) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" {
		startDate = time.Now().Format("2006-01-02")
	}
	if endDate == "" {
		endDate = time.Now().AddDate(0, 0, 6).Format("2006-01-02")
	}

	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be in YYYY-MM-DD format"})
			return
		}
	}

	forecast, err := wc.weatherService.GetForecast(lat, lng, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch forecast"})
		return
	}

	c.JSON(http.StatusOK, forecast)
}
