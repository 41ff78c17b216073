package utils

import (
	"fmt"

	"trailhead-api/models"
)

// Conversion factors between metric and imperial display units
const (
	metersPerMile = 1609.344
	feetPerMeter  = 3.28084
	mphPerKmh     = 0.621371
)

// FormatDistance renders a distance in meters for the given unit system.
// Distances under 100 m are shown as whole meters (or feet) instead of a
// fractional km/mi value; longer distances use km or mi with the configured
// decimal count.
func FormatDistance(meters float64, system models.UnitSystem, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}

	if system == models.UnitSystemImperial {
		if meters < 100 {
			return fmt.Sprintf("%.0f ft", meters*feetPerMeter)
		}
		return fmt.Sprintf("%.*f mi", decimals, meters/metersPerMile)
	}

	if meters < 100 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.*f km", decimals, meters/1000)
}

// FormatSpeed renders a speed given in km/h with one decimal
func FormatSpeed(kmh float64, system models.UnitSystem) string {
	if system == models.UnitSystemImperial {
		return fmt.Sprintf("%.1f mph", kmh*mphPerKmh)
	}
	return fmt.Sprintf("%.1f km/h", kmh)
}

// FormatElevation renders an elevation given in meters with no decimals
func FormatElevation(meters float64, system models.UnitSystem) string {
	if system == models.UnitSystemImperial {
		return fmt.Sprintf("%.0f ft", meters*feetPerMeter)
	}
	return fmt.Sprintf("%.0f m", meters)
}

// FormatDuration renders seconds as "1h 23m" / "23m" / "45s"
func FormatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
