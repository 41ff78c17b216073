package utils

import (
	"fmt"
	"strings"

	"trailhead-api/models"
)

// GenerateGPX builds a GPX XML document from an activity's recorded route
func GenerateGPX(activity *models.Activity) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString(`<gpx version="1.1" creator="Trailhead">`)
	sb.WriteString(fmt.Sprintf(`<metadata><time>%s</time></metadata>`,
		activity.StartTime.UTC().Format("2006-01-02T15:04:05Z")))
	sb.WriteString(fmt.Sprintf(`<trk><name>%s</name><trkseg>`, string(activity.Type)))

	for _, pt := range activity.Route {
		sb.WriteString(fmt.Sprintf(
			`<trkpt lat="%f" lon="%f"></trkpt>`,
			pt.Latitude, pt.Longitude,
		))
	}

	sb.WriteString(`</trkseg></trk></gpx>`)
	return sb.String()
}
