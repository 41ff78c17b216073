package services

import (
	"errors"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/filedef"
	"github.com/muktihari/fit/profile/typedef"

	"trailhead-api/models"
)

// ImportService turns uploaded FIT activity files into Activity rows
type ImportService struct{}

func NewImportService() *ImportService {
	return &ImportService{}
}

var ErrNotActivityFile = errors.New("uploaded file is not a FIT activity")

// ImportFIT decodes a FIT stream into a completed activity for the user.
// Session totals win over values derived from records when both exist.
func (is *ImportService) ImportFIT(r io.Reader, userID string) (*models.Activity, error) {
	lis := filedef.NewListener()
	defer lis.Close()

	dec := decoder.New(r,
		decoder.WithMesgListener(lis),
		decoder.WithBroadcastOnly(),
	)
	if _, err := dec.Decode(); err != nil {
		return nil, err
	}

	activityFile, ok := lis.File().(*filedef.Activity)
	if !ok {
		return nil, ErrNotActivityFile
	}

	activity := &models.Activity{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        models.ActivityTypeOther,
		Route:       models.CoordSlice{},
		IsCompleted: true,
	}

	for _, rec := range activityFile.Records {
		lat := rec.PositionLatDegrees()
		lng := rec.PositionLongDegrees()
		if math.IsNaN(lat) || math.IsNaN(lng) {
			continue
		}
		activity.Route = append(activity.Route, models.Coordinate{
			Latitude:  lat,
			Longitude: lng,
		})
	}

	if len(activityFile.Sessions) > 0 {
		session := activityFile.Sessions[0]
		activity.Type = mapSport(session.Sport)
		activity.StartTime = session.StartTime

		if d := session.TotalDistanceScaled(); !math.IsNaN(d) {
			activity.Distance = d // meters
		}
		if t := session.TotalElapsedTimeScaled(); !math.IsNaN(t) {
			activity.Duration = int(t) // seconds
			end := session.StartTime.Add(time.Duration(t) * time.Second)
			activity.EndTime = &end
		}
		if v := session.AvgSpeedScaled(); !math.IsNaN(v) {
			activity.AverageSpeed = v * 3.6 // m/s -> km/h
		}
		if v := session.MaxSpeedScaled(); !math.IsNaN(v) {
			activity.MaxSpeed = v * 3.6
		}
	} else if len(activityFile.Records) > 0 {
		activity.StartTime = activityFile.Records[0].Timestamp
		last := activityFile.Records[len(activityFile.Records)-1].Timestamp
		activity.EndTime = &last
		activity.Duration = int(last.Sub(activity.StartTime).Seconds())
	}

	if activity.StartTime.IsZero() {
		activity.StartTime = time.Now()
	}

	return activity, nil
}

func mapSport(sport typedef.Sport) models.ActivityType {
	switch sport {
	case typedef.SportCycling:
		return models.ActivityTypeBike
	case typedef.SportRunning:
		return models.ActivityTypeRun
	case typedef.SportWalking:
		return models.ActivityTypeWalk
	case typedef.SportHiking:
		return models.ActivityTypeHike
	case typedef.SportStandUpPaddleboarding:
		return models.ActivityTypePaddleboard
	case typedef.SportRockClimbing:
		return models.ActivityTypeClimb
	default:
		return models.ActivityTypeOther
	}
}
