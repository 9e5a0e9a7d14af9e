package services

import (
	"testing"
	"time"

	"bikeshare-explorer/models"
)

// trip builds a derived record starting at the given "2006-01-02 15:04" time.
func trip(t *testing.T, start string, from, to string) models.TripRecord {
	t.Helper()
	st, err := time.ParseInLocation("2006-01-02 15:04", start, time.UTC)
	if err != nil {
		t.Fatalf("bad start %q: %v", start, err)
	}
	r := models.TripRecord{
		StartTime:    st,
		EndTime:      st.Add(10 * time.Minute),
		Duration:     600,
		StartStation: from,
		EndStation:   to,
		UserType:     "Subscriber",
	}
	r.Derive()
	return r
}

// mixedDataset spans several months and weekdays.
// 2017-01-02 Mon, 2017-01-07 Sat, 2017-02-06 Mon, 2017-02-11 Sat, 2017-03-06 Mon, 2017-06-23 Fri.
func mixedDataset(t *testing.T) *models.Dataset {
	return &models.Dataset{
		City:   models.Chicago,
		Schema: models.Schema{HasGender: true, HasBirthYear: true},
		Records: []models.TripRecord{
			trip(t, "2017-01-02 08:00", "A", "B"),
			trip(t, "2017-01-07 09:00", "A", "C"),
			trip(t, "2017-02-06 17:00", "B", "A"),
			trip(t, "2017-02-11 08:00", "C", "A"),
			trip(t, "2017-03-06 07:00", "A", "B"),
			trip(t, "2017-06-23 15:00", "X", "Y"),
		},
	}
}

func weekday(d time.Weekday) *time.Weekday { return &d }
