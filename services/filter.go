package services

import (
	"time"

	"bikeshare-explorer/models"
)

// Filter returns the records of ds matching both the month and the weekday
// criterion. The input is never modified and an empty match is not an error.
func Filter(ds *models.Dataset, c models.FilterCriteria) *models.Dataset {
	return FilterByWeekday(FilterByMonth(ds, c.Month), c.Weekday)
}

// FilterByMonth keeps records started in month m. A zero month keeps everything.
func FilterByMonth(ds *models.Dataset, m time.Month) *models.Dataset {
	if m == 0 {
		return keep(ds, func(*models.TripRecord) bool { return true })
	}
	return keep(ds, func(r *models.TripRecord) bool { return r.Month == m })
}

// FilterByWeekday keeps records started on weekday d. A nil weekday keeps everything.
func FilterByWeekday(ds *models.Dataset, d *time.Weekday) *models.Dataset {
	if d == nil {
		return keep(ds, func(*models.TripRecord) bool { return true })
	}
	day := *d
	return keep(ds, func(r *models.TripRecord) bool { return r.Weekday == day })
}

func keep(ds *models.Dataset, pred func(*models.TripRecord) bool) *models.Dataset {
	out := make([]models.TripRecord, 0, len(ds.Records))
	for i := range ds.Records {
		if pred(&ds.Records[i]) {
			out = append(out, ds.Records[i])
		}
	}
	return ds.WithRecords(out)
}
