package services

import (
	"time"

	"bikeshare-explorer/models"
)

// TimeStats computes the most frequent start hour, weekday and month.
func TimeStats(ds *models.Dataset) models.TimeReport {
	start := time.Now()
	hours := newTally[int]()
	days := newTally[time.Weekday]()
	months := newTally[time.Month]()

	for i := range ds.Records {
		r := &ds.Records[i]
		hours.add(r.Hour())
		days.add(r.Weekday)
		months.add(r.Month)
	}

	var report models.TimeReport
	if h, ok := hours.mode(); ok {
		d, _ := days.mode()
		m, _ := months.mode()
		report = models.TimeReport{
			HasData:        true,
			PopularHour:    h.Value,
			HourCount:      h.Count,
			PopularWeekday: d.Value,
			WeekdayCount:   d.Count,
			PopularMonth:   m.Value,
			MonthCount:     m.Count,
		}
	}
	report.Elapsed = time.Since(start)
	return report
}

// StationStats computes the most popular start station, end station and
// (start, end) combination. The combination is counted as a single value,
// so it can differ from pairing the two separate modes.
func StationStats(ds *models.Dataset) models.StationReport {
	start := time.Now()
	starts := newTally[string]()
	ends := newTally[string]()
	trips := newTally[models.StationPair]()

	for i := range ds.Records {
		r := &ds.Records[i]
		starts.add(r.StartStation)
		ends.add(r.EndStation)
		trips.add(models.StationPair{Start: r.StartStation, End: r.EndStation})
	}

	var report models.StationReport
	if s, ok := starts.mode(); ok {
		e, _ := ends.mode()
		t, _ := trips.mode()
		report = models.StationReport{
			HasData:      true,
			PopularStart: s.Value,
			StartCount:   s.Count,
			PopularEnd:   e.Value,
			EndCount:     e.Count,
			PopularTrip:  t.Value,
			TripCount:    t.Count,
		}
	}
	report.Elapsed = time.Since(start)
	return report
}

// DurationStats computes total, mean, shortest and longest trip duration.
func DurationStats(ds *models.Dataset) models.DurationReport {
	start := time.Now()
	report := models.DurationReport{Trips: ds.Len()}

	for i := range ds.Records {
		d := ds.Records[i].Duration
		report.Total += d
		if i == 0 || d < report.Min {
			report.Min = d
		}
		if i == 0 || d > report.Max {
			report.Max = d
		}
	}
	if report.Trips > 0 {
		report.HasData = true
		report.Mean = report.Total / float64(report.Trips)
	}

	report.Elapsed = time.Since(start)
	return report
}

// UserStats computes the user type distribution and, when the dataset has the
// columns, the gender distribution and birth year range and mode. Blank
// values are left out of every count.
func UserStats(ds *models.Dataset) models.UserReport {
	start := time.Now()
	report := models.UserReport{
		HasData:            ds.Len() > 0,
		GenderAvailable:    ds.Schema.HasGender,
		BirthYearAvailable: ds.Schema.HasBirthYear,
	}

	userTypes := newTally[string]()
	genders := newTally[string]()
	years := newTally[int]()

	for i := range ds.Records {
		r := &ds.Records[i]
		if r.UserType != "" {
			userTypes.add(r.UserType)
		}
		if report.GenderAvailable && r.Gender != "" {
			genders.add(r.Gender)
		}
		if report.BirthYearAvailable && r.BirthYear > 0 {
			years.add(r.BirthYear)
			if !report.BirthYear.HasData || r.BirthYear < report.BirthYear.Earliest {
				report.BirthYear.Earliest = r.BirthYear
			}
			if !report.BirthYear.HasData || r.BirthYear > report.BirthYear.Latest {
				report.BirthYear.Latest = r.BirthYear
			}
			report.BirthYear.HasData = true
		}
	}

	report.UserTypes = toCounts(userTypes.sorted())
	if report.GenderAvailable {
		report.Genders = toCounts(genders.sorted())
	}
	if y, ok := years.mode(); ok {
		report.BirthYear.MostCommon = y.Value
	}

	report.Elapsed = time.Since(start)
	return report
}

func toCounts(entries []Counted[string]) []models.Count {
	out := make([]models.Count, len(entries))
	for i, e := range entries {
		out[i] = models.Count{Value: e.Value, Count: e.Count}
	}
	return out
}
