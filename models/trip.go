package models

import "time"

// TripRecord is one row of a city's bikeshare data.
// Month and Weekday are derived from StartTime once, at load time.
type TripRecord struct {
	StartTime    time.Time
	EndTime      time.Time
	Duration     float64 // seconds
	StartStation string
	EndStation   string
	UserType     string
	Gender       string // "" when blank or when the city has no Gender column
	BirthYear    int    // 0 when blank or when the city has no Birth Year column

	Month   time.Month
	Weekday time.Weekday
}

// Derive populates the calendar fields from StartTime.
func (r *TripRecord) Derive() {
	r.Month = r.StartTime.Month()
	r.Weekday = r.StartTime.Weekday()
}

// Hour returns the hour of day (0-23) the trip started.
func (r *TripRecord) Hour() int {
	return r.StartTime.Hour()
}

// Schema records which optional columns a city's source carries.
type Schema struct {
	HasGender    bool
	HasBirthYear bool
}

// Dataset is an ordered sequence of trips for one city. Position is identity;
// a Dataset is not modified after it has been loaded.
type Dataset struct {
	City    City
	Schema  Schema
	Records []TripRecord
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Page returns the records of the zero-based page n. Pages past the end are
// empty; the last page may be partial.
func (d *Dataset) Page(n, size int) []TripRecord {
	if d == nil || n < 0 || size <= 0 {
		return nil
	}
	start := n * size
	if start >= len(d.Records) {
		return nil
	}
	end := start + size
	if end > len(d.Records) {
		end = len(d.Records)
	}
	return d.Records[start:end]
}

// WithRecords returns a Dataset sharing City and Schema but holding recs.
func (d *Dataset) WithRecords(recs []TripRecord) *Dataset {
	return &Dataset{City: d.City, Schema: d.Schema, Records: recs}
}
