package models

import "time"

// Count is one row of a frequency table.
type Count struct {
	Value string
	Count int
}

// TimeReport holds the most frequent times of travel.
type TimeReport struct {
	HasData bool

	PopularHour    int
	HourCount      int
	PopularWeekday time.Weekday
	WeekdayCount   int
	PopularMonth   time.Month
	MonthCount     int

	Elapsed time.Duration
}

// StationPair is a (start, end) combination treated as one value.
type StationPair struct {
	Start string
	End   string
}

// StationReport holds the most popular stations and trip.
type StationReport struct {
	HasData bool

	PopularStart string
	StartCount   int
	PopularEnd   string
	EndCount     int
	PopularTrip  StationPair
	TripCount    int

	Elapsed time.Duration
}

// DurationReport holds total and average trip duration in seconds.
// Mean, Min and Max are only meaningful when HasData is set.
type DurationReport struct {
	HasData bool

	Trips int
	Total float64
	Mean  float64
	Min   float64
	Max   float64

	Elapsed time.Duration
}

// BirthYearStats summarises the Birth Year column.
type BirthYearStats struct {
	HasData    bool
	Earliest   int
	Latest     int
	MostCommon int
}

// UserReport holds user demographics. The Available flags mirror the
// dataset's Schema; a false flag means the column does not exist.
type UserReport struct {
	HasData bool

	UserTypes []Count

	GenderAvailable bool
	Genders         []Count

	BirthYearAvailable bool
	BirthYear          BirthYearStats

	Elapsed time.Duration
}

// StatisticsReport aggregates all reporters' output for one session iteration.
type StatisticsReport struct {
	Criteria FilterCriteria
	Trips    int

	Time     TimeReport
	Stations StationReport
	Duration DurationReport
	Users    UserReport
}
