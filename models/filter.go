package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// City identifies one of the supported bikeshare systems.
type City string

const (
	Chicago     City = "chicago"
	NewYorkCity City = "new york city"
	Washington  City = "washington"
)

// Cities lists the supported cities in prompt order.
var Cities = []City{Chicago, NewYorkCity, Washington}

// defaultSources maps each city to the name of its data source.
var defaultSources = map[City]string{
	Chicago:     "chicago.csv",
	NewYorkCity: "new_york_city.csv",
	Washington:  "washington.csv",
}

// SourceName returns the default data source name for the city.
func (c City) SourceName() string {
	return defaultSources[c]
}

// Title returns the display name, e.g. "New York City".
func (c City) Title() string {
	words := strings.Fields(string(c))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ParseCity matches s case-insensitively against the supported cities.
func ParseCity(s string) (City, error) {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	for _, c := range Cities {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCity, s)
}

// AllFilter is the user's answer meaning "no filter".
const AllFilter = "all"

// ParseMonth accepts a full month name or "all". "all" yields 0.
func ParseMonth(s string) (time.Month, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == AllFilter {
		return 0, nil
	}
	for m := time.January; m <= time.December; m++ {
		if strings.ToLower(m.String()) == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: month %q", ErrInvalidInput, s)
}

// ParseWeekday accepts a full weekday name or "all". "all" yields nil.
func ParseWeekday(s string) (*time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == AllFilter {
		return nil, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == s {
			wd := d
			return &wd, nil
		}
	}
	return nil, fmt.Errorf("%w: weekday %q", ErrInvalidInput, s)
}

// FilterCriteria is one session iteration's selection.
type FilterCriteria struct {
	City    City          `validate:"required,oneof=chicago 'new york city' washington"`
	Month   time.Month    `validate:"min=0,max=12"`
	Weekday *time.Weekday `validate:"omitempty,min=0,max=6"`
}

// Validate checks that the criteria were built from accepted values.
func (f FilterCriteria) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// String renders the criteria for logs and report headers.
func (f FilterCriteria) String() string {
	month, day := "all months", "all days"
	if f.Month != 0 {
		month = f.Month.String()
	}
	if f.Weekday != nil {
		day = f.Weekday.String()
	}
	return fmt.Sprintf("%s | %s | %s", f.City.Title(), month, day)
}
