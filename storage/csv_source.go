package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bikeshare-explorer/models"
	"bikeshare-explorer/utils"
)

// Column headers as they appear in the city files.
const (
	colStartTime    = "Start Time"
	colEndTime      = "End Time"
	colTripDuration = "Trip Duration"
	colStartStation = "Start Station"
	colEndStation   = "End Station"
	colUserType     = "User Type"
	colGender       = "Gender"
	colBirthYear    = "Birth Year"
)

var requiredColumns = []string{
	colStartTime, colEndTime, colTripDuration, colStartStation, colEndStation, colUserType,
}

// timeLayouts are tried in order when parsing Start Time and End Time.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// CSVSource reads city trip files from a directory.
type CSVSource struct {
	dir     string
	catalog Catalog
	logger  *utils.Logger
}

// NewCSVSource creates a CSVSource resolving file names through catalog.
func NewCSVSource(dir string, catalog Catalog, logger *utils.Logger) *CSVSource {
	return &CSVSource{dir: dir, catalog: catalog, logger: logger}
}

// Load opens the city's file and parses it into a Dataset with derived fields.
func (s *CSVSource) Load(ctx context.Context, city models.City) (*models.Dataset, error) {
	name := s.catalog.SourceName(city)
	if name == "" {
		return nil, fmt.Errorf("csv: %w: no source for %q", models.ErrDataSourceUnavailable, city)
	}
	path := filepath.Join(s.dir, name)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w: %w", path, models.ErrDataSourceUnavailable, err)
	}
	defer f.Close()

	start := time.Now()
	ds, err := ReadTrips(ctx, f, city, s.logger)
	if err != nil {
		return nil, fmt.Errorf("csv: read %q: %w", path, err)
	}
	s.logger.Info("[csv] Loaded %d trips for %s from %s in %v",
		ds.Len(), city.Title(), path, time.Since(start).Round(time.Millisecond))
	return ds, nil
}

// header maps column names to their index; -1 means absent.
type header map[string]int

func newHeader(row []string) header {
	h := header{}
	for _, col := range []string{
		colStartTime, colEndTime, colTripDuration, colStartStation,
		colEndStation, colUserType, colGender, colBirthYear,
	} {
		h[col] = -1
		for i, name := range row {
			if strings.EqualFold(strings.TrimSpace(name), col) {
				h[col] = i
				break
			}
		}
	}
	return h
}

func (h header) get(row []string, col string) string {
	i := h[col]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ReadTrips parses trip rows from r. The first row must be a header. Rows
// whose timestamps or duration cannot be parsed are skipped and counted.
func ReadTrips(ctx context.Context, r io.Reader, city models.City, logger *utils.Logger) (*models.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", models.ErrDataSourceUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", models.ErrDataSourceUnavailable, err)
	}

	h := newHeader(first)
	var missing []string
	for _, col := range requiredColumns {
		if h[col] < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s",
			models.ErrDataSourceUnavailable, strings.Join(missing, ", "))
	}

	ds := &models.Dataset{
		City: city,
		Schema: models.Schema{
			HasGender:    h[colGender] >= 0,
			HasBirthYear: h[colBirthYear] >= 0,
		},
	}

	skipped := 0
	for line := 2; ; line++ {
		if line%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseRow(h, row)
		if err != nil {
			skipped++
			logger.Debug("[csv] Skipping line %d: %v", line, err)
			continue
		}
		ds.Records = append(ds.Records, rec)
	}

	if skipped > 0 {
		logger.Warn("[csv] Skipped %d unparseable rows for %s", skipped, city.Title())
	}
	return ds, nil
}

func parseRow(h header, row []string) (models.TripRecord, error) {
	var rec models.TripRecord
	var err error

	if rec.StartTime, err = parseTime(h.get(row, colStartTime)); err != nil {
		return rec, fmt.Errorf("start time: %w", err)
	}
	if rec.EndTime, err = parseTime(h.get(row, colEndTime)); err != nil {
		return rec, fmt.Errorf("end time: %w", err)
	}

	rec.Duration, err = strconv.ParseFloat(h.get(row, colTripDuration), 64)
	if err != nil {
		return rec, fmt.Errorf("trip duration: %w", err)
	}
	if rec.Duration < 0 {
		return rec, fmt.Errorf("trip duration: negative value %v", rec.Duration)
	}

	rec.StartStation = h.get(row, colStartStation)
	rec.EndStation = h.get(row, colEndStation)
	rec.UserType = h.get(row, colUserType)
	rec.Gender = h.get(row, colGender)
	rec.BirthYear = parseBirthYear(h.get(row, colBirthYear))

	rec.Derive()
	return rec, nil
}

func parseTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// parseBirthYear accepts "1989" and "1989.0". Blank or invalid values yield 0.
func parseBirthYear(s string) int {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0
	}
	return int(f)
}
