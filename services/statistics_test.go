package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare-explorer/models"
	"bikeshare-explorer/utils"
)

func TestGenerateMatchesIndividualReporters(t *testing.T) {
	svc := NewStatisticsService(utils.NopLogger())
	ds := mixedDataset(t)
	criteria := models.FilterCriteria{City: models.Chicago}

	r := svc.Generate(ds, criteria)

	assert.Equal(t, criteria, r.Criteria)
	assert.Equal(t, 6, r.Trips)
	assert.Equal(t, TimeStats(ds).PopularHour, r.Time.PopularHour)
	assert.Equal(t, StationStats(ds).PopularTrip, r.Stations.PopularTrip)
	assert.Equal(t, DurationStats(ds).Total, r.Duration.Total)
	assert.Equal(t, UserStats(ds).UserTypes, r.Users.UserTypes)
}

func TestPrintFullReport(t *testing.T) {
	svc := NewStatisticsService(utils.NopLogger())
	ds := mixedDataset(t)
	ds.Records[0].Gender = "Male"
	ds.Records[0].BirthYear = 1988

	var buf bytes.Buffer
	svc.Print(&buf, svc.Generate(ds, models.FilterCriteria{City: models.Chicago}))
	out := buf.String()

	assert.Contains(t, out, "Chicago | all months | all days")
	assert.Contains(t, out, "08:00")
	assert.Contains(t, out, "A → B")
	assert.Contains(t, out, "3,600 s")
	assert.Contains(t, out, "Subscriber")
	assert.Contains(t, out, "Earliest birth year    : 1988")
	assert.NotContains(t, out, notAvailable)
}

func TestPrintMissingColumns(t *testing.T) {
	svc := NewStatisticsService(utils.NopLogger())
	ds := mixedDataset(t)
	ds.Schema = models.Schema{}

	var buf bytes.Buffer
	svc.Print(&buf, svc.Generate(ds, models.FilterCriteria{City: models.Washington}))
	out := buf.String()

	assert.Contains(t, out, "Gender: "+notAvailable)
	assert.Contains(t, out, "Birth year: "+notAvailable)
}

func TestPrintEmptyReport(t *testing.T) {
	svc := NewStatisticsService(utils.NopLogger())
	criteria := models.FilterCriteria{City: models.Chicago, Month: time.December}
	ds := Filter(mixedDataset(t), criteria)

	var buf bytes.Buffer
	require.NotPanics(t, func() { svc.Print(&buf, svc.Generate(ds, criteria)) })
	out := buf.String()

	assert.Equal(t, 4, bytes.Count(buf.Bytes(), []byte(noData)), "every section reports no data")
	assert.Contains(t, out, "Total duration   : 0 s")
	assert.Contains(t, out, "December")
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0s"},
		{59.6, "1m0s"},
		{3723, "1h2m3s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSeconds(tt.in), "formatSeconds(%v)", tt.in)
	}
}
