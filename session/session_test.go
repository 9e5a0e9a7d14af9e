package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare-explorer/models"
	"bikeshare-explorer/services"
	"bikeshare-explorer/storage"
	"bikeshare-explorer/utils"
)

// fakeSource is a hand-written TripSource; load is called for every Load.
type fakeSource struct {
	load  func(ctx context.Context, city models.City) (*models.Dataset, error)
	calls []models.City
}

func (f *fakeSource) Load(ctx context.Context, city models.City) (*models.Dataset, error) {
	f.calls = append(f.calls, city)
	return f.load(ctx, city)
}

var _ storage.TripSource = (*fakeSource)(nil)

// januaryMondays returns n Chicago trips, all on Mondays in January 2017.
func januaryMondays(n int) *models.Dataset {
	ds := &models.Dataset{City: models.Chicago, Schema: models.Schema{HasGender: true, HasBirthYear: true}}
	start := time.Date(2017, 1, 2, 8, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		st := start.AddDate(0, 0, 7*(i%4))
		r := models.TripRecord{
			StartTime:    st,
			EndTime:      st.Add(5 * time.Minute),
			Duration:     300,
			StartStation: fmt.Sprintf("Station %d", i),
			EndStation:   "Clark St & Elm St",
			UserType:     "Subscriber",
			Gender:       "Female",
			BirthYear:    1980 + i,
		}
		r.Derive()
		ds.Records = append(ds.Records, r)
	}
	return ds
}

func staticSource(ds *models.Dataset) *fakeSource {
	return &fakeSource{load: func(context.Context, models.City) (*models.Dataset, error) { return ds, nil }}
}

func runSession(t *testing.T, src storage.TripSource, input string) string {
	t.Helper()
	var out bytes.Buffer
	s := New(strings.NewReader(input), &out, src, services.NewStatisticsService(utils.NopLogger()), utils.NopLogger(), 5)
	require.NoError(t, s.Run(context.Background()))
	return out.String()
}

func TestSessionFullIteration(t *testing.T) {
	src := staticSource(januaryMondays(7))

	out := runSession(t, src, "chicago\nall\nall\nyes\nyes\nno\n")

	assert.Equal(t, []models.City{models.Chicago}, src.calls)
	assert.Contains(t, out, "BIKESHARE STATISTICS")
	assert.Contains(t, out, "There are 7 rows!")
	assert.Contains(t, out, "Station 0")
	assert.Contains(t, out, "Station 4")
	assert.Contains(t, out, "Station 6", "second page shown")
	assert.Contains(t, out, "That was the last row.")
	assert.Equal(t, 1, strings.Count(out, "Do you want to see 5 more rows?"))
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
}

func TestSessionDeclinesRawData(t *testing.T) {
	out := runSession(t, staticSource(januaryMondays(7)), "Chicago\nALL\nAll\nno\nno\n")

	assert.NotContains(t, out, "Station 4")
	assert.NotContains(t, out, "Start Time")
	assert.Contains(t, out, "Goodbye!")
}

func TestSessionStopsPagingOnDecline(t *testing.T) {
	out := runSession(t, staticSource(januaryMondays(12)), "chicago\nall\nall\ny\nn\nno\n")

	assert.Contains(t, out, "Station 4")
	assert.NotContains(t, out, "Station 5")
	assert.NotContains(t, out, "That was the last row.")
}

func TestSessionRepromptsOnInvalidInput(t *testing.T) {
	src := staticSource(januaryMondays(3))

	out := runSession(t, src, "boston\nnew york city\njan\njanuary\nfunday\nmonday\nmaybe\nno\nno\n")

	assert.Contains(t, out, `"boston" is not a valid input!`)
	assert.Contains(t, out, `"jan" is not a valid input!`)
	assert.Contains(t, out, `"funday" is not a valid input!`)
	assert.Contains(t, out, `"maybe" is not a valid input!`)
	assert.Equal(t, []models.City{models.NewYorkCity}, src.calls)
	assert.Contains(t, out, "January | Monday")
}

func TestSessionRestart(t *testing.T) {
	src := staticSource(januaryMondays(3))

	out := runSession(t, src, "chicago\nall\nall\nno\nyes\nwashington\njune\nfriday\nno\n")

	assert.Equal(t, []models.City{models.Chicago, models.Washington}, src.calls)
	assert.Contains(t, out, "Washington | June | Friday")
	assert.Contains(t, out, "There are no rows to show.")
	assert.Contains(t, out, "No data for the selected filters")
}

func TestSessionDataSourceUnavailable(t *testing.T) {
	src := &fakeSource{load: func(_ context.Context, city models.City) (*models.Dataset, error) {
		if city == models.Washington {
			return nil, fmt.Errorf("csv: open: %w", models.ErrDataSourceUnavailable)
		}
		return januaryMondays(2), nil
	}}

	out := runSession(t, src, "washington\nall\nall\nyes\nchicago\nall\nall\nno\nno\n")

	assert.Contains(t, out, "Sorry, the data for Washington could not be loaded.")
	assert.Equal(t, 1, strings.Count(out, "BIKESHARE STATISTICS"), "only the Chicago iteration reports")
}

func TestSessionOtherLoadErrorsAreFatal(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{load: func(context.Context, models.City) (*models.Dataset, error) { return nil, boom }}
	s := New(strings.NewReader("chicago\nall\nall\n"), &bytes.Buffer{}, src,
		services.NewStatisticsService(utils.NopLogger()), utils.NopLogger(), 5)

	err := s.Run(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestSessionEndsOnClosedInput(t *testing.T) {
	src := staticSource(januaryMondays(1))

	out := runSession(t, src, "chicago\nmarch")

	assert.Empty(t, src.calls, "input ended before the weekday was given")
	assert.NotContains(t, out, "Goodbye!")
}

func TestSessionHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := New(strings.NewReader(""), &bytes.Buffer{}, staticSource(nil),
		services.NewStatisticsService(utils.NopLogger()), utils.NopLogger(), 5)

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "browsing", StateBrowsing.String())
	assert.Equal(t, "state(42)", State(42).String())
}
