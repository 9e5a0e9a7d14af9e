package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"bikeshare-explorer/models"
	"bikeshare-explorer/utils"
)

// reporterCount is the number of independent reporters Generate runs.
const reporterCount = 4

// StatisticsService runs the reporters over a filtered dataset and prints the result.
type StatisticsService struct {
	logger *utils.Logger
}

func NewStatisticsService(logger *utils.Logger) *StatisticsService {
	return &StatisticsService{logger: logger}
}

// Generate runs the four reporters concurrently. Each writes only its own
// section of the report, so completion order does not affect the result.
func (s *StatisticsService) Generate(ds *models.Dataset, criteria models.FilterCriteria) *models.StatisticsReport {
	report := &models.StatisticsReport{
		Criteria: criteria,
		Trips:    ds.Len(),
	}

	pool := utils.NewWorkerPool(reporterCount, 0)
	pool.Submit(func() { report.Time = TimeStats(ds) })
	pool.Submit(func() { report.Stations = StationStats(ds) })
	pool.Submit(func() { report.Duration = DurationStats(ds) })
	pool.Submit(func() { report.Users = UserStats(ds) })
	pool.Wait()

	s.logger.Debug("[stats] %s: %d trips (time %v, stations %v, duration %v, users %v)",
		criteria, report.Trips, report.Time.Elapsed, report.Stations.Elapsed,
		report.Duration.Elapsed, report.Users.Elapsed)
	return report
}

const (
	noData       = "No data for the selected filters"
	notAvailable = "not available for this city"
)

// Print renders the report in four sections.
func (s *StatisticsService) Print(w io.Writer, r *models.StatisticsReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  🚲 BIKESHARE STATISTICS\033[0m\n")
	fmt.Fprintf(w, "  %s | %s trips\n", r.Criteria, humanize.Comma(int64(r.Trips)))
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	section(w, "Most Frequent Times of Travel", thin)
	if t := r.Time; t.HasData {
		fmt.Fprintf(w, "  Most popular start hour  : \033[1m%02d:00\033[0m (%s trips)\n",
			t.PopularHour, humanize.Comma(int64(t.HourCount)))
		fmt.Fprintf(w, "  Most popular start day   : \033[1m%s\033[0m (%s trips)\n",
			t.PopularWeekday, humanize.Comma(int64(t.WeekdayCount)))
		fmt.Fprintf(w, "  Most popular start month : \033[1m%d (%s)\033[0m (%s trips)\n",
			int(t.PopularMonth), t.PopularMonth, humanize.Comma(int64(t.MonthCount)))
	} else {
		fmt.Fprintf(w, "  %s\n", noData)
	}
	took(w, r.Time.Elapsed)

	section(w, "Most Popular Stations and Trip", thin)
	if st := r.Stations; st.HasData {
		fmt.Fprintf(w, "  Start station : \033[1m%s\033[0m (%s trips)\n",
			st.PopularStart, humanize.Comma(int64(st.StartCount)))
		fmt.Fprintf(w, "  End station   : \033[1m%s\033[0m (%s trips)\n",
			st.PopularEnd, humanize.Comma(int64(st.EndCount)))
		fmt.Fprintf(w, "  Trip          : \033[1m%s → %s\033[0m (%s trips)\n",
			st.PopularTrip.Start, st.PopularTrip.End, humanize.Comma(int64(st.TripCount)))
	} else {
		fmt.Fprintf(w, "  %s\n", noData)
	}
	took(w, r.Stations.Elapsed)

	section(w, "Trip Duration", thin)
	if d := r.Duration; d.HasData {
		fmt.Fprintf(w, "  Total duration   : \033[1;32m%s s\033[0m (%s)\n",
			humanize.Commaf(round2(d.Total)), formatSeconds(d.Total))
		fmt.Fprintf(w, "  Average duration : \033[1;32m%s s\033[0m (%s)\n",
			humanize.Commaf(round2(d.Mean)), formatSeconds(d.Mean))
		fmt.Fprintf(w, "  Shortest / longest : %s / %s\n", formatSeconds(d.Min), formatSeconds(d.Max))
	} else {
		fmt.Fprintf(w, "  Total duration   : 0 s\n")
		fmt.Fprintf(w, "  %s\n", noData)
	}
	took(w, r.Duration.Elapsed)

	section(w, "User Stats", thin)
	u := r.Users
	if !u.HasData {
		fmt.Fprintf(w, "  %s\n", noData)
	} else {
		fmt.Fprintf(w, "  User types:\n")
		printCounts(w, u.UserTypes)

		if u.GenderAvailable {
			fmt.Fprintf(w, "  Gender:\n")
			printCounts(w, u.Genders)
		} else {
			fmt.Fprintf(w, "  Gender: %s\n", notAvailable)
		}

		switch {
		case !u.BirthYearAvailable:
			fmt.Fprintf(w, "  Birth year: %s\n", notAvailable)
		case !u.BirthYear.HasData:
			fmt.Fprintf(w, "  Birth year: no data\n")
		default:
			fmt.Fprintf(w, "  Earliest birth year    : %d\n", u.BirthYear.Earliest)
			fmt.Fprintf(w, "  Most recent birth year : %d\n", u.BirthYear.Latest)
			fmt.Fprintf(w, "  Most common birth year : %d\n", u.BirthYear.MostCommon)
		}
	}
	took(w, u.Elapsed)

	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)
}

func section(w io.Writer, title, rule string) {
	fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", title)
	fmt.Fprintf(w, "  %s\n", rule)
}

func took(w io.Writer, d time.Duration) {
	fmt.Fprintf(w, "\n  \033[2mThis took %v.\033[0m\n\n", d.Round(time.Microsecond))
}

func printCounts(w io.Writer, counts []models.Count) {
	if len(counts) == 0 {
		fmt.Fprintf(w, "    no data\n")
		return
	}
	for _, c := range counts {
		fmt.Fprintf(w, "    %-20s %s\n", truncate(c.Value, 20), humanize.Comma(int64(c.Count)))
	}
}

// formatSeconds renders a duration in seconds as e.g. "1h2m3s".
func formatSeconds(sec float64) string {
	return (time.Duration(sec * float64(time.Second))).Round(time.Second).String()
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
