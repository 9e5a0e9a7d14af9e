package session

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"bikeshare-explorer/models"
)

// Pager walks a dataset in fixed-size pages from the first row.
type Pager struct {
	ds   *models.Dataset
	size int
	page int
}

func NewPager(ds *models.Dataset, size int) *Pager {
	return &Pager{ds: ds, size: size}
}

// Next returns the next page and its first row index. Past the end it
// returns an empty page.
func (p *Pager) Next() ([]models.TripRecord, int) {
	offset := p.page * p.size
	rows := p.ds.Page(p.page, p.size)
	p.page++
	return rows, offset
}

// Done reports whether every row has been returned.
func (p *Pager) Done() bool {
	return p.page*p.size >= p.ds.Len()
}

const rowTimeLayout = "2006-01-02 15:04:05"

// PrintRows writes rows as an aligned table. Optional columns are included
// only when the schema has them.
func PrintRows(w io.Writer, schema models.Schema, rows []models.TripRecord, offset int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, "#\tStart Time\tEnd Time\tTrip Duration\tStart Station\tEnd Station\tUser Type")
	if schema.HasGender {
		fmt.Fprint(tw, "\tGender")
	}
	if schema.HasBirthYear {
		fmt.Fprint(tw, "\tBirth Year")
	}
	fmt.Fprintln(tw)

	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s",
			offset+i,
			r.StartTime.Format(rowTimeLayout),
			r.EndTime.Format(rowTimeLayout),
			strconv.FormatFloat(r.Duration, 'f', -1, 64),
			r.StartStation, r.EndStation, orDash(r.UserType))
		if schema.HasGender {
			fmt.Fprintf(tw, "\t%s", orDash(r.Gender))
		}
		if schema.HasBirthYear {
			year := "-"
			if r.BirthYear > 0 {
				year = strconv.Itoa(r.BirthYear)
			}
			fmt.Fprintf(tw, "\t%s", year)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
