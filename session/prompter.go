package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"bikeshare-explorer/models"
)

// ErrInputClosed is returned when the input ends while a question is pending.
var ErrInputClosed = errors.New("input closed")

// Prompter asks questions on out and reads answers line by line from in.
// Invalid answers are reported and the question is asked again, without limit.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter creates a Prompter.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// Ask writes question and returns the next trimmed line.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("prompt: read: %w", err)
		}
		fmt.Fprintln(p.out)
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// askUntil repeats question until parse accepts the answer.
func askUntil[T any](p *Prompter, question, choices string, parse func(string) (T, error)) (T, error) {
	for {
		answer, err := p.Ask(question)
		if err != nil {
			var zero T
			return zero, err
		}
		v, err := parse(answer)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "\n%q is not a valid input! Please choose either:\n\n%s\n", answer, choices)
	}
}

func bulletList(items []string) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("- ")
		b.WriteString(it)
		b.WriteString("\n")
	}
	return b.String()
}

var (
	cityChoices    string
	monthChoices   string
	weekdayChoices string
)

func init() {
	cities := make([]string, 0, len(models.Cities))
	for _, c := range models.Cities {
		cities = append(cities, c.Title())
	}
	cityChoices = bulletList(cities)

	months := []string{models.AllFilter}
	for m := time.January; m <= time.December; m++ {
		months = append(months, m.String())
	}
	monthChoices = bulletList(months)

	days := []string{models.AllFilter}
	for d := time.Monday; d <= time.Saturday; d++ {
		days = append(days, d.String())
	}
	days = append(days, time.Sunday.String())
	weekdayChoices = bulletList(days)
}

// City asks for one of the supported cities.
func (p *Prompter) City() (models.City, error) {
	return askUntil(p, "Which city do you want to explore? (Chicago, New York City, Washington) ",
		cityChoices, models.ParseCity)
}

// Month asks for a month name or "all".
func (p *Prompter) Month() (time.Month, error) {
	return askUntil(p, "Which month do you want to check? Or type \"all\". ",
		monthChoices, models.ParseMonth)
}

// Weekday asks for a weekday name or "all".
func (p *Prompter) Weekday() (*time.Weekday, error) {
	return askUntil(p, "Which day of the week do you want to check? Or type \"all\". ",
		weekdayChoices, models.ParseWeekday)
}

// Confirm asks a yes/no question. "y", "yes", "n" and "no" are accepted in any case.
func (p *Prompter) Confirm(question string) (bool, error) {
	return askUntil(p, question+" (yes/no) ", bulletList([]string{"yes", "no"}), parseYesNo)
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", models.ErrInvalidInput, s)
}
