package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"bikeshare-explorer/models"
	"bikeshare-explorer/services"
	"bikeshare-explorer/storage"
	"bikeshare-explorer/utils"
)

// State is a step of the interactive loop.
type State int

const (
	StatePrompting State = iota
	StateLoading
	StateFiltering
	StateReporting
	StateBrowsing
	StateRestart
	StateExit
)

func (s State) String() string {
	switch s {
	case StatePrompting:
		return "prompting"
	case StateLoading:
		return "loading"
	case StateFiltering:
		return "filtering"
	case StateReporting:
		return "reporting"
	case StateBrowsing:
		return "browsing"
	case StateRestart:
		return "restart"
	case StateExit:
		return "exit"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Session drives prompt, load, filter, report and browse until the user
// declines to restart.
type Session struct {
	prompter *Prompter
	out      io.Writer
	source   storage.TripSource
	stats    *services.StatisticsService
	logger   *utils.Logger
	pageSize int

	id       string
	criteria models.FilterCriteria
	dataset  *models.Dataset
	filtered *models.Dataset
}

// New creates a Session reading answers from in and writing to out.
func New(in io.Reader, out io.Writer, source storage.TripSource, stats *services.StatisticsService,
	logger *utils.Logger, pageSize int) *Session {
	if pageSize < 1 {
		pageSize = 5
	}
	return &Session{
		prompter: NewPrompter(in, out),
		out:      out,
		source:   source,
		stats:    stats,
		logger:   logger,
		pageSize: pageSize,
	}
}

// Run executes the state machine from StatePrompting until StateExit. Closed
// input ends the session without error.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Hello! Let's explore some US bikeshare data!")

	state := StatePrompting
	for state != StateExit {
		if err := ctx.Err(); err != nil {
			return err
		}

		next, err := s.step(ctx, state)
		if errors.Is(err, ErrInputClosed) {
			s.logger.Debug("[session] input closed in state %s", state)
			return nil
		}
		if err != nil {
			return fmt.Errorf("session: %s: %w", state, err)
		}
		s.logger.Debug("[session] %s -> %s", state, next)
		state = next
	}

	fmt.Fprintln(s.out, "Goodbye!")
	return nil
}

func (s *Session) step(ctx context.Context, state State) (State, error) {
	switch state {
	case StatePrompting:
		return s.prompt()
	case StateLoading:
		return s.load(ctx)
	case StateFiltering:
		s.filtered = services.Filter(s.dataset, s.criteria)
		s.logger.Info("[session %s] %d of %d trips match", s.id, s.filtered.Len(), s.dataset.Len())
		return StateReporting, nil
	case StateReporting:
		s.stats.Print(s.out, s.stats.Generate(s.filtered, s.criteria))
		return StateBrowsing, nil
	case StateBrowsing:
		return s.browse()
	case StateRestart:
		again, err := s.prompter.Confirm("\nWould you like to restart?")
		if err != nil {
			return StateExit, err
		}
		if again {
			return StatePrompting, nil
		}
		return StateExit, nil
	}
	return StateExit, fmt.Errorf("unknown state %d", int(state))
}

func (s *Session) prompt() (State, error) {
	city, err := s.prompter.City()
	if err != nil {
		return StateExit, err
	}
	month, err := s.prompter.Month()
	if err != nil {
		return StateExit, err
	}
	day, err := s.prompter.Weekday()
	if err != nil {
		return StateExit, err
	}

	s.criteria = models.FilterCriteria{City: city, Month: month, Weekday: day}
	if err := s.criteria.Validate(); err != nil {
		return StateExit, err
	}
	s.id = uuid.NewString()
	s.dataset, s.filtered = nil, nil
	s.logger.Info("[session %s] Criteria: %s", s.id, s.criteria)
	return StateLoading, nil
}

// load aborts the iteration, not the program, when the source is unavailable.
func (s *Session) load(ctx context.Context) (State, error) {
	ds, err := s.source.Load(ctx, s.criteria.City)
	if errors.Is(err, models.ErrDataSourceUnavailable) {
		s.logger.Error("[session %s] %v", s.id, err)
		fmt.Fprintf(s.out, "\nSorry, the data for %s could not be loaded.\n", s.criteria.City.Title())
		return StateRestart, nil
	}
	if err != nil {
		return StateExit, err
	}
	s.dataset = ds
	return StateFiltering, nil
}

func (s *Session) browse() (State, error) {
	total := s.filtered.Len()
	if total == 0 {
		fmt.Fprintln(s.out, "There are no rows to show.")
		return StateRestart, nil
	}

	want, err := s.prompter.Confirm(fmt.Sprintf("There are %d rows! Do you want to see the raw data?", total))
	if err != nil {
		return StateExit, err
	}

	pager := NewPager(s.filtered, s.pageSize)
	for want {
		rows, offset := pager.Next()
		if err := PrintRows(s.out, s.filtered.Schema, rows, offset); err != nil {
			return StateExit, err
		}
		if pager.Done() {
			fmt.Fprintln(s.out, "That was the last row.")
			break
		}
		want, err = s.prompter.Confirm(fmt.Sprintf("Do you want to see %d more rows?", s.pageSize))
		if err != nil {
			return StateExit, err
		}
	}
	return StateRestart, nil
}
