package progress

import (
	"slices"
	"time"
)

const dayLayout = "2006-01-02"

// State is the rolling gamification summary. It keeps the current streak and
// the last completion day rather than the full completion history.
type State struct {
	Points             int            `json:"points" yaml:"points"`
	Streak             int            `json:"streak" yaml:"streak"`
	LastCompletionDate *time.Time     `json:"lastCompletionDate,omitempty" yaml:"lastCompletionDate,omitempty"`
	Badges             []string       `json:"badges" yaml:"badges"`
	DailyCompletions   map[string]int `json:"dailyCompletions" yaml:"dailyCompletions"`
}

func NewState() State {
	return State{
		Badges:           []string{},
		DailyCompletions: map[string]int{},
	}
}

func (s State) HasBadge(name string) bool {
	return slices.Contains(s.Badges, name)
}

func (s State) clone() State {
	out := s
	out.Badges = slices.Clone(s.Badges)
	if out.Badges == nil {
		out.Badges = []string{}
	}
	out.DailyCompletions = make(map[string]int, len(s.DailyCompletions))
	for k, v := range s.DailyCompletions {
		out.DailyCompletions[k] = v
	}
	if s.LastCompletionDate != nil {
		d := *s.LastCompletionDate
		out.LastCompletionDate = &d
	}
	return out
}

// CalendarDay drops the clock part of t in its own location and returns the
// day as UTC midnight, so day arithmetic never crosses a DST shift.
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts calendar days from a to b. Negative when b is earlier.
func DaysBetween(a, b time.Time) int {
	return int(CalendarDay(b).Sub(CalendarDay(a)).Hours() / 24)
}

func DayKey(t time.Time) string {
	return CalendarDay(t).Format(dayLayout)
}
