package progress

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sandeepkv93/assistd/internal/model"
)

const DefaultPointsPerTask = 10

// StatsSource supplies the store-side counts badge predicates need.
type StatsSource interface {
	Stats() Stats
}

type StatsFunc func() Stats

func (f StatsFunc) Stats() Stats { return f() }

// Engine owns points, streak and badges. Points and badges only grow.
type Engine struct {
	state         State
	catalog       []Badge
	pointsPerTask int
	source        StatsSource
	logger        *slog.Logger
}

type Option func(*Engine)

func WithCatalog(c []Badge) Option {
	return func(e *Engine) { e.catalog = c }
}

func WithPointsPerTask(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.pointsPerTask = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEngine(source StatsSource, opts ...Option) *Engine {
	e := &Engine{
		state:         NewState(),
		catalog:       Catalog(DefaultThresholds()),
		pointsPerTask: DefaultPointsPerTask,
		source:        source,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) State() State { return e.state.clone() }

func (e *Engine) PointsPerTask() int { return e.pointsPerTask }

// OnTaskCompleted awards base points, advances the streak by calendar day and
// returns the badges this completion unlocked.
func (e *Engine) OnTaskCompleted(at time.Time) []string {
	e.state.Points += e.pointsPerTask
	today := CalendarDay(at)
	if e.state.LastCompletionDate == nil {
		e.state.Streak = 1
	} else {
		delta := DaysBetween(*e.state.LastCompletionDate, today)
		switch {
		case delta == 1:
			e.state.Streak++
		case delta > 1:
			e.state.Streak = 1
		case delta < 0:
			e.logger.Warn("last completion date is in the future",
				"last", DayKey(*e.state.LastCompletionDate), "today", DayKey(today))
		}
	}
	e.state.LastCompletionDate = &today
	if e.state.DailyCompletions == nil {
		e.state.DailyCompletions = map[string]int{}
	}
	e.state.DailyCompletions[DayKey(today)]++
	return e.Evaluate()
}

func (e *Engine) AddPoints(n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: points must be positive, got %d", model.ErrValidation, n)
	}
	e.state.Points += n
	return e.Evaluate(), nil
}

// Evaluate runs every badge predicate against the current state and awards
// each newly satisfied badge exactly once.
func (e *Engine) Evaluate() []string {
	stats := Stats{}
	if e.source != nil {
		stats = e.source.Stats()
	}
	stats.Points = e.state.Points
	stats.Streak = e.state.Streak

	var earned []string
	for _, b := range e.catalog {
		if e.state.HasBadge(b.Name) || !b.Predicate(stats) {
			continue
		}
		e.state.Badges = append(e.state.Badges, b.Name)
		earned = append(earned, b.Name)
		e.logger.Info("badge earned", "badge", b.Name, "points", stats.Points, "streak", stats.Streak)
	}
	return earned
}

// Merge folds an imported state in without letting anything regress.
func (e *Engine) Merge(in State) []string {
	if in.Points > e.state.Points {
		e.state.Points = in.Points
	}
	if in.Streak > e.state.Streak {
		e.state.Streak = in.Streak
	}
	if in.LastCompletionDate != nil {
		d := CalendarDay(*in.LastCompletionDate)
		if e.state.LastCompletionDate == nil || d.After(*e.state.LastCompletionDate) {
			e.state.LastCompletionDate = &d
		}
	}
	for _, b := range in.Badges {
		if b != "" && !e.state.HasBadge(b) {
			e.state.Badges = append(e.state.Badges, b)
		}
	}
	if e.state.DailyCompletions == nil {
		e.state.DailyCompletions = map[string]int{}
	}
	for day, n := range in.DailyCompletions {
		if n > e.state.DailyCompletions[day] {
			e.state.DailyCompletions[day] = n
		}
	}
	return e.Evaluate()
}

// Restore installs persisted state verbatim. Negative counters are clamped.
func (e *Engine) Restore(s State) {
	s = s.clone()
	if s.Points < 0 {
		s.Points = 0
	}
	if s.Streak < 0 {
		s.Streak = 0
	}
	if s.LastCompletionDate != nil {
		d := CalendarDay(*s.LastCompletionDate)
		s.LastCompletionDate = &d
	}
	e.state = s
}

// Reset returns to first-run defaults. Only clear-all uses it.
func (e *Engine) Reset() {
	e.state = NewState()
}

// Heatmap returns completion counts for the n days ending at today, oldest first.
func (e *Engine) Heatmap(today time.Time, n int) []int {
	out := make([]int, n)
	end := CalendarDay(today)
	for i := 0; i < n; i++ {
		day := end.AddDate(0, 0, i-n+1)
		out[i] = e.state.DailyCompletions[day.Format(dayLayout)]
	}
	return out
}
