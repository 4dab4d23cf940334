package app

import (
	"time"

	"github.com/sandeepkv93/assistd/internal/model"
	"github.com/sandeepkv93/assistd/internal/progress"
	"github.com/sandeepkv93/assistd/internal/store"
)

// HeatmapDays is the window of the completion heatmap.
const HeatmapDays = 30

type ProgressSummary struct {
	Points           int
	Streak           int
	Badges           []string
	TasksTotal       int
	TasksCompleted   int
	CompletionRate   float64
	CompletedToday   int
	LastCompletionOn *time.Time
}

type BudgetSummary struct {
	Month        store.MonthSummary
	MonthlyGoal  float64
	GoalLeft     float64
	OverGoal     bool
	Months       []store.MonthSummary
	Transactions []model.Transaction
}

func (a *App) Tasks(filter string) []model.Task {
	return a.tasks.List(a.sortBy, filter)
}

func (a *App) Task(id string) (model.Task, error) {
	return a.tasks.Get(id)
}

func (a *App) Notes(query string) []model.Note {
	return a.notes.Search(query)
}

func (a *App) ProgressState() progress.State {
	return a.progress.State()
}

func (a *App) Progress() ProgressSummary {
	state := a.progress.State()
	ts := a.tasks.Stats()
	out := ProgressSummary{
		Points:           state.Points,
		Streak:           state.Streak,
		Badges:           state.Badges,
		TasksTotal:       ts.Total,
		TasksCompleted:   ts.Completed,
		CompletedToday:   state.DailyCompletions[progress.DayKey(a.now())],
		LastCompletionOn: state.LastCompletionDate,
	}
	if ts.Total > 0 {
		out.CompletionRate = float64(ts.Completed) / float64(ts.Total)
	}
	return out
}

func (a *App) Budget() BudgetSummary {
	month := a.now().Format("2006-01")
	sum := a.budget.MonthSummary(month)
	goal := a.budget.MonthlyGoal()
	out := BudgetSummary{
		Month:        sum,
		MonthlyGoal:  goal,
		Months:       a.budget.Months(),
		Transactions: a.budget.List(),
	}
	if goal > 0 {
		out.GoalLeft = model.RoundCents(goal - sum.Expense)
		out.OverGoal = sum.Expense > goal
	}
	return out
}

// Recommendation picks the incomplete task to do next: the nearest due date,
// then the highest priority, then the oldest. ok is false when nothing is pending.
func (a *App) Recommendation() (model.Task, bool) {
	var best model.Task
	found := false
	for _, t := range a.tasks.All() {
		if t.Completed {
			continue
		}
		if !found || recommendBefore(t, best) {
			best, found = t, true
		}
	}
	return best, found
}

func recommendBefore(x, y model.Task) bool {
	switch {
	case x.DueDate != nil && y.DueDate == nil:
		return true
	case x.DueDate == nil && y.DueDate != nil:
		return false
	case x.DueDate != nil && !x.DueDate.Equal(*y.DueDate):
		return x.DueDate.Before(*y.DueDate)
	}
	if x.Priority.Rank() != y.Priority.Rank() {
		return x.Priority.Rank() < y.Priority.Rank()
	}
	return x.CreatedAt.Before(y.CreatedAt)
}

// Heatmap returns completions per day for the last HeatmapDays days, oldest first.
func (a *App) Heatmap() []int {
	return a.progress.Heatmap(a.now(), HeatmapDays)
}

func (a *App) Now() time.Time { return a.now() }

func (a *App) PointsPerTask() int { return a.progress.PointsPerTask() }
