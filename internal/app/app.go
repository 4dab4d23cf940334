// Package app is the single controller that owns every store and the
// progress engine. Hosts (TUI, CLI, voice) talk to it through Handle for free
// text and through the direct methods for form-style edits.
package app

import (
	"log/slog"
	"time"

	"github.com/sandeepkv93/assistd/internal/model"
	"github.com/sandeepkv93/assistd/internal/progress"
	"github.com/sandeepkv93/assistd/internal/storage"
	"github.com/sandeepkv93/assistd/internal/store"
)

type Options struct {
	// KV may be nil, in which case nothing is persisted.
	KV            storage.KV
	Logger        *slog.Logger
	Now           func() time.Time
	PointsPerTask int
	Thresholds    progress.Thresholds
	DefaultSort   store.SortBy
}

type App struct {
	tasks    *store.Tasks
	notes    *store.Notes
	budget   *store.Budget
	progress *progress.Engine
	theme    model.Theme
	sortBy   store.SortBy

	kv      storage.KV
	log     *slog.Logger
	now     func() time.Time
	notices []string
}

func New(opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Thresholds == (progress.Thresholds{}) {
		opts.Thresholds = progress.DefaultThresholds()
	}
	if !opts.DefaultSort.IsValid() {
		opts.DefaultSort = store.SortByDueDate
	}
	a := &App{
		tasks:  store.NewTasks(opts.Now),
		notes:  store.NewNotes(opts.Now),
		budget: store.NewBudget(opts.Now),
		theme:  model.ThemeLight,
		sortBy: opts.DefaultSort,
		kv:     opts.KV,
		log:    opts.Logger,
		now:    opts.Now,
	}
	a.progress = progress.NewEngine(progress.StatsFunc(a.stats),
		progress.WithCatalog(progress.Catalog(opts.Thresholds)),
		progress.WithPointsPerTask(opts.PointsPerTask),
		progress.WithLogger(opts.Logger),
	)
	a.tasks.Subscribe(func(e store.TaskCompleted) {
		a.notices = append(a.notices, a.progress.OnTaskCompleted(e.At)...)
	})
	return a
}

func (a *App) stats() progress.Stats {
	ts := a.tasks.Stats()
	bs := a.budget.Stats()
	return progress.Stats{
		Tasks:          ts.Total,
		CompletedTasks: ts.Completed,
		Transactions:   bs.Transactions,
		MonthExpense:   bs.MonthExpense,
		MonthlyGoal:    bs.MonthlyGoal,
	}
}

// TakeNotices drains the badges earned since the last call.
func (a *App) TakeNotices() []string {
	out := a.notices
	a.notices = nil
	return out
}

// reevaluate runs the badge catalog after a non-completion mutation and
// persists progress when something was unlocked.
func (a *App) reevaluate() {
	earned := a.progress.Evaluate()
	if len(earned) == 0 {
		return
	}
	a.notices = append(a.notices, earned...)
	a.persist(keyProgress)
}

func (a *App) AddTask(text string, due *time.Time, priority model.Priority, category string) (model.Task, error) {
	task, err := a.tasks.Add(text, due, priority, category)
	if err != nil {
		return model.Task{}, err
	}
	a.persist(keyTasks)
	a.reevaluate()
	return task, nil
}

// CompleteTask marks a task done. changed is false when it already was.
func (a *App) CompleteTask(id string) (model.Task, bool, error) {
	task, changed, err := a.tasks.Complete(id)
	if err != nil || !changed {
		return task, changed, err
	}
	a.persist(keyTasks, keyProgress)
	return task, true, nil
}

func (a *App) EditTask(id string, patch model.TaskPatch) (model.Task, error) {
	task, err := a.tasks.Edit(id, patch)
	if err != nil {
		return model.Task{}, err
	}
	a.persist(keyTasks)
	return task, nil
}

func (a *App) DeleteTask(id string) error {
	if err := a.tasks.Delete(id); err != nil {
		return err
	}
	a.persist(keyTasks)
	a.reevaluate()
	return nil
}

func (a *App) AddNote(content, category string, tags []string) (model.Note, error) {
	note, err := a.notes.Add(content, category, tags)
	if err != nil {
		return model.Note{}, err
	}
	a.persist(keyNotes)
	return note, nil
}

func (a *App) EditNote(id string, patch model.NotePatch) (model.Note, error) {
	note, err := a.notes.Edit(id, patch)
	if err != nil {
		return model.Note{}, err
	}
	a.persist(keyNotes)
	return note, nil
}

func (a *App) DeleteNote(id string) error {
	if err := a.notes.Delete(id); err != nil {
		return err
	}
	a.persist(keyNotes)
	return nil
}

func (a *App) AddTransaction(kind model.TransactionType, amount float64, description, category string, date time.Time) (model.Transaction, error) {
	tx, err := a.budget.Add(kind, amount, description, category, date)
	if err != nil {
		return model.Transaction{}, err
	}
	a.persist(keyBudget)
	a.reevaluate()
	return tx, nil
}

func (a *App) DeleteTransaction(id string) error {
	if err := a.budget.Delete(id); err != nil {
		return err
	}
	a.persist(keyBudget)
	a.reevaluate()
	return nil
}

func (a *App) SetMonthlyGoal(amount float64) error {
	if err := a.budget.SetMonthlyGoal(amount); err != nil {
		return err
	}
	a.persist(keyBudgetGoal)
	a.reevaluate()
	return nil
}

func (a *App) AddPoints(n int) error {
	earned, err := a.progress.AddPoints(n)
	if err != nil {
		return err
	}
	a.notices = append(a.notices, earned...)
	a.persist(keyProgress)
	return nil
}

func (a *App) SetTheme(name string) (model.Theme, error) {
	theme, ok := model.ParseTheme(name)
	if !ok {
		return a.theme, errInvalidTheme(name)
	}
	a.theme = theme
	a.persist(keyTheme)
	return theme, nil
}

func (a *App) Theme() model.Theme { return a.theme }

func (a *App) SetSort(s store.SortBy) {
	if s.IsValid() {
		a.sortBy = s
	}
}

func (a *App) Sort() store.SortBy { return a.sortBy }

// Clear resets every store, the progress engine and the theme to first-run
// defaults. It is the only operation that removes badges.
func (a *App) Clear() {
	a.tasks.Replace(nil)
	a.notes.Replace(nil)
	a.budget.Replace(nil)
	a.budget.ClearMonthlyGoal()
	a.progress.Reset()
	a.theme = model.ThemeLight
	a.notices = nil
	a.forget(keyTasks, keyNotes, keyBudget, keyBudgetGoal, keyProgress, keyTheme)
	a.persist(keyVersion)
}
