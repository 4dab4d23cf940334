package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/assistd/internal/model"
)

type SortBy string

const (
	SortByDueDate  SortBy = "dueDate"
	SortByPriority SortBy = "priority"
	SortByCategory SortBy = "category"
)

func (s SortBy) IsValid() bool {
	switch s {
	case SortByDueDate, SortByPriority, SortByCategory:
		return true
	default:
		return false
	}
}

// TaskCompleted is emitted once per successful completion.
type TaskCompleted struct {
	Task model.Task
	At   time.Time
}

type TaskStats struct {
	Total     int
	Completed int
}

func (s TaskStats) Pending() int { return s.Total - s.Completed }

// Tasks holds task records in insertion order.
type Tasks struct {
	items     []model.Task
	now       func() time.Time
	listeners []func(TaskCompleted)
}

func NewTasks(now func() time.Time) *Tasks {
	if now == nil {
		now = time.Now
	}
	return &Tasks{now: now}
}

// Subscribe registers fn for every TaskCompleted event.
func (s *Tasks) Subscribe(fn func(TaskCompleted)) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

func (s *Tasks) Add(text string, due *time.Time, priority model.Priority, category string) (model.Task, error) {
	if priority == "" {
		priority = model.PriorityMedium
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = model.DefaultCategory
	}
	task := model.Task{
		ID:        uuid.NewString(),
		Text:      strings.TrimSpace(text),
		Priority:  priority,
		Category:  category,
		DueDate:   due,
		CreatedAt: s.now(),
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}
	s.items = append(s.items, task)
	return task, nil
}

func (s *Tasks) Get(id string) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, notFound("task", id)
	}
	return s.items[i], nil
}

// Complete marks the task done. changed is false when the task was already
// completed; that case is a notice, not an error, and emits nothing.
func (s *Tasks) Complete(id string) (task model.Task, changed bool, err error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false, notFound("task", id)
	}
	if s.items[i].Completed {
		return s.items[i], false, nil
	}
	at := s.now()
	s.items[i].Completed = true
	s.items[i].CompletedAt = &at
	task = s.items[i]
	for _, fn := range s.listeners {
		fn(TaskCompleted{Task: task, At: at})
	}
	return task, true, nil
}

func (s *Tasks) Edit(id string, patch model.TaskPatch) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, notFound("task", id)
	}
	next := s.items[i]
	if patch.Text != nil {
		next.Text = strings.TrimSpace(*patch.Text)
	}
	if patch.ClearDue {
		next.DueDate = nil
	} else if patch.DueDate != nil {
		due := *patch.DueDate
		next.DueDate = &due
	}
	if patch.Priority != nil {
		next.Priority = *patch.Priority
	}
	if patch.Category != nil {
		next.Category = strings.TrimSpace(*patch.Category)
	}
	if err := next.Validate(); err != nil {
		return model.Task{}, err
	}
	s.items[i] = next
	return next, nil
}

func (s *Tasks) Delete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return notFound("task", id)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// FindByText returns the task whose text equals name, ignoring case. An
// incomplete match wins over a completed one.
func (s *Tasks) FindByText(name string) (model.Task, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	var done *model.Task
	for i := range s.items {
		if strings.ToLower(s.items[i].Text) != name {
			continue
		}
		if !s.items[i].Completed {
			return s.items[i], true
		}
		if done == nil {
			done = &s.items[i]
		}
	}
	if done != nil {
		return *done, true
	}
	return model.Task{}, false
}

// List returns a sorted, filtered copy. Incomplete tasks always precede
// completed ones; sortBy only orders within each bucket.
func (s *Tasks) List(sortBy SortBy, filter string) []model.Task {
	filter = strings.ToLower(strings.TrimSpace(filter))
	out := make([]model.Task, 0, len(s.items))
	for _, task := range s.items {
		if filter != "" &&
			!strings.Contains(strings.ToLower(task.Text), filter) &&
			!strings.Contains(strings.ToLower(task.Category), filter) {
			continue
		}
		out = append(out, task)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		switch sortBy {
		case SortByPriority:
			return a.Priority.Rank() < b.Priority.Rank()
		case SortByCategory:
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		default:
			return dueBefore(a.DueDate, b.DueDate)
		}
	})
	return out
}

func dueBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}

func (s *Tasks) All() []model.Task {
	out := make([]model.Task, len(s.items))
	copy(out, s.items)
	return out
}

// Replace swaps the whole collection, used by load and import.
func (s *Tasks) Replace(items []model.Task) {
	s.items = make([]model.Task, len(items))
	copy(s.items, items)
}

func (s *Tasks) Stats() TaskStats {
	out := TaskStats{Total: len(s.items)}
	for _, task := range s.items {
		if task.Completed {
			out.Completed++
		}
	}
	return out
}

func (s *Tasks) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", model.ErrNotFound, kind, id)
}
