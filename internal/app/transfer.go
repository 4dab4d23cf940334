package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/assistd/internal/model"
	"github.com/sandeepkv93/assistd/internal/progress"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", model.ErrValidation, s)
	}
}

// Document is the single-file export of everything the assistant knows.
type Document struct {
	Version            int                 `json:"version" yaml:"version"`
	ExportedAt         time.Time           `json:"exportedAt" yaml:"exportedAt"`
	Tasks              []model.Task        `json:"tasks" yaml:"tasks"`
	Notes              []model.Note        `json:"notes" yaml:"notes"`
	Budget             []model.Transaction `json:"budget" yaml:"budget"`
	MonthlyGoal        float64             `json:"monthlyGoal" yaml:"monthlyGoal"`
	Points             int                 `json:"points" yaml:"points"`
	Streak             int                 `json:"streak" yaml:"streak"`
	LastCompletionDate *time.Time          `json:"lastCompletionDate,omitempty" yaml:"lastCompletionDate,omitempty"`
	Badges             []string            `json:"badges" yaml:"badges"`
	DailyCompletions   map[string]int      `json:"dailyCompletions" yaml:"dailyCompletions"`
	Theme              model.Theme         `json:"currentTheme" yaml:"currentTheme"`
}

func (a *App) Snapshot() Document {
	state := a.progress.State()
	return Document{
		Version:            DataVersion,
		ExportedAt:         a.now(),
		Tasks:              nonNil(a.tasks.All()),
		Notes:              nonNil(a.notes.All()),
		Budget:             nonNil(a.budget.All()),
		MonthlyGoal:        a.budget.MonthlyGoal(),
		Points:             state.Points,
		Streak:             state.Streak,
		LastCompletionDate: state.LastCompletionDate,
		Badges:             nonNil(state.Badges),
		DailyCompletions:   state.DailyCompletions,
		Theme:              a.theme,
	}
}

// Export writes the snapshot document in the requested format.
func (a *App) Export(w io.Writer, format Format) error {
	doc := a.Snapshot()
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// Import replaces tasks, notes and transactions with the document's and
// merges its progress without regressing. Nothing changes unless the whole
// document is valid.
func (a *App) Import(r io.Reader, format Format) error {
	doc, err := decodeDocument(r, format)
	if err != nil {
		return err
	}
	if err := checkDocument(&doc); err != nil {
		return err
	}

	a.tasks.Replace(doc.Tasks)
	a.notes.Replace(doc.Notes)
	a.budget.Replace(doc.Budget)
	if err := a.budget.SetMonthlyGoal(doc.MonthlyGoal); err != nil {
		a.log.Warn("imported goal rejected", "goal", doc.MonthlyGoal, "err", err)
	}
	if doc.Theme != "" {
		a.theme = doc.Theme
	}
	earned := a.progress.Merge(progress.State{
		Points:             doc.Points,
		Streak:             doc.Streak,
		LastCompletionDate: doc.LastCompletionDate,
		Badges:             doc.Badges,
		DailyCompletions:   doc.DailyCompletions,
	})
	a.notices = append(a.notices, earned...)
	a.persist(allKeys...)
	a.log.Info("import applied", "tasks", len(doc.Tasks), "notes", len(doc.Notes), "transactions", len(doc.Budget))
	return nil
}

func decodeDocument(r io.Reader, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("%w: %v", model.ErrImportFormat, err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("%w: %v", model.ErrImportFormat, err)
		}
	}
	return doc, nil
}

// checkDocument normalizes ids and validates every entity in place.
func checkDocument(doc *Document) error {
	switch {
	case doc.Tasks == nil:
		return fmt.Errorf("%w: tasks array is missing", model.ErrImportFormat)
	case doc.Notes == nil:
		return fmt.Errorf("%w: notes array is missing", model.ErrImportFormat)
	case doc.Budget == nil:
		return fmt.Errorf("%w: budget array is missing", model.ErrImportFormat)
	}
	if doc.Points < 0 || doc.Streak < 0 {
		return fmt.Errorf("%w: points and streak must not be negative", model.ErrImportFormat)
	}
	if doc.MonthlyGoal < 0 {
		return fmt.Errorf("%w: monthly goal must not be negative", model.ErrImportFormat)
	}
	if doc.Theme != "" && !doc.Theme.IsValid() {
		return fmt.Errorf("%w: unknown theme %q", model.ErrImportFormat, doc.Theme)
	}

	seen := map[string]bool{}
	for i, t := range doc.Tasks {
		t = normalizeTask(t, seen)
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%w: task %d: %v", model.ErrImportFormat, i, err)
		}
		doc.Tasks[i] = t
	}
	seen = map[string]bool{}
	for i, n := range doc.Notes {
		n = normalizeNote(n, seen)
		if err := n.Validate(); err != nil {
			return fmt.Errorf("%w: note %d: %v", model.ErrImportFormat, i, err)
		}
		doc.Notes[i] = n
	}
	seen = map[string]bool{}
	for i, tx := range doc.Budget {
		tx = normalizeTransaction(tx, seen)
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("%w: transaction %d: %v", model.ErrImportFormat, i, err)
		}
		doc.Budget[i] = tx
	}
	return nil
}

// freshID keeps id unless it is empty or already taken.
func freshID(id string, seen map[string]bool) string {
	if id == "" || seen[id] {
		id = uuid.NewString()
	}
	seen[id] = true
	return id
}

func normalizeTask(t model.Task, seen map[string]bool) model.Task {
	t.ID = freshID(t.ID, seen)
	t.Text = strings.TrimSpace(t.Text)
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if strings.TrimSpace(t.Category) == "" {
		t.Category = model.DefaultCategory
	}
	if !t.Completed {
		t.CompletedAt = nil
	}
	return t
}

func normalizeNote(n model.Note, seen map[string]bool) model.Note {
	n.ID = freshID(n.ID, seen)
	n.Content = strings.TrimSpace(n.Content)
	if strings.TrimSpace(n.Category) == "" {
		n.Category = model.DefaultCategory
	}
	n.Tags = model.NormalizeTags(n.Tags)
	return n
}

func normalizeTransaction(tx model.Transaction, seen map[string]bool) model.Transaction {
	tx.ID = freshID(tx.ID, seen)
	tx.Amount = model.RoundCents(tx.Amount)
	if strings.TrimSpace(tx.Category) == "" {
		tx.Category = model.DefaultCategory
	}
	return tx
}
