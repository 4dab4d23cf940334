package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/sandeepkv93/assistd/internal/model"
	"github.com/sandeepkv93/assistd/internal/progress"
)

// DataVersion is the schema version written under the version key.
const DataVersion = 2

const (
	keyTasks      = "tasks"
	keyNotes      = "notes"
	keyBudget     = "budget"
	keyBudgetGoal = "budget_goal"
	keyProgress   = "progress"
	keyTheme      = "theme"
	keyVersion    = "version"
)

var allKeys = []string{keyTasks, keyNotes, keyBudget, keyBudgetGoal, keyProgress, keyTheme, keyVersion}

const persistTimeout = 5 * time.Second

// persist writes the given keys. Failures are logged and swallowed: the
// in-memory change has already happened and stays.
func (a *App) persist(keys ...string) {
	if a.kv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	for _, key := range keys {
		value, err := a.encodeKey(key)
		if err != nil {
			a.log.Warn("encode failed", "key", key, "err", err)
			continue
		}
		if err := a.kv.Save(ctx, key, value); err != nil {
			a.log.Warn("save failed", "key", key, "err", fmt.Errorf("%w: %v", model.ErrPersistence, err))
		}
	}
}

// forget deletes keys so the next Load falls back to their defaults.
func (a *App) forget(keys ...string) {
	if a.kv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	for _, key := range keys {
		if err := a.kv.Delete(ctx, key); err != nil {
			a.log.Warn("delete failed", "key", key, "err", fmt.Errorf("%w: %v", model.ErrPersistence, err))
		}
	}
}

func (a *App) encodeKey(key string) ([]byte, error) {
	switch key {
	case keyTasks:
		return json.Marshal(nonNil(a.tasks.All()))
	case keyNotes:
		return json.Marshal(nonNil(a.notes.All()))
	case keyBudget:
		return json.Marshal(nonNil(a.budget.All()))
	case keyBudgetGoal:
		return json.Marshal(a.budget.MonthlyGoal())
	case keyProgress:
		return json.Marshal(a.progress.State())
	case keyTheme:
		return json.Marshal(a.theme)
	case keyVersion:
		return []byte(strconv.Itoa(DataVersion)), nil
	default:
		return nil, fmt.Errorf("unknown key %q", key)
	}
}

// Load reads every key independently. A missing key keeps its default; a
// malformed or unreadable one is logged and also keeps its default.
func (a *App) Load(ctx context.Context) {
	if a.kv == nil {
		return
	}
	var tasks []model.Task
	if a.loadKey(ctx, keyTasks, &tasks) {
		a.tasks.Replace(a.sanitizeTasks(tasks))
	}
	var notes []model.Note
	if a.loadKey(ctx, keyNotes, &notes) {
		a.notes.Replace(a.sanitizeNotes(notes))
	}
	var txs []model.Transaction
	if a.loadKey(ctx, keyBudget, &txs) {
		a.budget.Replace(a.sanitizeTransactions(txs))
	}
	var goal float64
	if a.loadKey(ctx, keyBudgetGoal, &goal) {
		if err := a.budget.SetMonthlyGoal(goal); err != nil {
			a.log.Warn("ignoring stored budget goal", "err", err)
		}
	}
	var state progress.State
	if a.loadKey(ctx, keyProgress, &state) {
		a.progress.Restore(state)
	}
	var theme string
	if a.loadKey(ctx, keyTheme, &theme) {
		if t, ok := model.ParseTheme(theme); ok {
			a.theme = t
		} else {
			a.log.Warn("ignoring stored theme", "theme", theme)
		}
	}
	a.migrate(ctx)
}

func (a *App) loadKey(ctx context.Context, key string, dst any) bool {
	raw, ok, err := a.kv.Load(ctx, key)
	if err != nil {
		a.log.Warn("load failed, using default", "key", key, "err", fmt.Errorf("%w: %v", model.ErrPersistence, err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		a.log.Warn("malformed value, using default", "key", key, "err", err)
		return false
	}
	return true
}

// migrate brings a pre-versioned or version 1 store up to DataVersion.
// Version 1 stored no progress key, so badges are re-derived from the loaded
// stores, and every key is rewritten in the current encoding.
func (a *App) migrate(ctx context.Context) {
	version := 0
	var stored int
	if a.loadKey(ctx, keyVersion, &stored) {
		version = stored
	}
	if version >= DataVersion {
		return
	}
	a.log.Info("migrating data", "from", version, "to", DataVersion)
	a.progress.Evaluate()
	a.persist(allKeys...)
}

func (a *App) sanitizeTasks(in []model.Task) []model.Task {
	out := make([]model.Task, 0, len(in))
	seen := map[string]bool{}
	for _, t := range in {
		t = normalizeTask(t, seen)
		if err := t.Validate(); err != nil {
			a.log.Warn("dropping invalid stored task", "id", t.ID, "err", err)
			continue
		}
		out = append(out, t)
	}
	return out
}

func (a *App) sanitizeNotes(in []model.Note) []model.Note {
	out := make([]model.Note, 0, len(in))
	seen := map[string]bool{}
	for _, n := range in {
		n = normalizeNote(n, seen)
		if err := n.Validate(); err != nil {
			a.log.Warn("dropping invalid stored note", "id", n.ID, "err", err)
			continue
		}
		out = append(out, n)
	}
	return out
}

func (a *App) sanitizeTransactions(in []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(in))
	seen := map[string]bool{}
	for _, tx := range in {
		tx = normalizeTransaction(tx, seen)
		if err := tx.Validate(); err != nil {
			a.log.Warn("dropping invalid stored transaction", "id", tx.ID, "err", err)
			continue
		}
		out = append(out, tx)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
