package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"

	"github.com/sandeepkv93/assistd/internal/model"
	"github.com/sandeepkv93/assistd/internal/progress"
	"github.com/sandeepkv93/assistd/internal/storage"
)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type failingKV struct{ saves int }

func (f *failingKV) Load(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk gone")
}

func (f *failingKV) Save(context.Context, string, []byte) error {
	f.saves++
	return errors.New("disk full")
}

func (f *failingKV) Delete(context.Context, string) error { return nil }
func (f *failingKV) Close() error                         { return nil }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T, kv storage.KV) (*App, *testClock) {
	t.Helper()
	clock := &testClock{t: time.Date(2026, 2, 9, 9, 30, 0, 0, time.UTC)}
	a := New(Options{KV: kv, Logger: quietLogger(), Now: clock.Now})
	return a, clock
}

func newMemKV(t *testing.T) storage.KV {
	t.Helper()
	kv, err := storage.NewFileRepository(afero.NewMemMapFs(), "/data")
	if err != nil {
		t.Fatalf("new file repository: %v", err)
	}
	return kv
}

func TestAddAndCompleteTaskAwardsPointsOnce(t *testing.T) {
	a, _ := newTestApp(t, nil)

	if got := a.Handle("add task buy milk"); got != `Added task "buy milk".` {
		t.Fatalf("unexpected add reply: %q", got)
	}
	got := a.Handle("complete task Buy Milk")
	if !strings.HasPrefix(got, `Marked "buy milk" as completed. Good job!`) {
		t.Fatalf("unexpected complete reply: %q", got)
	}
	if p := a.ProgressState().Points; p != 10 {
		t.Fatalf("expected 10 points, got %d", p)
	}
	if got := a.Handle("complete task buy milk"); got != `"buy milk" is already completed.` {
		t.Fatalf("unexpected repeat reply: %q", got)
	}
	if p := a.ProgressState().Points; p != 10 {
		t.Fatalf("repeat completion must not award points, got %d", p)
	}
	if got := a.Handle("how many points do i have"); got != "You have 10 points. Keep going!" {
		t.Fatalf("unexpected points reply: %q", got)
	}
	if got := a.Handle("what is my streak"); got != "Your current streak is 1 day." {
		t.Fatalf("unexpected streak reply: %q", got)
	}
}

func TestCompleteUnknownTask(t *testing.T) {
	a, _ := newTestApp(t, nil)
	if got := a.Handle("complete task water plants"); got != `Task "water plants" not found.` {
		t.Fatalf("unexpected reply: %q", got)
	}
	if got := a.Handle("complete task"); got != replyNeedTaskName {
		t.Fatalf("unexpected reply for empty name: %q", got)
	}
}

func TestUnrecognizedLeavesStateUntouched(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.Handle("add task pay rent")
	before := a.Snapshot()

	for _, text := range []string{"", "hello there", "sing me a song", "what's the weather"} {
		if got := a.Handle(text); got != "Sorry, I didn't understand that command." {
			t.Fatalf("%q: unexpected reply %q", text, got)
		}
	}
	after := a.Snapshot()
	if len(after.Tasks) != len(before.Tasks) || after.Points != before.Points || len(after.Notes) != 0 || len(after.Budget) != 0 {
		t.Fatalf("state changed: before=%+v after=%+v", before, after)
	}
}

func TestCommandReplies(t *testing.T) {
	a, _ := newTestApp(t, nil)

	cases := []struct {
		in   string
		want string
	}{
		{"what time is it", "The current time is 9:30 AM."},
		{"what's the date", "Today is Monday, February 9, 2026."},
		{"show my tasks", replyNoPendingTasks},
		{"switch to dark theme", "Dark theme activated."},
		{"change the theme", replyNeedTheme},
		{"add note call the bank", `Added note: "call the bank".`},
		{"i spent $12.50 for lunch", "Logged expense of $12.50 for lunch."},
		{"earned 500 for salary", "Logged income of $500.00 for salary."},
		{"log expense", replyNeedAmount},
		{"add task file taxes due tomorrow", `Added task "file taxes", due Tue Feb 10.`},
		{"add task renew passport due someday", `I couldn't understand the due date "someday".`},
		{"list tasks", "You have 1 pending task: file taxes."},
	}
	for _, tc := range cases {
		if got := a.Handle(tc.in); got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
	}
	if a.Theme() != model.ThemeDark {
		t.Fatalf("expected dark theme, got %s", a.Theme())
	}
	if n := len(a.Notes("")); n != 1 {
		t.Fatalf("expected 1 note, got %d", n)
	}
	if sum := a.Budget().Month; sum.Expense != 12.5 || sum.Income != 500 {
		t.Fatalf("unexpected month summary: %+v", sum)
	}
}

func TestFiveDayStreakScenario(t *testing.T) {
	a, clock := newTestApp(t, nil)

	var last string
	for day := 0; day < 5; day++ {
		name := "chore " + string(rune('a'+day))
		a.Handle("add task " + name)
		last = a.Handle("complete task " + name)
		if day < 4 {
			clock.Advance(24 * time.Hour)
		}
	}
	state := a.ProgressState()
	if state.Streak != 5 || state.Points != 50 {
		t.Fatalf("unexpected progress: %+v", state)
	}
	for _, badge := range []string{progress.BadgeFiveDayStreak, progress.BadgeProductivityPro} {
		if !state.HasBadge(badge) {
			t.Fatalf("missing badge %s in %v", badge, state.Badges)
		}
		if !strings.Contains(last, `"`+badge+`"`) {
			t.Fatalf("reply should announce %s: %q", badge, last)
		}
	}

	clock.Advance(3 * 24 * time.Hour)
	a.Handle("add task late chore")
	a.Handle("complete task late chore")
	if s := a.ProgressState(); s.Streak != 1 || !s.HasBadge(progress.BadgeFiveDayStreak) {
		t.Fatalf("gap must reset streak but keep badges: %+v", s)
	}
	heat := a.Heatmap()
	if len(heat) != HeatmapDays || heat[HeatmapDays-1] != 1 || heat[HeatmapDays-4] != 1 {
		t.Fatalf("unexpected heatmap tail: %v", heat[HeatmapDays-9:])
	}
}

func TestDirectOperations(t *testing.T) {
	a, _ := newTestApp(t, nil)

	task, err := a.AddTask("write report", nil, model.PriorityHigh, "work")
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	text := "write quarterly report"
	if _, err := a.EditTask(task.ID, model.TaskPatch{Text: &text}); err != nil {
		t.Fatalf("edit task: %v", err)
	}
	if err := a.DeleteTask("missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := a.CompleteTask("missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, changed, err := a.CompleteTask(task.ID); err != nil || !changed {
		t.Fatalf("complete: changed=%v err=%v", changed, err)
	}
	if got := a.TakeNotices(); len(got) != 1 || got[0] != progress.BadgeAllTasksDone {
		t.Fatalf("expected all-tasks-done notice, got %v", got)
	}
	if err := a.DeleteTask(task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !a.ProgressState().HasBadge(progress.BadgeAllTasksDone) {
		t.Fatal("deleting tasks must not remove badges")
	}
	if _, err := a.SetTheme("neon"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation for theme, got %v", err)
	}
	if err := a.AddPoints(0); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation for points, got %v", err)
	}
}

func TestBudgetKeeperBadge(t *testing.T) {
	a, clock := newTestApp(t, nil)
	if err := a.SetMonthlyGoal(100); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := a.AddTransaction(model.TransactionExpense, 10, "coffee", "food", clock.Now()); err != nil {
			t.Fatalf("add transaction: %v", err)
		}
	}
	if !a.ProgressState().HasBadge(progress.BadgeBudgetKeeper) {
		t.Fatalf("expected budget keeper, got %v", a.ProgressState().Badges)
	}
	sum := a.Budget()
	if sum.GoalLeft != 50 || sum.OverGoal {
		t.Fatalf("unexpected budget summary: %+v", sum)
	}
}

func TestDeletingOverspendAwardsBudgetKeeper(t *testing.T) {
	a, clock := newTestApp(t, nil)
	if err := a.SetMonthlyGoal(100); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	big, err := a.AddTransaction(model.TransactionExpense, 500, "laptop", "tech", clock.Now())
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := a.AddTransaction(model.TransactionExpense, 10, "coffee", "food", clock.Now()); err != nil {
			t.Fatalf("add transaction: %v", err)
		}
	}
	if a.ProgressState().HasBadge(progress.BadgeBudgetKeeper) {
		t.Fatal("over goal must not earn budget keeper")
	}

	if err := a.DeleteTransaction(big.ID); err != nil {
		t.Fatalf("delete transaction: %v", err)
	}
	if !a.ProgressState().HasBadge(progress.BadgeBudgetKeeper) {
		t.Fatalf("expected budget keeper after delete, got %v", a.ProgressState().Badges)
	}
	if got := a.TakeNotices(); len(got) != 1 || got[0] != progress.BadgeBudgetKeeper {
		t.Fatalf("expected one budget keeper notice, got %v", got)
	}
}

func TestRecommendationPrefersNearestDue(t *testing.T) {
	a, clock := newTestApp(t, nil)
	if _, ok := a.Recommendation(); ok {
		t.Fatal("empty store must have no recommendation")
	}
	later := clock.Now().AddDate(0, 0, 5)
	sooner := clock.Now().AddDate(0, 0, 1)
	a.AddTask("undated", nil, model.PriorityHigh, "")
	a.AddTask("later", &later, "", "")
	a.AddTask("sooner", &sooner, model.PriorityLow, "")

	got, ok := a.Recommendation()
	if !ok || got.Text != "sooner" {
		t.Fatalf("expected sooner, got %+v", got)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			a, _ := newTestApp(t, nil)
			a.Handle("add task buy milk due tomorrow")
			a.Handle("add task pay rent")
			a.Handle("complete task pay rent")
			a.Handle("add note remember the keys")
			a.Handle("spent 20 for groceries")
			a.Handle("vibrant theme")
			if err := a.SetMonthlyGoal(300); err != nil {
				t.Fatalf("set goal: %v", err)
			}

			var buf bytes.Buffer
			if err := a.Export(&buf, format); err != nil {
				t.Fatalf("export: %v", err)
			}
			before := a.Snapshot()

			a.Clear()
			if n := len(a.Tasks("")); n != 0 || a.ProgressState().Points != 0 {
				t.Fatalf("clear left state behind")
			}
			if err := a.Import(&buf, format); err != nil {
				t.Fatalf("import: %v", err)
			}
			after := a.Snapshot()
			if len(after.Tasks) != 2 || len(after.Notes) != 1 || len(after.Budget) != 1 {
				t.Fatalf("unexpected counts after import: %+v", after)
			}
			for i := range before.Tasks {
				b, c := before.Tasks[i], after.Tasks[i]
				if b.ID != c.ID || b.Text != c.Text || b.Completed != c.Completed || !b.CreatedAt.Equal(c.CreatedAt) {
					t.Fatalf("task %d differs: %+v vs %+v", i, b, c)
				}
			}
			if after.Points != before.Points || after.Streak != before.Streak || after.Theme != model.ThemeVibrant {
				t.Fatalf("progress differs: %+v vs %+v", before, after)
			}
			if after.Budget[0].Amount != 20 || after.MonthlyGoal != 300 {
				t.Fatalf("unexpected budget: %v goal %v", after.Budget[0].Amount, after.MonthlyGoal)
			}
		})
	}
}

func TestImportRejectsInvalidDocumentsAtomically(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.Handle("add task keep me")

	docs := []string{
		`{"notes": [], "budget": []}`,
		`{"tasks": [], "notes": [], "budget": [{"type": "expense", "amount": -3, "date": "2026-02-01T00:00:00Z"}]}`,
		`{"tasks": [{"text": "  "}], "notes": [], "budget": []}`,
		`not json`,
	}
	for _, doc := range docs {
		err := a.Import(strings.NewReader(doc), FormatJSON)
		if !errors.Is(err, model.ErrImportFormat) {
			t.Fatalf("%s: expected ErrImportFormat, got %v", doc, err)
		}
	}
	tasks := a.Tasks("")
	if len(tasks) != 1 || tasks[0].Text != "keep me" {
		t.Fatalf("rejected import changed tasks: %+v", tasks)
	}
}

func TestImportMergesProgressWithoutRegressing(t *testing.T) {
	a, _ := newTestApp(t, nil)
	if err := a.AddPoints(70); err != nil {
		t.Fatalf("add points: %v", err)
	}
	doc := `{"tasks": [{"text": "a"}, {"id": "x", "text": "b"}, {"id": "x", "text": "c"}],
		"notes": [], "budget": [], "points": 20, "streak": 3, "badges": ["Legacy"]}`
	if err := a.Import(strings.NewReader(doc), FormatJSON); err != nil {
		t.Fatalf("import: %v", err)
	}
	state := a.ProgressState()
	if state.Points != 70 || state.Streak != 3 {
		t.Fatalf("expected merged max values, got %+v", state)
	}
	if !state.HasBadge("Legacy") || !state.HasBadge(progress.BadgeProductivityPro) {
		t.Fatalf("expected badge union, got %v", state.Badges)
	}
	ids := map[string]bool{}
	for _, task := range a.Tasks("") {
		if task.ID == "" || ids[task.ID] {
			t.Fatalf("ids must be present and unique: %+v", a.Tasks(""))
		}
		ids[task.ID] = true
	}
}

func TestPersistenceFailureDoesNotChangeReplies(t *testing.T) {
	healthy, _ := newTestApp(t, nil)
	kv := &failingKV{}
	broken, _ := newTestApp(t, kv)
	broken.Load(context.Background())

	for _, in := range []string{"add task a", "complete task a", "points", "spent 5 for tea", "dark theme"} {
		if h, b := healthy.Handle(in), broken.Handle(in); h != b {
			t.Fatalf("%q: reply differs with failing storage: %q vs %q", in, h, b)
		}
	}
	if kv.saves == 0 {
		t.Fatal("expected save attempts")
	}
	if broken.ProgressState().Points != 10 {
		t.Fatalf("in-memory effect must stand, got %+v", broken.ProgressState())
	}
}

func TestLoadRestoresStateAndToleratesMalformedKeys(t *testing.T) {
	kv := newMemKV(t)
	first, _ := newTestApp(t, kv)
	first.Load(context.Background())
	first.Handle("add task a")
	first.Handle("complete task a")
	first.Handle("add note n")
	first.Handle("dark theme")

	if err := kv.Save(context.Background(), keyNotes, []byte("{broken")); err != nil {
		t.Fatalf("corrupt notes: %v", err)
	}

	second, _ := newTestApp(t, kv)
	second.Load(context.Background())
	if tasks := second.Tasks(""); len(tasks) != 1 || !tasks[0].Completed {
		t.Fatalf("tasks not restored: %+v", tasks)
	}
	if n := len(second.Notes("")); n != 0 {
		t.Fatalf("malformed notes should load as empty, got %d", n)
	}
	if second.Theme() != model.ThemeDark || second.ProgressState().Points != 10 {
		t.Fatalf("theme/progress not restored: %s %+v", second.Theme(), second.ProgressState())
	}
	raw, ok, err := kv.Load(context.Background(), keyVersion)
	if err != nil || !ok || string(raw) != "2" {
		t.Fatalf("version key: %q ok=%v err=%v", raw, ok, err)
	}
}

func TestClearRemovesEverything(t *testing.T) {
	a, _ := newTestApp(t, nil)
	a.Handle("add task a")
	a.Handle("complete task a")
	a.Handle("dark theme")
	a.Clear()

	state := a.ProgressState()
	if state.Points != 0 || state.Streak != 0 || len(state.Badges) != 0 || a.Theme() != model.ThemeLight {
		t.Fatalf("clear did not reset: %+v %s", state, a.Theme())
	}
}

func TestClearDeletesStoredKeys(t *testing.T) {
	kv := newMemKV(t)
	a, _ := newTestApp(t, kv)
	a.Load(context.Background())
	a.Handle("add task a")
	a.Handle("add note n")
	if err := a.SetMonthlyGoal(250); err != nil {
		t.Fatalf("set goal: %v", err)
	}
	a.Clear()

	if goal := a.Budget().MonthlyGoal; goal != 0 {
		t.Fatalf("expected goal cleared, got %v", goal)
	}
	for _, key := range []string{keyTasks, keyNotes, keyBudget, keyBudgetGoal, keyProgress, keyTheme} {
		if _, ok, err := kv.Load(context.Background(), key); err != nil || ok {
			t.Fatalf("key %s should be gone: ok=%v err=%v", key, ok, err)
		}
	}
	if raw, ok, _ := kv.Load(context.Background(), keyVersion); !ok || string(raw) != "2" {
		t.Fatalf("version key should remain, got %q ok=%v", raw, ok)
	}

	reloaded, _ := newTestApp(t, kv)
	reloaded.Load(context.Background())
	if len(reloaded.Tasks("")) != 0 || len(reloaded.Notes("")) != 0 || reloaded.Budget().MonthlyGoal != 0 {
		t.Fatal("reload after clear should start empty")
	}
}
