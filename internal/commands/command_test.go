package commands

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestInterpretClassifies(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"What time is it?", KindGetTime},
		{"what's the date today", KindGetDate},
		{"list my tasks", KindListTasks},
		{"add task buy milk", KindAddTask},
		{"complete task buy milk", KindCompleteTask},
		{"finish task buy milk", KindCompleteTask},
		{"add note call mom about the time", KindAddNote},
		{"switch to dark theme", KindSetTheme},
		{"how many points do I have", KindGetPoints},
		{"what is my streak", KindGetStreak},
		{"log expense 12.50 for lunch", KindLogExpense},
		{"I spent $4 for coffee", KindLogExpense},
		{"log income 500 for salary", KindLogIncome},
		{"gibberish xyz", KindUnrecognized},
		{"", KindUnrecognized},
	}
	for _, tc := range cases {
		got := Interpret(tc.in)
		if got.Kind != tc.want {
			t.Fatalf("Interpret(%q) kind = %s, want %s", tc.in, got.Kind, tc.want)
		}
	}
}

func TestInterpretAddTask(t *testing.T) {
	got := Interpret("add task buy milk")
	if got.AddTask == nil || got.AddTask.Text != "buy milk" || got.AddTask.Due != "" {
		t.Fatalf("unexpected add task intent: %#v", got.AddTask)
	}

	got = Interpret("Add Task  Pay Rent due tomorrow")
	if got.AddTask == nil || got.AddTask.Text != "pay rent" || got.AddTask.Due != "tomorrow" {
		t.Fatalf("unexpected add task with due: %#v", got.AddTask)
	}

	got = Interpret("add task")
	if got.Kind != KindAddTask || got.AddTask == nil || got.AddTask.Text != "" {
		t.Fatalf("bare trigger should yield empty add task: %#v", got)
	}
}

func TestInterpretSpecificTriggersWin(t *testing.T) {
	got := Interpret("complete task review tasks")
	if got.Kind != KindCompleteTask || got.Complete.NameQuery != "review tasks" {
		t.Fatalf("expected complete task, got %#v", got)
	}
	got = Interpret("add task check the time")
	if got.Kind != KindAddTask || got.AddTask.Text != "check the time" {
		t.Fatalf("expected add task, got %#v", got)
	}

	questions := map[string]Kind{
		"how many points have i earned": KindGetPoints,
		"how much time have i spent":    KindGetTime,
		"what streak have i earned":     KindGetStreak,
		"i spent 12 on lunch":           KindLogExpense,
		"earned $40 for tutoring":       KindLogIncome,
	}
	for text, want := range questions {
		if got := Interpret(text); got.Kind != want {
			t.Fatalf("%q: expected %s, got %s", text, want, got.Kind)
		}
	}
}

func TestInterpretMoney(t *testing.T) {
	got := Interpret("log expense 12.50 for lunch")
	if got.Money == nil || got.Money.Amount != 12.5 || got.Money.Category != "lunch" {
		t.Fatalf("unexpected expense: %#v", got.Money)
	}
	got = Interpret("income 20")
	if got.Kind != KindLogIncome || got.Money.Amount != 20 || got.Money.Category != "general" {
		t.Fatalf("unexpected income: %#v", got)
	}
	got = Interpret("log expense for lunch")
	if got.Money.Amount != 0 {
		t.Fatalf("missing amount should stay zero, got %v", got.Money.Amount)
	}
}

func TestInterpretTheme(t *testing.T) {
	if got := Interpret("use the vibrant theme"); got.Theme.Name != "vibrant" {
		t.Fatalf("unexpected theme: %#v", got.Theme)
	}
	if got := Interpret("change theme"); got.Theme.Name != "" {
		t.Fatalf("expected empty theme name, got %#v", got.Theme)
	}
}

func TestInterpretIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "utterance")
		a, b := Interpret(s), Interpret(s)
		if a.Kind != b.Kind || a.Raw != b.Raw {
			t.Fatalf("Interpret not deterministic for %q: %v vs %v", s, a.Kind, b.Kind)
		}
	})
}

func TestExecuteDispatch(t *testing.T) {
	called := false
	res, err := Execute(Interpret("add task write docs"), Handlers{
		AddTask: func(a AddTaskArgs) (Result, error) {
			called = true
			if a.Text != "write docs" {
				t.Fatalf("unexpected text: %q", a.Text)
			}
			return Result{Reply: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Reply != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteUnrecognizedCallsNothing(t *testing.T) {
	called := false
	mark := func() (Result, error) {
		called = true
		return Result{}, nil
	}
	res, err := Execute(Interpret("gibberish xyz"), Handlers{
		GetTime: mark, GetDate: mark, ListTasks: mark, GetPoints: mark, GetStreak: mark,
	})
	if err != nil || called {
		t.Fatalf("unrecognized intent reached a handler: called=%v err=%v", called, err)
	}
	if res.Reply != ReplyUnrecognized {
		t.Fatalf("unexpected reply: %q", res.Reply)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	_, err := Execute(Interpret("what is my streak"), Handlers{})
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
