package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{
		ID:        "task-1",
		Text:      "Buy milk",
		Priority:  PriorityHigh,
		CreatedAt: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC),
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsBlankTextAndBadPriority(t *testing.T) {
	task := Task{ID: "task-1", Text: "   ", Priority: PriorityMedium}
	err := task.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
	if !strings.Contains(err.Error(), "text is required") {
		t.Fatalf("unexpected message: %v", err)
	}

	task.Text = "ok"
	task.Priority = Priority("urgent")
	err = task.Validate()
	if !errors.Is(err, ErrValidation) || !strings.Contains(err.Error(), "priority") {
		t.Fatalf("expected priority validation error, got: %v", err)
	}
}

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in   string
		want Priority
		ok   bool
	}{
		{"", PriorityMedium, true},
		{"HIGH", PriorityHigh, true},
		{" low ", PriorityLow, true},
		{"critical", Priority("critical"), false},
	}
	for _, tc := range cases {
		got, ok := ParsePriority(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParsePriority(%q) = %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestTransactionValidate(t *testing.T) {
	tx := Transaction{
		ID:     "tx-1",
		Type:   TransactionExpense,
		Amount: 12.5,
		Date:   time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC),
	}
	if err := tx.Validate(); err != nil {
		t.Fatalf("expected valid transaction, got: %v", err)
	}
	if tx.Month() != "2026-02" {
		t.Fatalf("unexpected month: %s", tx.Month())
	}

	tx.Amount = 0
	if err := tx.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for zero amount, got: %v", err)
	}

	tx.Amount = 3
	tx.Type = TransactionType("refund")
	if err := tx.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for bad type, got: %v", err)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Work", "#home", "work", "", "Ideas"})
	want := []string{"home", "ideas", "work"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("NormalizeTags = %v, want %v", got, want)
	}
}

func TestRoundCents(t *testing.T) {
	if RoundCents(12.345) != 12.35 && RoundCents(12.345) != 12.34 {
		t.Fatalf("unexpected rounding: %v", RoundCents(12.345))
	}
	if RoundCents(7.1) != 7.1 {
		t.Fatalf("unexpected rounding: %v", RoundCents(7.1))
	}
}
