package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/assistd/internal/model"
)

type MonthSummary struct {
	Month   string
	Expense float64
	Income  float64
}

func (m MonthSummary) Net() float64 { return model.RoundCents(m.Income - m.Expense) }

type BudgetStats struct {
	Transactions int
	MonthExpense float64
	MonthlyGoal  float64
}

// Budget is an append-mostly ledger. Aggregates are always derived.
type Budget struct {
	items []model.Transaction
	goal  float64
	now   func() time.Time
}

func NewBudget(now func() time.Time) *Budget {
	if now == nil {
		now = time.Now
	}
	return &Budget{now: now}
}

func (s *Budget) Add(kind model.TransactionType, amount float64, description, category string, date time.Time) (model.Transaction, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = model.DefaultCategory
	}
	if date.IsZero() {
		date = s.now()
	}
	tx := model.Transaction{
		ID:          uuid.NewString(),
		Type:        kind,
		Amount:      model.RoundCents(amount),
		Description: strings.TrimSpace(description),
		Category:    category,
		Date:        date,
	}
	if err := tx.Validate(); err != nil {
		return model.Transaction{}, err
	}
	s.items = append(s.items, tx)
	return tx, nil
}

func (s *Budget) Delete(id string) error {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return notFound("transaction", id)
}

// List returns transactions newest first.
func (s *Budget) List() []model.Transaction {
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (s *Budget) All() []model.Transaction {
	out := make([]model.Transaction, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Budget) Replace(items []model.Transaction) {
	s.items = make([]model.Transaction, len(items))
	copy(s.items, items)
}

func (s *Budget) SetMonthlyGoal(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("%w: monthly goal must not be negative", model.ErrValidation)
	}
	s.goal = model.RoundCents(amount)
	return nil
}

// ClearMonthlyGoal unsets the goal.
func (s *Budget) ClearMonthlyGoal() { s.goal = 0 }

func (s *Budget) MonthlyGoal() float64 { return s.goal }

func (s *Budget) MonthSummary(month string) MonthSummary {
	out := MonthSummary{Month: month}
	for _, tx := range s.items {
		if tx.Month() != month {
			continue
		}
		if tx.Type == model.TransactionExpense {
			out.Expense += tx.Amount
		} else {
			out.Income += tx.Amount
		}
	}
	out.Expense = model.RoundCents(out.Expense)
	out.Income = model.RoundCents(out.Income)
	return out
}

// Months returns one summary per month that has transactions, oldest first.
func (s *Budget) Months() []MonthSummary {
	seen := make(map[string]bool)
	keys := make([]string, 0)
	for _, tx := range s.items {
		if m := tx.Month(); !seen[m] {
			seen[m] = true
			keys = append(keys, m)
		}
	}
	sort.Strings(keys)
	out := make([]MonthSummary, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.MonthSummary(k))
	}
	return out
}

func (s *Budget) Stats() BudgetStats {
	return BudgetStats{
		Transactions: len(s.items),
		MonthExpense: s.MonthSummary(s.now().Format("2006-01")).Expense,
		MonthlyGoal:  s.goal,
	}
}
