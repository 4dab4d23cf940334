package model

import (
	"math"
	"strings"
	"time"
)

type TransactionType string

const (
	TransactionExpense TransactionType = "expense"
	TransactionIncome  TransactionType = "income"
)

func (t TransactionType) IsValid() bool {
	return t == TransactionExpense || t == TransactionIncome
}

type Transaction struct {
	ID          string          `json:"id" yaml:"id" validate:"required"`
	Type        TransactionType `json:"type" yaml:"type" validate:"required,oneof=expense income"`
	Amount      float64         `json:"amount" yaml:"amount" validate:"gt=0"`
	Description string          `json:"description" yaml:"description"`
	Category    string          `json:"category" yaml:"category"`
	Date        time.Time       `json:"date" yaml:"date" validate:"required"`
}

func (t Transaction) Validate() error {
	return ValidateStruct(t)
}

// Month is the YYYY-MM bucket the transaction aggregates into.
func (t Transaction) Month() string {
	return t.Date.Format("2006-01")
}

// RoundCents rounds an amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

type Theme string

const (
	ThemeLight   Theme = "light"
	ThemeDark    Theme = "dark"
	ThemeVibrant Theme = "vibrant"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeVibrant:
		return true
	default:
		return false
	}
}

func ParseTheme(s string) (Theme, bool) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	return t, t.IsValid()
}
