package model

import (
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank orders priorities from most to least urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// ParsePriority maps free text onto a priority. Empty input yields medium.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return PriorityMedium, true
	}
	return p, p.IsValid()
}

const DefaultCategory = "general"

type Task struct {
	ID          string     `json:"id" yaml:"id" validate:"required"`
	Text        string     `json:"text" yaml:"text" validate:"required"`
	Completed   bool       `json:"completed" yaml:"completed"`
	DueDate     *time.Time `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
	Priority    Priority   `json:"priority" yaml:"priority" validate:"required,oneof=low medium high"`
	Category    string     `json:"category" yaml:"category"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

func (t Task) Validate() error {
	t.Text = strings.TrimSpace(t.Text)
	return ValidateStruct(t)
}

// TaskPatch carries the fields of an edit. Nil fields are left untouched.
type TaskPatch struct {
	Text     *string
	DueDate  *time.Time
	ClearDue bool
	Priority *Priority
	Category *string
}
