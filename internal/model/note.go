package model

import (
	"sort"
	"strings"
	"time"
)

type Note struct {
	ID        string    `json:"id" yaml:"id" validate:"required"`
	Content   string    `json:"content" yaml:"content" validate:"required"`
	Category  string    `json:"category" yaml:"category"`
	Tags      []string  `json:"tags" yaml:"tags"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

func (n Note) Validate() error {
	n.Content = strings.TrimSpace(n.Content)
	return ValidateStruct(n)
}

type NotePatch struct {
	Content  *string
	Category *string
	Tags     []string
}

// NormalizeTags trims, lower-cases and de-duplicates tags into sorted order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tag), "#")))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
