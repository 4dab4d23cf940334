package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/assistd/internal/model"
)

type Notes struct {
	items []model.Note
	now   func() time.Time
}

func NewNotes(now func() time.Time) *Notes {
	if now == nil {
		now = time.Now
	}
	return &Notes{now: now}
}

func (s *Notes) Add(content, category string, tags []string) (model.Note, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		category = model.DefaultCategory
	}
	note := model.Note{
		ID:        uuid.NewString(),
		Content:   strings.TrimSpace(content),
		Category:  category,
		Tags:      model.NormalizeTags(tags),
		CreatedAt: s.now(),
	}
	if err := note.Validate(); err != nil {
		return model.Note{}, err
	}
	s.items = append(s.items, note)
	return note, nil
}

func (s *Notes) Edit(id string, patch model.NotePatch) (model.Note, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Note{}, notFound("note", id)
	}
	next := s.items[i]
	if patch.Content != nil {
		next.Content = strings.TrimSpace(*patch.Content)
	}
	if patch.Category != nil {
		next.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Tags != nil {
		next.Tags = model.NormalizeTags(patch.Tags)
	}
	if err := next.Validate(); err != nil {
		return model.Note{}, err
	}
	s.items[i] = next
	return next, nil
}

func (s *Notes) Delete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return notFound("note", id)
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

// Search matches query against content, category and tags, ignoring case.
func (s *Notes) Search(query string) []model.Note {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Note, 0, len(s.items))
	for _, note := range s.items {
		if query == "" || noteMatches(note, query) {
			out = append(out, note)
		}
	}
	return out
}

func noteMatches(note model.Note, query string) bool {
	if strings.Contains(strings.ToLower(note.Content), query) ||
		strings.Contains(strings.ToLower(note.Category), query) {
		return true
	}
	for _, tag := range note.Tags {
		if strings.Contains(tag, query) {
			return true
		}
	}
	return false
}

func (s *Notes) All() []model.Note {
	out := make([]model.Note, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Notes) Replace(items []model.Note) {
	s.items = make([]model.Note, len(items))
	copy(s.items, items)
}

func (s *Notes) Len() int { return len(s.items) }

func (s *Notes) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
