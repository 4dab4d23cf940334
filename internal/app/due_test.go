package app

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/assistd/internal/model"
)

func TestResolveDue(t *testing.T) {
	// Monday.
	now := time.Date(2026, 2, 9, 18, 45, 0, 0, time.UTC)

	cases := map[string]string{
		"today":       "2026-02-09",
		"tomorrow":    "2026-02-10",
		"friday":      "2026-02-13",
		"monday":      "2026-02-09",
		"next monday": "2026-02-16",
		"next week":   "2026-02-16",
		"in 3 days":   "2026-02-12",
		"2026-03-01":  "2026-03-01",
	}
	for phrase, want := range cases {
		got, err := ResolveDue(phrase, now)
		if err != nil {
			t.Fatalf("%q: %v", phrase, err)
		}
		if got.Format("2006-01-02") != want || got.Hour() != 0 {
			t.Fatalf("%q: expected %s, got %s", phrase, want, got)
		}
	}

	// Absolute and relative phrases land on the same representation.
	offset := time.FixedZone("UTC-5", -5*3600)
	local := time.Date(2026, 2, 9, 20, 0, 0, 0, offset)
	abs, err := ResolveDue("2026-02-10", local)
	if err != nil {
		t.Fatalf("absolute date: %v", err)
	}
	rel, err := ResolveDue("tomorrow", local)
	if err != nil {
		t.Fatalf("relative date: %v", err)
	}
	if !abs.Equal(*rel) || abs.Location() != time.UTC {
		t.Fatalf("expected identical UTC days, got %s and %s", abs, rel)
	}

	if got, err := ResolveDue("", now); err != nil || got != nil {
		t.Fatalf("empty phrase: got %v, %v", got, err)
	}
	if _, err := ResolveDue("whenever", now); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
