// Package voice gates speech transcripts behind a wake phrase before they
// reach the command interpreter.
package voice

import (
	"sort"
	"strings"
	"unicode"
)

var DefaultWakePhrases = []string{"hey jarvis", "jarvis"}

// Handler is what an activated transcript is forwarded to.
type Handler interface {
	Handle(text string) string
}

type HandlerFunc func(string) string

func (f HandlerFunc) Handle(text string) string { return f(text) }

type Channel struct {
	phrases []string
	handler Handler
}

// NewChannel builds a channel. Longer wake phrases are matched first so
// "hey jarvis" wins over "jarvis".
func NewChannel(h Handler, wakePhrases ...string) *Channel {
	if len(wakePhrases) == 0 {
		wakePhrases = DefaultWakePhrases
	}
	phrases := make([]string, 0, len(wakePhrases))
	for _, p := range wakePhrases {
		p = strings.Join(strings.Fields(strings.ToLower(p)), " ")
		if p != "" {
			phrases = append(phrases, p)
		}
	}
	sort.SliceStable(phrases, func(i, j int) bool { return len(phrases[i]) > len(phrases[j]) })
	return &Channel{phrases: phrases, handler: h}
}

// Strip reports whether transcript starts with a wake phrase and returns the
// command that follows it, trimmed of spaces and punctuation.
func (c *Channel) Strip(transcript string) (string, bool) {
	text := strings.Join(strings.Fields(transcript), " ")
	for _, p := range c.phrases {
		if len(text) < len(p) || !strings.EqualFold(text[:len(p)], p) {
			continue
		}
		rest := text[len(p):]
		if rest != "" && !isBoundary(rune(rest[0])) {
			continue
		}
		return strings.TrimFunc(rest, isBoundary), true
	}
	return "", false
}

func isBoundary(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}

// Hear forwards a transcript only when it carries a wake phrase. activated is
// false for ungated speech; an activated transcript with nothing after the
// wake phrase gets an empty reply.
func (c *Channel) Hear(transcript string) (reply string, activated bool) {
	command, ok := c.Strip(transcript)
	if !ok {
		return "", false
	}
	if command == "" {
		return "", true
	}
	return c.handler.Handle(command), true
}

// Type forwards manual input without the wake-phrase gate.
func (c *Channel) Type(text string) string {
	return c.handler.Handle(text)
}
