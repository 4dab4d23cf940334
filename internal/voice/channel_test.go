package voice

import "testing"

func echo() HandlerFunc {
	return func(s string) string { return "heard: " + s }
}

func TestHearRequiresWakePhrase(t *testing.T) {
	c := NewChannel(echo())

	cases := []struct {
		in        string
		reply     string
		activated bool
	}{
		{"Hey Jarvis, add task buy milk", "heard: add task buy milk", true},
		{"jarvis what time is it?", "heard: what time is it", true},
		{"  JARVIS   list tasks ", "heard: list tasks", true},
		{"hey jarvis", "", true},
		{"jarvis!", "", true},
		{"add task buy milk", "", false},
		{"jarvisson add task", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		reply, activated := c.Hear(tc.in)
		if reply != tc.reply || activated != tc.activated {
			t.Fatalf("%q: got (%q, %v), want (%q, %v)", tc.in, reply, activated, tc.reply, tc.activated)
		}
	}
}

func TestLongerWakePhraseWins(t *testing.T) {
	c := NewChannel(echo(), "jarvis", "hey jarvis")
	cmd, ok := c.Strip("hey jarvis points")
	if !ok || cmd != "points" {
		t.Fatalf("got (%q, %v)", cmd, ok)
	}
}

func TestTypeBypassesGate(t *testing.T) {
	c := NewChannel(echo())
	if got := c.Type("list tasks"); got != "heard: list tasks" {
		t.Fatalf("unexpected reply %q", got)
	}
}
