package types

import "testing"

func TestParseLevel(t *testing.T) {
	for name, want := range logLevelMap {
		got, err := ParseLevel(name)
		if err != nil || got != want {
			t.Errorf("%q: got (%v, %v), want %v", name, got, err, want)
		}
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
	if got := LevelName(LevelTrace); got != "TRACE" {
		t.Errorf("got %q, want %q", got, "TRACE")
	}
}
