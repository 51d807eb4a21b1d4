package config

import (
	"testing"
	"time"
)

func TestParseBreakWindows(t *testing.T) {
	windows, err := parseBreakWindows("morning=11:30/15m, lunch=14:00/45m,evening=16:30/15m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 3 {
		t.Fatalf("got %d windows, want 3", len(windows))
	}

	lunch := windows[1]
	if lunch.Flag != "lunch" {
		t.Fatalf("flag = %q, want lunch", lunch.Flag)
	}
	if lunch.End.Hour != 14 || lunch.End.Minute != 0 {
		t.Fatalf("end = %+v, want 14:00", lunch.End)
	}
	if lunch.Duration != 45*time.Minute {
		t.Fatalf("duration = %v, want 45m", lunch.Duration)
	}
}

func TestParseBreakWindowsEmpty(t *testing.T) {
	windows, err := parseBreakWindows("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 0 {
		t.Fatalf("got %d windows, want none", len(windows))
	}
}

func TestParseBreakWindowsInvalid(t *testing.T) {
	cases := []string{
		"lunch14:00/45m",     // missing =
		"lunch=14:0045m",     // missing /
		"lunch=25:99/45m",    // bad clock
		"lunch=14:00/yellow", // bad duration
		"lunch=14:00/-10m",   // non-positive duration
	}
	for _, raw := range cases {
		if _, err := parseBreakWindows(raw); err == nil {
			t.Errorf("parseBreakWindows(%q) accepted invalid input", raw)
		}
	}
}
