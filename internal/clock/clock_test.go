package clock

import (
	"regexp"
	"testing"
	"time"
)

var hhmm = regexp.MustCompile(`^[0-9]{2}:[0-9]{2}$`)

func TestFormat_TimeIsAlwaysFiveCharacters(t *testing.T) {
	base := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	for m := 0; m < 24*60; m += 7 {
		at := base.Add(time.Duration(m) * time.Minute)
		for _, use24h := range []bool{true, false} {
			got := Format(at, use24h).Time
			if !hhmm.MatchString(got) {
				t.Fatalf("Format(%v, %v).Time = %q, want HH:MM", at, use24h, got)
			}
		}
	}
}

func TestFormat_HourRanges(t *testing.T) {
	cases := []struct {
		name   string
		hour   int
		use24h bool
		want   string
	}{
		{"midnight 24h", 0, true, "00:05"},
		{"midnight 12h", 0, false, "12:05"},
		{"morning 12h", 9, false, "09:05"},
		{"noon 12h", 12, false, "12:05"},
		{"evening 24h", 21, true, "21:05"},
		{"evening 12h", 21, false, "09:05"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			at := time.Date(2024, time.March, 9, tc.hour, 5, 0, 0, time.UTC)
			if got := Format(at, tc.use24h).Time; got != tc.want {
				t.Fatalf("Time = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormat_WeekdayAndDate(t *testing.T) {
	got := Format(time.Date(2024, time.January, 5, 8, 0, 0, 0, time.UTC), true)
	if got.Weekday != "Friday" {
		t.Fatalf("Weekday = %q, want Friday", got.Weekday)
	}
	if got.Date != "Jan  5" {
		t.Fatalf("Date = %q, want %q", got.Date, "Jan  5")
	}

	got = Format(time.Date(2024, time.September, 25, 8, 0, 0, 0, time.UTC), true)
	if got.Weekday != "Wednesday" || got.Date != "Sep 25" {
		t.Fatalf("Format = %+v, want Wednesday / Sep 25", got)
	}
}

func TestDisplay_UpdateFitsBuffers(t *testing.T) {
	d := NewDisplay()
	at := time.Date(2024, time.September, 25, 23, 59, 0, 0, time.UTC)
	if !d.Update(at, false) {
		t.Fatalf("first Update reported no change")
	}
	want := Strings{Time: "11:59", Weekday: "Wednesday", Date: "Sep 25"}
	if got := d.Strings(); got != want {
		t.Fatalf("Strings = %+v, want %+v", got, want)
	}
	if d.Update(at, false) {
		t.Fatalf("Update with the same instant reported a change")
	}
	if !d.Update(at, true) {
		t.Fatalf("switching to 24h reported no change")
	}
	if got := d.Time.String(); got != "23:59" {
		t.Fatalf("Time = %q, want 23:59", got)
	}
}

func TestUntilNextMinute(t *testing.T) {
	at := time.Date(2024, time.March, 9, 10, 14, 45, 0, time.UTC)
	if got := UntilNextMinute(at); got != 15*time.Second {
		t.Fatalf("UntilNextMinute = %v, want 15s", got)
	}
	at = time.Date(2024, time.March, 9, 10, 15, 0, 0, time.UTC)
	if got := UntilNextMinute(at); got != time.Minute {
		t.Fatalf("UntilNextMinute on the boundary = %v, want 1m", got)
	}
}
